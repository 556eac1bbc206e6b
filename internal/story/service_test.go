package story_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/genkan-app/genkan/internal/story"
)

func visibleStory(owner uuid.UUID) *story.Story {
	return &story.Story{
		ID:      uuid.New(),
		UserID:  owner,
		Content: "went to the market today",
		Status:  story.StatusVisible,
	}
}

func TestCreateStory(t *testing.T) {
	ctx := context.Background()

	t.Run("empty content is rejected", func(t *testing.T) {
		svc := story.NewService(new(MockStore))

		_, err := svc.Create(ctx, story.CreateInput{UserID: uuid.New()})
		assert.ErrorIs(t, err, story.ErrEmptyContent)
	})

	t.Run("draft flag keeps the story off the feed", func(t *testing.T) {
		store := new(MockStore)
		svc := story.NewService(store)

		store.On("Create", ctx, mock.AnythingOfType("*story.Story")).
			Return(func(_ context.Context, s *story.Story, _ ...repository.InsertCriteria) (*story.Story, error) {
				return s, nil
			}).Once()

		record, err := svc.Create(ctx, story.CreateInput{
			UserID:  uuid.New(),
			Content: "draft text",
			Draft:   true,
		})

		require.NoError(t, err)
		assert.Equal(t, story.StatusDraft, record.Status)
		store.AssertExpectations(t)
	})
}

func TestGetStory(t *testing.T) {
	ctx := context.Background()

	t.Run("hidden statuses answer like a missing id", func(t *testing.T) {
		store := new(MockStore)
		svc := story.NewService(store)

		draft := visibleStory(uuid.New())
		draft.Status = story.StatusDraft
		store.On("GetWithRelations", ctx, draft.ID).Return(draft, nil).Once()

		_, err := svc.Get(ctx, draft.ID)
		assert.ErrorIs(t, err, story.ErrStoryNotFound)

		missing := uuid.New()
		store.On("GetWithRelations", ctx, missing).
			Return(nil, repository.NewRecordNotFound()).Once()

		_, err = svc.Get(ctx, missing)
		assert.ErrorIs(t, err, story.ErrStoryNotFound)
	})
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("members cannot like their own story", func(t *testing.T) {
		store := new(MockStore)
		svc := story.NewService(store)

		owner := uuid.New()
		record := visibleStory(owner)
		store.On("GetWithRelations", ctx, record.ID).Return(record, nil).Once()

		_, err := svc.ToggleLike(ctx, owner, record.ID)
		assert.ErrorIs(t, err, story.ErrOwnStoryLike)
	})

	t.Run("first call likes, second call unlikes", func(t *testing.T) {
		store := new(MockStore)
		svc := story.NewService(store)

		liker := uuid.New()
		record := visibleStory(uuid.New())

		store.On("GetWithRelations", ctx, record.ID).Return(record, nil).Twice()
		store.On("FindLike", ctx, record.ID, liker).
			Return(nil, repository.NewRecordNotFound()).Once()
		store.On("AddLike", ctx, mock.AnythingOfType("*story.Like")).Return(nil).Once()

		liked, err := svc.ToggleLike(ctx, liker, record.ID)
		require.NoError(t, err)
		assert.True(t, liked)

		store.On("FindLike", ctx, record.ID, liker).
			Return(&story.Like{StoryID: record.ID, UserID: liker}, nil).Once()
		store.On("RemoveLike", ctx, record.ID, liker).Return(nil).Once()

		liked, err = svc.ToggleLike(ctx, liker, record.ID)
		require.NoError(t, err)
		assert.False(t, liked)

		store.AssertExpectations(t)
	})
}

func TestEditComment(t *testing.T) {
	ctx := context.Background()

	t.Run("only the commenter can edit", func(t *testing.T) {
		store := new(MockStore)
		svc := story.NewService(store)

		comment := &story.Comment{
			ID:          uuid.New(),
			CommenterID: uuid.New(),
			Content:     "original",
		}
		store.On("GetComment", ctx, comment.ID).Return(comment, nil).Once()

		_, err := svc.EditComment(ctx, uuid.New(), comment.ID, "hijacked")
		assert.ErrorIs(t, err, story.ErrNotCommentOwner)
	})

	t.Run("first edit preserves the original text", func(t *testing.T) {
		store := new(MockStore)
		svc := story.NewService(store)

		commenter := uuid.New()
		comment := &story.Comment{
			ID:          uuid.New(),
			CommenterID: commenter,
			Content:     "first version",
		}
		store.On("GetComment", ctx, comment.ID).Return(comment, nil).Twice()
		store.On("UpdateComment", ctx, comment).Return(nil).Twice()

		edited, err := svc.EditComment(ctx, commenter, comment.ID, "second version")
		require.NoError(t, err)
		assert.True(t, edited.Edited)
		assert.Equal(t, "first version", edited.OriginalContent)
		assert.Equal(t, "second version", edited.Content)

		// later edits keep pointing at the very first version
		edited, err = svc.EditComment(ctx, commenter, comment.ID, "third version")
		require.NoError(t, err)
		assert.Equal(t, "first version", edited.OriginalContent)
		assert.Equal(t, "third version", edited.Content)
	})
}

func TestReportStory(t *testing.T) {
	ctx := context.Background()

	t.Run("a member counts once", func(t *testing.T) {
		store := new(MockStore)
		svc := story.NewService(store)

		reporter := uuid.New()
		record := visibleStory(uuid.New())

		store.On("GetWithRelations", ctx, record.ID).Return(record, nil).Once()
		store.On("HasReport", ctx, record.ID, reporter).Return(true, nil).Once()

		err := svc.Report(ctx, reporter, record.ID, "spam")
		assert.ErrorIs(t, err, story.ErrAlreadyReported)
	})

	t.Run("hits the threshold and the story goes dark", func(t *testing.T) {
		store := new(MockStore)
		svc := story.NewService(store)

		reporter := uuid.New()
		record := visibleStory(uuid.New())

		store.On("GetWithRelations", ctx, record.ID).Return(record, nil).Once()
		store.On("HasReport", ctx, record.ID, reporter).Return(false, nil).Once()
		store.On("AddReport", ctx, mock.AnythingOfType("*story.Report")).Return(3, nil).Once()
		store.On("Update", ctx, mock.MatchedBy(func(s *story.Story) bool {
			return s.Status == story.StatusDeleted
		})).Return(record, nil).Once()

		require.NoError(t, svc.Report(ctx, reporter, record.ID, "abuse"))
		store.AssertExpectations(t)
	})

	t.Run("below the threshold the story stays up", func(t *testing.T) {
		store := new(MockStore)
		svc := story.NewService(store)

		reporter := uuid.New()
		record := visibleStory(uuid.New())

		store.On("GetWithRelations", ctx, record.ID).Return(record, nil).Once()
		store.On("HasReport", ctx, record.ID, reporter).Return(false, nil).Once()
		store.On("AddReport", ctx, mock.AnythingOfType("*story.Report")).Return(1, nil).Once()

		require.NoError(t, svc.Report(ctx, reporter, record.ID, "abuse"))
		store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestDeleteStory(t *testing.T) {
	ctx := context.Background()

	t.Run("owners only", func(t *testing.T) {
		store := new(MockStore)
		svc := story.NewService(store)

		record := visibleStory(uuid.New())
		store.On("GetWithRelations", ctx, record.ID).Return(record, nil).Once()

		err := svc.Delete(ctx, uuid.New(), record.ID)
		assert.ErrorIs(t, err, story.ErrNotStoryOwner)
	})

	t.Run("moderators bypass ownership", func(t *testing.T) {
		store := new(MockStore)
		svc := story.NewService(store)

		record := visibleStory(uuid.New())
		store.On("GetWithRelations", ctx, record.ID).Return(record, nil).Once()
		store.On("Update", ctx, mock.MatchedBy(func(s *story.Story) bool {
			return s.Status == story.StatusDeleted
		})).Return(record, nil).Once()

		require.NoError(t, svc.DeleteAsModerator(ctx, record.ID))
		store.AssertExpectations(t)
	})
}
