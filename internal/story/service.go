package story

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// FeedLimit caps the public feed to the newest visible stories.
const FeedLimit = 25

var (
	// ErrStoryNotFound hides drafts and deleted stories behind the same
	// answer a missing id gets.
	ErrStoryNotFound = errors.New("story not found", errors.CategoryNotFound).
				WithTextCode("STORY_NOT_FOUND").
				WithCode(errors.CodeNotFound)

	ErrCommentNotFound = errors.New("comment not found", errors.CategoryNotFound).
				WithTextCode("COMMENT_NOT_FOUND").
				WithCode(errors.CodeNotFound)

	ErrOwnStoryLike = errors.New("you cannot like your own story", errors.CategoryValidation).
			WithTextCode("OWN_STORY_LIKE").
			WithCode(errors.CodeBadRequest)

	ErrNotCommentOwner = errors.New("you can only change your own comments", errors.CategoryAuthz).
				WithTextCode("NOT_COMMENT_OWNER").
				WithCode(errors.CodeForbidden)

	ErrNotStoryOwner = errors.New("you can only change your own stories", errors.CategoryAuthz).
				WithTextCode("NOT_STORY_OWNER").
				WithCode(errors.CodeForbidden)

	ErrAlreadyReported = errors.New("story already reported", errors.CategoryConflict).
				WithTextCode("ALREADY_REPORTED").
				WithCode(errors.CodeConflict)

	ErrEmptyContent = errors.New("content is required", errors.CategoryValidation).
			WithTextCode("EMPTY_CONTENT").
			WithCode(errors.CodeBadRequest)
)

// Store is the storage slice the service needs. The repository in this
// package satisfies it; tests swap in a mock.
type Store interface {
	Create(ctx context.Context, record *Story, criteria ...repository.InsertCriteria) (*Story, error)
	Update(ctx context.Context, record *Story, criteria ...repository.UpdateCriteria) (*Story, error)

	GetWithRelations(ctx context.Context, id uuid.UUID) (*Story, error)
	Feed(ctx context.Context, limit int) ([]*Story, error)
	ByUser(ctx context.Context, userID uuid.UUID, status StoryStatus, limit int) ([]*Story, error)

	FindLike(ctx context.Context, storyID, userID uuid.UUID) (*Like, error)
	AddLike(ctx context.Context, like *Like) error
	RemoveLike(ctx context.Context, storyID, userID uuid.UUID) error

	AddComment(ctx context.Context, comment *Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*Comment, error)
	UpdateComment(ctx context.Context, comment *Comment) error
	RemoveComment(ctx context.Context, id uuid.UUID) error

	HasReport(ctx context.Context, storyID, reporterID uuid.UUID) (bool, error)
	AddReport(ctx context.Context, report *Report) (int, error)
}

// Service implements the story feed operations.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateInput carries a new story or draft.
type CreateInput struct {
	UserID  uuid.UUID `json:"-"`
	Content string    `json:"content"`
	Image   string    `json:"image"`
	Draft   bool      `json:"draft"`
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Story, error) {
	if input.Content == "" {
		return nil, ErrEmptyContent
	}

	status := StatusVisible
	if input.Draft {
		status = StatusDraft
	}

	record := &Story{
		ID:      uuid.New(),
		UserID:  input.UserID,
		Content: input.Content,
		Image:   input.Image,
		Status:  status,
	}

	created, err := s.store.Create(ctx, record)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create story")
	}

	return created, nil
}

// Publish moves one of the caller's drafts onto the feed.
func (s *Service) Publish(ctx context.Context, userID, storyID uuid.UUID) (*Story, error) {
	record, err := s.getOwned(ctx, userID, storyID)
	if err != nil {
		return nil, err
	}

	if record.Status != StatusDraft {
		return record, nil
	}

	record.Status = StatusVisible
	updated, err := s.store.Update(ctx, record, repository.UpdateByID(record.ID.String()))
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to publish story")
	}

	return updated, nil
}

// Feed returns the newest visible stories, capped at FeedLimit.
func (s *Service) Feed(ctx context.Context) ([]*Story, error) {
	records, err := s.store.Feed(ctx, FeedLimit)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load feed")
	}
	return records, nil
}

// ByUser returns a member's visible stories.
func (s *Service) ByUser(ctx context.Context, userID uuid.UUID) ([]*Story, error) {
	records, err := s.store.ByUser(ctx, userID, StatusVisible, FeedLimit)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load user stories")
	}
	return records, nil
}

// Drafts returns the caller's unpublished stories.
func (s *Service) Drafts(ctx context.Context, userID uuid.UUID) ([]*Story, error) {
	records, err := s.store.ByUser(ctx, userID, StatusDraft, FeedLimit)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load drafts")
	}
	return records, nil
}

// Get returns a visible story with its likes and comments.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Story, error) {
	record, err := s.store.GetWithRelations(ctx, id)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrStoryNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load story")
	}

	if record.Status != StatusVisible {
		return nil, ErrStoryNotFound
	}

	return record, nil
}

// ToggleLike likes a story, or removes the caller's existing like.
// Members cannot like their own stories.
func (s *Service) ToggleLike(ctx context.Context, userID, storyID uuid.UUID) (liked bool, err error) {
	record, err := s.Get(ctx, storyID)
	if err != nil {
		return false, err
	}

	if record.UserID == userID {
		return false, ErrOwnStoryLike
	}

	existing, err := s.store.FindLike(ctx, storyID, userID)
	if err != nil && !repository.IsRecordNotFound(err) {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to check like")
	}

	if existing != nil {
		if err := s.store.RemoveLike(ctx, storyID, userID); err != nil {
			return false, errors.Wrap(err, errors.CategoryInternal, "failed to remove like")
		}
		return false, nil
	}

	like := &Like{
		StoryID: storyID,
		UserID:  userID,
		Type:    LikeTypeHeart,
	}
	if err := s.store.AddLike(ctx, like); err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to add like")
	}

	return true, nil
}

// Comment attaches a reply to a visible story.
func (s *Service) Comment(ctx context.Context, userID, storyID uuid.UUID, content string) (*Comment, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	if _, err := s.Get(ctx, storyID); err != nil {
		return nil, err
	}

	comment := &Comment{
		StoryID:     storyID,
		CommenterID: userID,
		Content:     content,
	}
	if err := s.store.AddComment(ctx, comment); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to add comment")
	}

	return comment, nil
}

// EditComment replaces a comment's text. The first version is kept and
// the comment is flagged as edited.
func (s *Service) EditComment(ctx context.Context, userID, commentID uuid.UUID, content string) (*Comment, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrCommentNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load comment")
	}

	if comment.CommenterID != userID {
		return nil, ErrNotCommentOwner
	}

	if !comment.Edited {
		comment.OriginalContent = comment.Content
		comment.Edited = true
	}
	comment.Content = content

	if err := s.store.UpdateComment(ctx, comment); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update comment")
	}

	return comment, nil
}

// DeleteComment removes a comment. Commenters can delete their own;
// the story owner can moderate replies on their story.
func (s *Service) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return ErrCommentNotFound
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to load comment")
	}

	if comment.CommenterID != userID {
		record, err := s.store.GetWithRelations(ctx, comment.StoryID)
		if err != nil || record.UserID != userID {
			return ErrNotCommentOwner
		}
	}

	if err := s.store.RemoveComment(ctx, commentID); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete comment")
	}

	return nil
}

// Report flags a story. Each member counts once; once enough distinct
// members report it, the story drops off the feed.
func (s *Service) Report(ctx context.Context, reporterID, storyID uuid.UUID, reason string) error {
	record, err := s.Get(ctx, storyID)
	if err != nil {
		return err
	}

	reported, err := s.store.HasReport(ctx, storyID, reporterID)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to check reports")
	}
	if reported {
		return ErrAlreadyReported
	}

	count, err := s.store.AddReport(ctx, &Report{
		StoryID:    storyID,
		ReporterID: reporterID,
		Reason:     reason,
	})
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to record report")
	}

	if count >= reportThreshold {
		record.Status = StatusDeleted
		record.ReportCount = count
		if _, err := s.store.Update(ctx, record, repository.UpdateByID(record.ID.String())); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to hide reported story")
		}
	}

	return nil
}

// Delete hides the caller's story. Admin deletions go through
// DeleteAsModerator.
func (s *Service) Delete(ctx context.Context, userID, storyID uuid.UUID) error {
	record, err := s.getOwned(ctx, userID, storyID)
	if err != nil {
		return err
	}

	record.Status = StatusDeleted
	if _, err := s.store.Update(ctx, record, repository.UpdateByID(record.ID.String())); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete story")
	}

	return nil
}

// DeleteAsModerator removes any story regardless of ownership.
func (s *Service) DeleteAsModerator(ctx context.Context, storyID uuid.UUID) error {
	record, err := s.store.GetWithRelations(ctx, storyID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return ErrStoryNotFound
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to load story")
	}

	record.Status = StatusDeleted
	if _, err := s.store.Update(ctx, record, repository.UpdateByID(record.ID.String())); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete story")
	}

	return nil
}

func (s *Service) getOwned(ctx context.Context, userID, storyID uuid.UUID) (*Story, error) {
	record, err := s.store.GetWithRelations(ctx, storyID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrStoryNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load story")
	}

	if record.UserID != userID {
		return nil, ErrNotStoryOwner
	}

	return record, nil
}
