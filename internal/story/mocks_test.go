package story_test

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/genkan-app/genkan/internal/story"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Create(ctx context.Context, record *story.Story, criteria ...repository.InsertCriteria) (*story.Story, error) {
	args := m.Called(ctx, record)
	if rf, ok := args.Get(0).(func(context.Context, *story.Story, ...repository.InsertCriteria) (*story.Story, error)); ok {
		return rf(ctx, record, criteria...)
	}
	if s := args.Get(0); s != nil {
		return s.(*story.Story), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, record *story.Story, criteria ...repository.UpdateCriteria) (*story.Story, error) {
	args := m.Called(ctx, record)
	if s := args.Get(0); s != nil {
		return s.(*story.Story), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetWithRelations(ctx context.Context, id uuid.UUID) (*story.Story, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*story.Story), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) Feed(ctx context.Context, limit int) ([]*story.Story, error) {
	args := m.Called(ctx, limit)
	if s := args.Get(0); s != nil {
		return s.([]*story.Story), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) ByUser(ctx context.Context, userID uuid.UUID, status story.StoryStatus, limit int) ([]*story.Story, error) {
	args := m.Called(ctx, userID, status, limit)
	if s := args.Get(0); s != nil {
		return s.([]*story.Story), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) FindLike(ctx context.Context, storyID, userID uuid.UUID) (*story.Like, error) {
	args := m.Called(ctx, storyID, userID)
	if l := args.Get(0); l != nil {
		return l.(*story.Like), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) AddLike(ctx context.Context, like *story.Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockStore) RemoveLike(ctx context.Context, storyID, userID uuid.UUID) error {
	args := m.Called(ctx, storyID, userID)
	return args.Error(0)
}

func (m *MockStore) AddComment(ctx context.Context, comment *story.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockStore) GetComment(ctx context.Context, id uuid.UUID) (*story.Comment, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*story.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) UpdateComment(ctx context.Context, comment *story.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockStore) RemoveComment(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) HasReport(ctx context.Context, storyID, reporterID uuid.UUID) (bool, error) {
	args := m.Called(ctx, storyID, reporterID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) AddReport(ctx context.Context, report *story.Report) (int, error) {
	args := m.Called(ctx, report)
	return args.Int(0), args.Error(1)
}
