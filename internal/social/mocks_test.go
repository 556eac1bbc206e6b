package social_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/genkan-app/genkan/internal/social"
)

type MockGraph struct {
	mock.Mock
}

func (m *MockGraph) GetRequest(ctx context.Context, id uuid.UUID) (*social.FriendRequest, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*social.FriendRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGraph) FindRequestBetween(ctx context.Context, a, b uuid.UUID) (*social.FriendRequest, error) {
	args := m.Called(ctx, a, b)
	if r := args.Get(0); r != nil {
		return r.(*social.FriendRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGraph) CreateRequest(ctx context.Context, record *social.FriendRequest) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockGraph) ResolveRequest(ctx context.Context, record *social.FriendRequest) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockGraph) PendingFor(ctx context.Context, userID uuid.UUID) ([]*social.FriendRequest, error) {
	args := m.Called(ctx, userID)
	if r := args.Get(0); r != nil {
		return r.([]*social.FriendRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGraph) FriendsOf(ctx context.Context, userID uuid.UUID) ([]*social.FriendRequest, error) {
	args := m.Called(ctx, userID)
	if r := args.Get(0); r != nil {
		return r.([]*social.FriendRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGraph) IsBlocked(ctx context.Context, a, b uuid.UUID) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}

func (m *MockGraph) AddBlock(ctx context.Context, record *social.BlockEntry) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockGraph) RemoveBlock(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	args := m.Called(ctx, blockerID, blockedID)
	return args.Error(0)
}

func (m *MockGraph) BlockedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if ids := args.Get(0); ids != nil {
		return ids.([]uuid.UUID), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGraph) AddNotification(ctx context.Context, record *social.Notification) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockGraph) Notifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]*social.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	if r := args.Get(0); r != nil {
		return r.([]*social.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGraph) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *MockGraph) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
