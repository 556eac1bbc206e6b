package room_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/genkan-app/genkan/internal/room"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateRoom(ctx context.Context, record *room.Room) (*room.Room, error) {
	args := m.Called(ctx, record)
	if r := args.Get(0); r != nil {
		return r.(*room.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetRoom(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*room.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) ListRooms(ctx context.Context, language string) ([]*room.Room, error) {
	args := m.Called(ctx, language)
	if r := args.Get(0); r != nil {
		return r.([]*room.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) UpdateRoom(ctx context.Context, record *room.Room) (*room.Room, error) {
	args := m.Called(ctx, record)
	if r := args.Get(0); r != nil {
		return r.(*room.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetMember(ctx context.Context, roomID, userID uuid.UUID) (*room.Member, error) {
	args := m.Called(ctx, roomID, userID)
	if r := args.Get(0); r != nil {
		return r.(*room.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CountMembers(ctx context.Context, roomID uuid.UUID) (int, error) {
	args := m.Called(ctx, roomID)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) AddMember(ctx context.Context, member *room.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockStore) RemoveMember(ctx context.Context, roomID, userID uuid.UUID) error {
	args := m.Called(ctx, roomID, userID)
	return args.Error(0)
}

func (m *MockStore) TouchLastMessage(ctx context.Context, roomID, userID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, roomID, userID, at)
	return args.Error(0)
}
