package room_test

import (
	"context"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/genkan-app/genkan/internal/room"
)

func TestCreateRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("a name is required", func(t *testing.T) {
		svc := room.NewService(new(MockStore))

		_, err := svc.Create(ctx, room.CreateInput{CreatorID: uuid.New()})
		assert.ErrorIs(t, err, room.ErrMissingName)
	})

	t.Run("the creator is seated as moderator", func(t *testing.T) {
		store := new(MockStore)
		svc := room.NewService(store)

		creator := uuid.New()
		store.On("CreateRoom", ctx, mock.AnythingOfType("*room.Room")).
			Return(&room.Room{ID: uuid.New(), CreatorID: creator, Name: "japanese corner"}, nil).Once()
		store.On("AddMember", ctx, mock.MatchedBy(func(m *room.Member) bool {
			return m.UserID == creator && m.Role == room.RoleModerator
		})).Return(nil).Once()

		_, err := svc.Create(ctx, room.CreateInput{CreatorID: creator, Name: "japanese corner"})
		require.NoError(t, err)
		store.AssertExpectations(t)
	})
}

func TestJoinRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("joining twice fails", func(t *testing.T) {
		store := new(MockStore)
		svc := room.NewService(store)

		roomID, userID := uuid.New(), uuid.New()
		store.On("GetRoom", ctx, roomID).Return(&room.Room{ID: roomID}, nil).Once()
		store.On("GetMember", ctx, roomID, userID).
			Return(&room.Member{RoomID: roomID, UserID: userID}, nil).Once()

		_, err := svc.Join(ctx, roomID, userID)
		assert.ErrorIs(t, err, room.ErrAlreadyMember)
	})

	t.Run("full rooms turn newcomers away", func(t *testing.T) {
		store := new(MockStore)
		svc := room.NewService(store)

		roomID, userID := uuid.New(), uuid.New()
		store.On("GetRoom", ctx, roomID).Return(&room.Room{ID: roomID, Capacity: 2}, nil).Once()
		store.On("GetMember", ctx, roomID, userID).
			Return(nil, repository.NewRecordNotFound()).Once()
		store.On("CountMembers", ctx, roomID).Return(2, nil).Once()

		_, err := svc.Join(ctx, roomID, userID)
		assert.ErrorIs(t, err, room.ErrRoomFull)
		store.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything)
	})

	t.Run("zero capacity means unlimited", func(t *testing.T) {
		store := new(MockStore)
		svc := room.NewService(store)

		roomID, userID := uuid.New(), uuid.New()
		store.On("GetRoom", ctx, roomID).Return(&room.Room{ID: roomID}, nil).Once()
		store.On("GetMember", ctx, roomID, userID).
			Return(nil, repository.NewRecordNotFound()).Once()
		store.On("AddMember", ctx, mock.AnythingOfType("*room.Member")).Return(nil).Once()

		member, err := svc.Join(ctx, roomID, userID)
		require.NoError(t, err)
		assert.Equal(t, room.RoleMember, member.Role)
		store.AssertNotCalled(t, "CountMembers", mock.Anything, mock.Anything)
	})
}

func TestSetSlowMode(t *testing.T) {
	ctx := context.Background()

	t.Run("plain members cannot change it", func(t *testing.T) {
		store := new(MockStore)
		svc := room.NewService(store)

		roomID, userID := uuid.New(), uuid.New()
		store.On("GetMember", ctx, roomID, userID).
			Return(&room.Member{RoomID: roomID, UserID: userID, Role: room.RoleMember}, nil).Once()

		_, err := svc.SetSlowMode(ctx, roomID, userID, 30)
		assert.ErrorIs(t, err, room.ErrNotModerator)
	})
}

func TestClaimPostSlot(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("under cooldown the wait is attached", func(t *testing.T) {
		store := new(MockStore)
		svc := room.NewService(store, room.WithClock(func() time.Time { return now }))

		roomID, userID := uuid.New(), uuid.New()
		lastPost := now.Add(-10 * time.Second)

		store.On("GetRoom", ctx, roomID).
			Return(&room.Room{ID: roomID, SlowModeSeconds: 30}, nil).Once()
		store.On("GetMember", ctx, roomID, userID).
			Return(&room.Member{RoomID: roomID, UserID: userID, LastMessageAt: &lastPost}, nil).Once()

		err := svc.ClaimPostSlot(ctx, roomID, userID)
		assert.ErrorIs(t, err, room.ErrSlowMode)

		var rich *goerrors.Error
		require.ErrorAs(t, err, &rich)
		assert.Equal(t, 21, rich.Metadata["retry_after_seconds"])
	})

	t.Run("a granted slot advances the cadence clock", func(t *testing.T) {
		store := new(MockStore)
		svc := room.NewService(store, room.WithClock(func() time.Time { return now }))

		roomID, userID := uuid.New(), uuid.New()
		store.On("GetRoom", ctx, roomID).
			Return(&room.Room{ID: roomID, SlowModeSeconds: 30}, nil).Once()
		store.On("GetMember", ctx, roomID, userID).
			Return(&room.Member{RoomID: roomID, UserID: userID}, nil).Once()
		store.On("TouchLastMessage", ctx, roomID, userID, now).Return(nil).Once()

		require.NoError(t, svc.ClaimPostSlot(ctx, roomID, userID))
		store.AssertExpectations(t)
	})
}
