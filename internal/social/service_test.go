package social_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/genkan-app/genkan/internal/social"
)

func TestSendRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("self requests are rejected", func(t *testing.T) {
		svc := social.NewService(new(MockGraph))
		self := uuid.New()

		_, err := svc.SendRequest(ctx, self, self)
		assert.ErrorIs(t, err, social.ErrSelfRequest)
	})

	t.Run("blocked pairs cannot connect", func(t *testing.T) {
		graph := new(MockGraph)
		svc := social.NewService(graph)

		sender, recipient := uuid.New(), uuid.New()
		graph.On("IsBlocked", ctx, sender, recipient).Return(true, nil).Once()

		_, err := svc.SendRequest(ctx, sender, recipient)
		assert.ErrorIs(t, err, social.ErrBlocked)
	})

	t.Run("one live request per pair, regardless of direction", func(t *testing.T) {
		graph := new(MockGraph)
		svc := social.NewService(graph)

		sender, recipient := uuid.New(), uuid.New()
		graph.On("IsBlocked", ctx, sender, recipient).Return(false, nil).Once()
		graph.On("FindRequestBetween", ctx, sender, recipient).
			Return(&social.FriendRequest{
				SenderID:    recipient,
				RecipientID: sender,
				Status:      social.RequestPending,
			}, nil).Once()

		_, err := svc.SendRequest(ctx, sender, recipient)
		assert.ErrorIs(t, err, social.ErrDuplicateRequest)
	})

	t.Run("creates a pending request and notifies the recipient", func(t *testing.T) {
		graph := new(MockGraph)
		svc := social.NewService(graph)

		sender, recipient := uuid.New(), uuid.New()
		graph.On("IsBlocked", ctx, sender, recipient).Return(false, nil).Once()
		graph.On("FindRequestBetween", ctx, sender, recipient).
			Return(nil, repository.NewRecordNotFound()).Once()
		graph.On("CreateRequest", ctx, mock.AnythingOfType("*social.FriendRequest")).Return(nil).Once()
		graph.On("AddNotification", ctx, mock.MatchedBy(func(n *social.Notification) bool {
			return n.UserID == recipient && n.Kind == social.NotifyFriendRequest
		})).Return(nil).Once()

		record, err := svc.SendRequest(ctx, sender, recipient)
		require.NoError(t, err)
		assert.Equal(t, social.RequestPending, record.Status)

		graph.AssertExpectations(t)
	})
}

func TestAnswerRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("only the recipient may answer", func(t *testing.T) {
		graph := new(MockGraph)
		svc := social.NewService(graph)

		record := &social.FriendRequest{
			ID:          uuid.New(),
			SenderID:    uuid.New(),
			RecipientID: uuid.New(),
			Status:      social.RequestPending,
		}
		graph.On("GetRequest", ctx, record.ID).Return(record, nil).Once()

		_, err := svc.Accept(ctx, record.SenderID, record.ID)
		assert.ErrorIs(t, err, social.ErrNotRecipient)
	})

	t.Run("answering twice fails", func(t *testing.T) {
		graph := new(MockGraph)
		svc := social.NewService(graph)

		record := &social.FriendRequest{
			ID:          uuid.New(),
			SenderID:    uuid.New(),
			RecipientID: uuid.New(),
			Status:      social.RequestAccepted,
		}
		graph.On("GetRequest", ctx, record.ID).Return(record, nil).Once()

		_, err := svc.Decline(ctx, record.RecipientID, record.ID)
		assert.ErrorIs(t, err, social.ErrRequestResolved)
	})

	t.Run("accept notifies the sender", func(t *testing.T) {
		graph := new(MockGraph)
		svc := social.NewService(graph)

		record := &social.FriendRequest{
			ID:          uuid.New(),
			SenderID:    uuid.New(),
			RecipientID: uuid.New(),
			Status:      social.RequestPending,
		}
		graph.On("GetRequest", ctx, record.ID).Return(record, nil).Once()
		graph.On("ResolveRequest", ctx, record).Return(nil).Once()
		graph.On("AddNotification", ctx, mock.MatchedBy(func(n *social.Notification) bool {
			return n.UserID == record.SenderID && n.Kind == social.NotifyFriendAccepted
		})).Return(nil).Once()

		resolved, err := svc.Accept(ctx, record.RecipientID, record.ID)
		require.NoError(t, err)
		assert.Equal(t, social.RequestAccepted, resolved.Status)

		graph.AssertExpectations(t)
	})

	t.Run("decline stays quiet", func(t *testing.T) {
		graph := new(MockGraph)
		svc := social.NewService(graph)

		record := &social.FriendRequest{
			ID:          uuid.New(),
			SenderID:    uuid.New(),
			RecipientID: uuid.New(),
			Status:      social.RequestPending,
		}
		graph.On("GetRequest", ctx, record.ID).Return(record, nil).Once()
		graph.On("ResolveRequest", ctx, record).Return(nil).Once()

		_, err := svc.Decline(ctx, record.RecipientID, record.ID)
		require.NoError(t, err)

		graph.AssertNotCalled(t, "AddNotification", mock.Anything, mock.Anything)
	})
}

func TestBlock(t *testing.T) {
	ctx := context.Background()

	t.Run("self blocks are rejected", func(t *testing.T) {
		svc := social.NewService(new(MockGraph))
		self := uuid.New()

		assert.ErrorIs(t, svc.Block(ctx, self, self), social.ErrSelfBlock)
	})

	t.Run("blocking twice is a no-op", func(t *testing.T) {
		graph := new(MockGraph)
		svc := social.NewService(graph)

		blocker, blocked := uuid.New(), uuid.New()
		graph.On("IsBlocked", ctx, blocker, blocked).Return(true, nil).Once()

		require.NoError(t, svc.Block(ctx, blocker, blocked))
		graph.AssertNotCalled(t, "AddBlock", mock.Anything, mock.Anything)
	})
}

func TestFriendIDs(t *testing.T) {
	ctx := context.Background()
	graph := new(MockGraph)
	svc := social.NewService(graph)

	me := uuid.New()
	friendA, friendB := uuid.New(), uuid.New()

	graph.On("FriendsOf", ctx, me).Return([]*social.FriendRequest{
		{SenderID: me, RecipientID: friendA, Status: social.RequestAccepted},
		{SenderID: friendB, RecipientID: me, Status: social.RequestAccepted},
	}, nil).Once()

	ids, err := svc.FriendIDs(ctx, me)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{friendA, friendB}, ids)
}
