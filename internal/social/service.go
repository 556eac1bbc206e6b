package social

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// InboxLimit caps one page of the notification inbox.
const InboxLimit = 50

var (
	ErrRequestNotFound = errors.New("friend request not found", errors.CategoryNotFound).
				WithTextCode("REQUEST_NOT_FOUND").
				WithCode(errors.CodeNotFound)

	ErrSelfRequest = errors.New("you cannot send a friend request to yourself", errors.CategoryValidation).
			WithTextCode("SELF_REQUEST").
			WithCode(errors.CodeBadRequest)

	ErrDuplicateRequest = errors.New("a request between these members already exists", errors.CategoryConflict).
				WithTextCode("DUPLICATE_REQUEST").
				WithCode(errors.CodeConflict)

	ErrNotRecipient = errors.New("only the recipient can answer a request", errors.CategoryAuthz).
			WithTextCode("NOT_RECIPIENT").
			WithCode(errors.CodeForbidden)

	ErrRequestResolved = errors.New("request already answered", errors.CategoryConflict).
				WithTextCode("REQUEST_RESOLVED").
				WithCode(errors.CodeConflict)

	ErrBlocked = errors.New("cannot reach this member", errors.CategoryAuthz).
			WithTextCode("MEMBER_BLOCKED").
			WithCode(errors.CodeForbidden)

	ErrSelfBlock = errors.New("you cannot block yourself", errors.CategoryValidation).
			WithTextCode("SELF_BLOCK").
			WithCode(errors.CodeBadRequest)
)

// Service implements the friendship graph and notification inbox.
type Service struct {
	graph Graph
}

func NewService(graph Graph) *Service {
	return &Service{graph: graph}
}

// SendRequest opens a pending friend request. Blocked pairs and pairs
// with a live request are rejected.
func (s *Service) SendRequest(ctx context.Context, senderID, recipientID uuid.UUID) (*FriendRequest, error) {
	if senderID == recipientID {
		return nil, ErrSelfRequest
	}

	blocked, err := s.graph.IsBlocked(ctx, senderID, recipientID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check blocks")
	}
	if blocked {
		return nil, ErrBlocked
	}

	if existing, err := s.graph.FindRequestBetween(ctx, senderID, recipientID); err == nil && existing != nil {
		return nil, ErrDuplicateRequest
	} else if err != nil && !repository.IsRecordNotFound(err) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check existing requests")
	}

	record := &FriendRequest{
		SenderID:    senderID,
		RecipientID: recipientID,
		Status:      RequestPending,
	}
	if err := s.graph.CreateRequest(ctx, record); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create request")
	}

	s.notify(ctx, recipientID, senderID, NotifyFriendRequest, "you have a new friend request")

	return record, nil
}

// Accept resolves a pending request in favor of friendship.
func (s *Service) Accept(ctx context.Context, userID, requestID uuid.UUID) (*FriendRequest, error) {
	return s.answer(ctx, userID, requestID, RequestAccepted)
}

// Decline resolves a pending request without creating a friendship.
func (s *Service) Decline(ctx context.Context, userID, requestID uuid.UUID) (*FriendRequest, error) {
	return s.answer(ctx, userID, requestID, RequestDeclined)
}

func (s *Service) answer(ctx context.Context, userID, requestID uuid.UUID, status RequestStatus) (*FriendRequest, error) {
	record, err := s.graph.GetRequest(ctx, requestID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrRequestNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load request")
	}

	if record.RecipientID != userID {
		return nil, ErrNotRecipient
	}
	if !record.IsPending() {
		return nil, ErrRequestResolved
	}

	record.Status = status
	if err := s.graph.ResolveRequest(ctx, record); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to resolve request")
	}

	if status == RequestAccepted {
		s.notify(ctx, record.SenderID, userID, NotifyFriendAccepted, "your friend request was accepted")
	}

	return record, nil
}

// Pending lists requests waiting on the caller.
func (s *Service) Pending(ctx context.Context, userID uuid.UUID) ([]*FriendRequest, error) {
	records, err := s.graph.PendingFor(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list pending requests")
	}
	return records, nil
}

// FriendIDs returns the ids of everyone the caller is friends with.
func (s *Service) FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	records, err := s.graph.FriendsOf(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list friends")
	}

	ids := make([]uuid.UUID, 0, len(records))
	for _, r := range records {
		other := r.SenderID
		if other == userID {
			other = r.RecipientID
		}
		ids = append(ids, other)
	}

	return ids, nil
}

// Block cuts both directions of contact between the pair.
func (s *Service) Block(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	if blockerID == blockedID {
		return ErrSelfBlock
	}

	already, err := s.graph.IsBlocked(ctx, blockerID, blockedID)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to check blocks")
	}
	if already {
		return nil
	}

	entry := &BlockEntry{BlockerID: blockerID, BlockedID: blockedID}
	if err := s.graph.AddBlock(ctx, entry); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to add block")
	}

	return nil
}

func (s *Service) Unblock(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	if err := s.graph.RemoveBlock(ctx, blockerID, blockedID); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to remove block")
	}
	return nil
}

// BlockedIDs returns everyone involved in a block with the caller,
// regardless of who initiated it. Match discovery filters on this.
func (s *Service) BlockedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := s.graph.BlockedIDs(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list blocks")
	}
	return ids, nil
}

// Inbox returns the caller's notifications, newest first.
func (s *Service) Inbox(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*Notification, error) {
	records, err := s.graph.Notifications(ctx, userID, unreadOnly, InboxLimit)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load inbox")
	}
	return records, nil
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := s.graph.MarkRead(ctx, userID, notificationID); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to mark notification read")
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.graph.MarkAllRead(ctx, userID); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to mark inbox read")
	}
	return nil
}

// Notify writes a system entry into a member's inbox.
func (s *Service) Notify(ctx context.Context, userID uuid.UUID, message string) error {
	record := &Notification{
		UserID:  userID,
		Kind:    NotifySystem,
		Message: message,
	}
	if err := s.graph.AddNotification(ctx, record); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to add notification")
	}
	return nil
}

// notify writes best-effort; a lost notification never fails the
// action that caused it.
func (s *Service) notify(ctx context.Context, userID, actorID uuid.UUID, kind NotificationKind, message string) {
	_ = s.graph.AddNotification(ctx, &Notification{
		UserID:  userID,
		ActorID: actorID,
		Kind:    kind,
		Message: message,
	})
}
