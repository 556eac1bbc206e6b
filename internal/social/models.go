// Package social implements the friendship graph, blocking, and the
// notification inbox that the rest of the platform writes into.
package social

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type RequestStatus = string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestDeclined RequestStatus = "declined"
)

// FriendRequest links a sender to a recipient. At most one live
// request may exist per unordered pair.
type FriendRequest struct {
	bun.BaseModel `bun:"table:friend_requests,alias:frq"`

	ID          uuid.UUID     `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	SenderID    uuid.UUID     `bun:"sender_id,notnull,type:uuid" json:"sender_id,omitempty"`
	RecipientID uuid.UUID     `bun:"recipient_id,notnull,type:uuid" json:"recipient_id,omitempty"`
	Status      RequestStatus `bun:"status,notnull,default:'pending'" json:"status,omitempty"`

	CreatedAt  *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	ResolvedAt *time.Time `bun:"resolved_at,nullzero" json:"resolved_at,omitempty"`
}

func (f *FriendRequest) IsPending() bool { return f != nil && f.Status == RequestPending }

// Involves reports whether the given user is on either side.
func (f *FriendRequest) Involves(userID uuid.UUID) bool {
	return f != nil && (f.SenderID == userID || f.RecipientID == userID)
}

// BlockEntry records that blocker no longer wants to see or be seen by
// blocked. Blocks are one-directional rows enforced both ways.
type BlockEntry struct {
	bun.BaseModel `bun:"table:blocks,alias:blk"`

	ID        uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	BlockerID uuid.UUID  `bun:"blocker_id,notnull,type:uuid" json:"blocker_id,omitempty"`
	BlockedID uuid.UUID  `bun:"blocked_id,notnull,type:uuid" json:"blocked_id,omitempty"`
	CreatedAt *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

type NotificationKind = string

const (
	NotifyFriendRequest  NotificationKind = "friend_request"
	NotifyFriendAccepted NotificationKind = "friend_accepted"
	NotifyStoryLike      NotificationKind = "story_like"
	NotifyStoryComment   NotificationKind = "story_comment"
	NotifySystem         NotificationKind = "system"
)

// Notification is one inbox entry for a member.
type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:ntf"`

	ID      uuid.UUID        `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID  uuid.UUID        `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	ActorID uuid.UUID        `bun:"actor_id,nullzero,type:uuid" json:"actor_id,omitempty"`
	Kind    NotificationKind `bun:"kind,notnull" json:"kind,omitempty"`
	Message string           `bun:"message" json:"message,omitempty"`
	Read    bool             `bun:"read" json:"read"`

	CreatedAt *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
