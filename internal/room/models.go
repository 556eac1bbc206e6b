// Package room implements group conversation spaces with per-room
// slow mode.
package room

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type MemberRole = string

const (
	RoleMember    MemberRole = "member"
	RoleModerator MemberRole = "moderator"
)

// Room is a shared conversation space, usually pinned to one language.
type Room struct {
	bun.BaseModel `bun:"table:rooms,alias:rom"`

	ID        uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	CreatorID uuid.UUID `bun:"creator_id,notnull,type:uuid" json:"creator_id,omitempty"`
	Name      string    `bun:"name,notnull" json:"name,omitempty"`
	Topic     string    `bun:"topic" json:"topic,omitempty"`
	Language  string    `bun:"language" json:"language,omitempty"`

	// Capacity caps the member count. Zero means unlimited.
	Capacity int `bun:"capacity" json:"capacity"`

	// SlowModeSeconds is the minimum gap between messages from one
	// member. Zero disables slow mode.
	SlowModeSeconds int `bun:"slow_mode_seconds" json:"slow_mode_seconds"`

	Members []*Member `bun:"rel:has-many,join:id=room_id" json:"members,omitempty"`

	CreatedAt *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}

// Member ties a user to a room and tracks their posting cadence.
type Member struct {
	bun.BaseModel `bun:"table:room_members,alias:rmb"`

	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	RoomID        uuid.UUID  `bun:"room_id,notnull,type:uuid" json:"room_id,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	Role          MemberRole `bun:"role,notnull,default:'member'" json:"role,omitempty"`
	LastMessageAt *time.Time `bun:"last_message_at,nullzero" json:"last_message_at,omitempty"`
	JoinedAt      *time.Time `bun:"joined_at,nullzero,default:current_timestamp" json:"joined_at,omitempty"`
}

func (m *Member) IsModerator() bool { return m != nil && m.Role == RoleModerator }

// NextAllowedAt returns when this member may post again under the
// room's slow mode. Moderators are exempt.
func (m *Member) NextAllowedAt(r *Room) time.Time {
	if m == nil || r == nil || r.SlowModeSeconds <= 0 || m.IsModerator() {
		return time.Time{}
	}
	if m.LastMessageAt == nil {
		return time.Time{}
	}
	return m.LastMessageAt.Add(time.Duration(r.SlowModeSeconds) * time.Second)
}

// CanPostAt reports whether the member may post at the given instant,
// and how long they must wait if not.
func (m *Member) CanPostAt(r *Room, at time.Time) (bool, time.Duration) {
	next := m.NextAllowedAt(r)
	if next.IsZero() || !at.Before(next) {
		return true, 0
	}
	return false, next.Sub(at)
}
