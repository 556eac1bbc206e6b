package story

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// StoryStatus is the story visibility state
type StoryStatus = string

const (
	StatusVisible StoryStatus = "visible"
	StatusDraft   StoryStatus = "draft"
	StatusDeleted StoryStatus = "deleted"
)

// LikeType is the reaction kind attached to a like
type LikeType = string

const LikeTypeHeart LikeType = "heart"

// reportThreshold hides a story once this many distinct reports accrue.
const reportThreshold = 3

// Story is a short post on a member's feed.
type Story struct {
	bun.BaseModel `bun:"table:stories,alias:sty"`

	ID              uuid.UUID   `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID          uuid.UUID   `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	Content         string      `bun:"content,notnull" json:"content,omitempty"`
	OriginalContent string      `bun:"original_content" json:"original_content,omitempty"`
	Image           string      `bun:"image" json:"image,omitempty"`
	Status          StoryStatus `bun:"status,notnull,default:'visible'" json:"status,omitempty"`
	ReportCount     int         `bun:"report_count" json:"-"`

	Likes    []*Like    `bun:"rel:has-many,join:id=story_id" json:"likes,omitempty"`
	Comments []*Comment `bun:"rel:has-many,join:id=story_id" json:"comments,omitempty"`

	CreatedAt *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}

// Like is a single reaction; one per user per story.
type Like struct {
	bun.BaseModel `bun:"table:story_likes,alias:slk"`

	ID        uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	StoryID   uuid.UUID  `bun:"story_id,notnull,type:uuid" json:"story_id,omitempty"`
	UserID    uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	Type      LikeType   `bun:"like_type,notnull,default:'heart'" json:"like_type,omitempty"`
	CreatedAt *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// Report records one member flagging a story; a member may only report
// a story once.
type Report struct {
	bun.BaseModel `bun:"table:story_reports,alias:srp"`

	ID         uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	StoryID    uuid.UUID  `bun:"story_id,notnull,type:uuid" json:"story_id,omitempty"`
	ReporterID uuid.UUID  `bun:"reporter_id,notnull,type:uuid" json:"reporter_id,omitempty"`
	Reason     string     `bun:"reason" json:"reason,omitempty"`
	CreatedAt  *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// Comment is a reply on a story. Edits keep the first version around.
type Comment struct {
	bun.BaseModel `bun:"table:story_comments,alias:scm"`

	ID              uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	StoryID         uuid.UUID  `bun:"story_id,notnull,type:uuid" json:"story_id,omitempty"`
	CommenterID     uuid.UUID  `bun:"commenter_id,notnull,type:uuid" json:"commenter_id,omitempty"`
	Content         string     `bun:"content,notnull" json:"content,omitempty"`
	OriginalContent string     `bun:"original_content" json:"original_content,omitempty"`
	Edited          bool       `bun:"edited" json:"edited,omitempty"`
	CreatedAt       *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	DeletedAt       *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}
