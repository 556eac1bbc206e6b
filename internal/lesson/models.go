package lesson

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LessonStatus is the lesson visibility state
type LessonStatus = string

const (
	StatusDraft     LessonStatus = "draft"
	StatusPublished LessonStatus = "published"
	StatusPrivate   LessonStatus = "private"
	StatusDeleted   LessonStatus = "deleted"
)

// Lesson is an authored language lesson made of ordered widgets.
type Lesson struct {
	bun.BaseModel `bun:"table:lessons,alias:lsn"`

	ID          uuid.UUID    `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	AuthorID    uuid.UUID    `bun:"author_id,notnull,type:uuid" json:"author_id,omitempty"`
	Title       string       `bun:"title,notnull" json:"title,omitempty"`
	Description string       `bun:"description" json:"description,omitempty"`
	Language    string       `bun:"language,notnull" json:"language,omitempty"`
	Level       string       `bun:"level" json:"level,omitempty"`
	Status      LessonStatus `bun:"status,notnull,default:'draft'" json:"status,omitempty"`

	Widgets []*Widget `bun:"rel:has-many,join:id=lesson_id" json:"widgets,omitempty"`

	CreatedAt *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}

func (l *Lesson) IsPublished() bool { return l != nil && l.Status == StatusPublished }

// VisibleTo reports whether a member may read this lesson. Drafts and
// private lessons stay author-only.
func (l *Lesson) VisibleTo(userID uuid.UUID) bool {
	if l == nil || l.Status == StatusDeleted {
		return false
	}
	if l.Status == StatusPublished {
		return true
	}
	return l.AuthorID == userID
}
