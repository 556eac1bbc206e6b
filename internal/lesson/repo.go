package lesson

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Lessons interface {
	repository.Repository[*Lesson]

	GetWithWidgets(ctx context.Context, id uuid.UUID) (*Lesson, error)
	Published(ctx context.Context, language string, limit int) ([]*Lesson, error)
	ByAuthor(ctx context.Context, authorID uuid.UUID) ([]*Lesson, error)
	ReplaceWidgets(ctx context.Context, lessonID uuid.UUID, widgets []*Widget) error
}

type lessons struct {
	repository.Repository[*Lesson]
	db *bun.DB
}

var _ Lessons = (*lessons)(nil)

func NewLessonsRepository(db *bun.DB) Lessons {
	repo := repository.NewRepository[*Lesson](db, repository.ModelHandlers[*Lesson]{
		NewRecord: func() *Lesson { return &Lesson{} },
		GetID: func(l *Lesson) uuid.UUID {
			if l == nil {
				return uuid.Nil
			}
			return l.ID
		},
		SetID: func(l *Lesson, id uuid.UUID) {
			if l != nil {
				l.ID = id
			}
		},
	})

	return &lessons{Repository: repo, db: db}
}

func (r *lessons) GetWithWidgets(ctx context.Context, id uuid.UUID) (*Lesson, error) {
	record := &Lesson{}
	err := r.db.NewSelect().
		Model(record).
		Relation("Widgets", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("position ASC")
		}).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": id.String()})
		}
		return nil, err
	}

	return record, nil
}

func (r *lessons) Published(ctx context.Context, language string, limit int) ([]*Lesson, error) {
	var records []*Lesson
	q := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.status = ?", StatusPublished).
		OrderExpr("?TableAlias.created_at DESC").
		Limit(limit)

	if language != "" {
		q = q.Where("?TableAlias.language = ?", language)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *lessons) ByAuthor(ctx context.Context, authorID uuid.UUID) ([]*Lesson, error) {
	var records []*Lesson
	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.author_id = ?", authorID).
		Where("?TableAlias.status != ?", StatusDeleted).
		OrderExpr("?TableAlias.created_at DESC").
		Scan(ctx)

	return records, err
}

// ReplaceWidgets swaps a lesson's widget list in one transaction so a
// failed save never leaves a half-written lesson.
func (r *lessons) ReplaceWidgets(ctx context.Context, lessonID uuid.UUID, widgets []*Widget) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*Widget)(nil)).
			Where("?TableAlias.lesson_id = ?", lessonID).
			Exec(ctx); err != nil {
			return err
		}

		if len(widgets) == 0 {
			return nil
		}

		for i, w := range widgets {
			if w.ID == uuid.Nil {
				w.ID = uuid.New()
			}
			w.LessonID = lessonID
			w.Position = i
		}

		_, err := tx.NewInsert().Model(&widgets).Exec(ctx)
		return err
	})
}
