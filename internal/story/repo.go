package story

import (
	"context"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Stories is the storage surface for the story service.
type Stories interface {
	repository.Repository[*Story]

	GetWithRelations(ctx context.Context, id uuid.UUID) (*Story, error)
	Feed(ctx context.Context, limit int) ([]*Story, error)
	ByUser(ctx context.Context, userID uuid.UUID, status StoryStatus, limit int) ([]*Story, error)

	FindLike(ctx context.Context, storyID, userID uuid.UUID) (*Like, error)
	AddLike(ctx context.Context, like *Like) error
	RemoveLike(ctx context.Context, storyID, userID uuid.UUID) error

	AddComment(ctx context.Context, comment *Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*Comment, error)
	UpdateComment(ctx context.Context, comment *Comment) error
	RemoveComment(ctx context.Context, id uuid.UUID) error

	HasReport(ctx context.Context, storyID, reporterID uuid.UUID) (bool, error)
	AddReport(ctx context.Context, report *Report) (int, error)
}

type stories struct {
	repository.Repository[*Story]
	db *bun.DB
}

var _ Stories = (*stories)(nil)

func NewStoriesRepository(db *bun.DB) Stories {
	repo := repository.NewRepository[*Story](db, repository.ModelHandlers[*Story]{
		NewRecord: func() *Story { return &Story{} },
		GetID: func(s *Story) uuid.UUID {
			if s == nil {
				return uuid.Nil
			}
			return s.ID
		},
		SetID: func(s *Story, id uuid.UUID) {
			if s != nil {
				s.ID = id
			}
		},
	})

	return &stories{Repository: repo, db: db}
}

func (r *stories) GetWithRelations(ctx context.Context, id uuid.UUID) (*Story, error) {
	record := &Story{}
	err := r.db.NewSelect().
		Model(record).
		Relation("Likes").
		Relation("Comments").
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

// Feed returns the newest visible stories.
func (r *stories) Feed(ctx context.Context, limit int) ([]*Story, error) {
	var records []*Story
	err := r.db.NewSelect().
		Model(&records).
		Relation("Likes").
		Relation("Comments").
		Where("?TableAlias.status = ?", StatusVisible).
		OrderExpr("?TableAlias.created_at DESC").
		Limit(limit).
		Scan(ctx)

	return records, err
}

func (r *stories) ByUser(ctx context.Context, userID uuid.UUID, status StoryStatus, limit int) ([]*Story, error) {
	var records []*Story
	err := r.db.NewSelect().
		Model(&records).
		Relation("Likes").
		Relation("Comments").
		Where("?TableAlias.user_id = ?", userID).
		Where("?TableAlias.status = ?", status).
		OrderExpr("?TableAlias.created_at DESC").
		Limit(limit).
		Scan(ctx)

	return records, err
}

func (r *stories) FindLike(ctx context.Context, storyID, userID uuid.UUID) (*Like, error) {
	like := &Like{}
	err := r.db.NewSelect().
		Model(like).
		Where("?TableAlias.story_id = ?", storyID).
		Where("?TableAlias.user_id = ?", userID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound()
		}
		return nil, err
	}

	return like, nil
}

func (r *stories) AddLike(ctx context.Context, like *Like) error {
	if like.ID == uuid.Nil {
		like.ID = uuid.New()
	}
	now := time.Now()
	like.CreatedAt = &now

	_, err := r.db.NewInsert().Model(like).Exec(ctx)
	return err
}

func (r *stories) RemoveLike(ctx context.Context, storyID, userID uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*Like)(nil)).
		Where("?TableAlias.story_id = ?", storyID).
		Where("?TableAlias.user_id = ?", userID).
		Exec(ctx)

	return err
}

func (r *stories) AddComment(ctx context.Context, comment *Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	now := time.Now()
	comment.CreatedAt = &now

	_, err := r.db.NewInsert().Model(comment).Exec(ctx)
	return err
}

func (r *stories) GetComment(ctx context.Context, id uuid.UUID) (*Comment, error) {
	comment := &Comment{}
	err := r.db.NewSelect().
		Model(comment).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound()
		}
		return nil, err
	}

	return comment, nil
}

func (r *stories) UpdateComment(ctx context.Context, comment *Comment) error {
	_, err := r.db.NewUpdate().
		Model(comment).
		WherePK().
		Exec(ctx)

	return err
}

func (r *stories) RemoveComment(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*Comment)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)

	return err
}

func (r *stories) HasReport(ctx context.Context, storyID, reporterID uuid.UUID) (bool, error) {
	count, err := r.db.NewSelect().
		Model((*Report)(nil)).
		Where("?TableAlias.story_id = ?", storyID).
		Where("?TableAlias.reporter_id = ?", reporterID).
		Count(ctx)

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// AddReport stores the report and bumps the story's counter in one
// statement each, returning the new count.
func (r *stories) AddReport(ctx context.Context, report *Report) (int, error) {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	now := time.Now()
	report.CreatedAt = &now

	if _, err := r.db.NewInsert().Model(report).Exec(ctx); err != nil {
		return 0, err
	}

	if _, err := r.db.NewUpdate().
		Model((*Story)(nil)).
		Set("report_count = report_count + 1").
		Where("?TableAlias.id = ?", report.StoryID).
		Exec(ctx); err != nil {
		return 0, err
	}

	count, err := r.db.NewSelect().
		Model((*Report)(nil)).
		Where("?TableAlias.story_id = ?", report.StoryID).
		Count(ctx)

	return count, err
}
