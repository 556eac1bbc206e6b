package lesson

import (
	"context"
	"encoding/json"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// CatalogLimit caps the published catalog listing.
const CatalogLimit = 50

var (
	ErrLessonNotFound = errors.New("lesson not found", errors.CategoryNotFound).
				WithTextCode("LESSON_NOT_FOUND").
				WithCode(errors.CodeNotFound)

	ErrNotLessonAuthor = errors.New("you can only change your own lessons", errors.CategoryAuthz).
				WithTextCode("NOT_LESSON_AUTHOR").
				WithCode(errors.CodeForbidden)

	ErrMissingTitle = errors.New("lesson title is required", errors.CategoryValidation).
			WithTextCode("MISSING_TITLE").
			WithCode(errors.CodeBadRequest)

	ErrMissingLanguage = errors.New("lesson language is required", errors.CategoryValidation).
				WithTextCode("MISSING_LANGUAGE").
				WithCode(errors.CodeBadRequest)
)

// Store is the storage slice the service needs.
type Store interface {
	Create(ctx context.Context, record *Lesson, criteria ...repository.InsertCriteria) (*Lesson, error)
	Update(ctx context.Context, record *Lesson, criteria ...repository.UpdateCriteria) (*Lesson, error)

	GetWithWidgets(ctx context.Context, id uuid.UUID) (*Lesson, error)
	Published(ctx context.Context, language string, limit int) ([]*Lesson, error)
	ByAuthor(ctx context.Context, authorID uuid.UUID) ([]*Lesson, error)
	ReplaceWidgets(ctx context.Context, lessonID uuid.UUID, widgets []*Widget) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// WidgetInput is one incoming widget block. Payload is validated
// against Kind before anything is stored.
type WidgetInput struct {
	Kind    WidgetKind      `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

type CreateInput struct {
	AuthorID    uuid.UUID     `json:"-"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Language    string        `json:"language"`
	Level       string        `json:"level"`
	Widgets     []WidgetInput `json:"widgets"`
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Lesson, error) {
	if input.Title == "" {
		return nil, ErrMissingTitle
	}
	if input.Language == "" {
		return nil, ErrMissingLanguage
	}

	widgets, err := buildWidgets(input.Widgets)
	if err != nil {
		return nil, err
	}

	record := &Lesson{
		ID:          uuid.New(),
		AuthorID:    input.AuthorID,
		Title:       input.Title,
		Description: input.Description,
		Language:    input.Language,
		Level:       input.Level,
		Status:      StatusDraft,
	}

	created, err := s.store.Create(ctx, record)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create lesson")
	}

	if err := s.store.ReplaceWidgets(ctx, created.ID, widgets); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to save lesson widgets")
	}
	created.Widgets = widgets

	return created, nil
}

// UpdateInput carries a full lesson rewrite. A nil Widgets slice keeps
// the existing blocks.
type UpdateInput struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Level       string        `json:"level"`
	Widgets     []WidgetInput `json:"widgets"`
}

func (s *Service) Update(ctx context.Context, authorID, lessonID uuid.UUID, input UpdateInput) (*Lesson, error) {
	record, err := s.getAuthored(ctx, authorID, lessonID)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		record.Title = input.Title
	}
	if input.Description != "" {
		record.Description = input.Description
	}
	if input.Level != "" {
		record.Level = input.Level
	}

	updated, err := s.store.Update(ctx, record, repository.UpdateByID(record.ID.String()))
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update lesson")
	}

	if input.Widgets != nil {
		widgets, err := buildWidgets(input.Widgets)
		if err != nil {
			return nil, err
		}
		if err := s.store.ReplaceWidgets(ctx, record.ID, widgets); err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to save lesson widgets")
		}
		updated.Widgets = widgets
	}

	return updated, nil
}

// SetStatus moves a lesson between draft, published, and private.
func (s *Service) SetStatus(ctx context.Context, authorID, lessonID uuid.UUID, status LessonStatus) (*Lesson, error) {
	switch status {
	case StatusDraft, StatusPublished, StatusPrivate:
	default:
		return nil, errors.New("invalid lesson status", errors.CategoryValidation).
			WithTextCode("INVALID_LESSON_STATUS").
			WithCode(errors.CodeBadRequest)
	}

	record, err := s.getAuthored(ctx, authorID, lessonID)
	if err != nil {
		return nil, err
	}

	record.Status = status
	updated, err := s.store.Update(ctx, record, repository.UpdateByID(record.ID.String()))
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update lesson status")
	}

	return updated, nil
}

// Get returns a lesson the caller may read.
func (s *Service) Get(ctx context.Context, userID, lessonID uuid.UUID) (*Lesson, error) {
	record, err := s.store.GetWithWidgets(ctx, lessonID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrLessonNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load lesson")
	}

	if !record.VisibleTo(userID) {
		return nil, ErrLessonNotFound
	}

	return record, nil
}

// Catalog lists published lessons, optionally filtered by language.
func (s *Service) Catalog(ctx context.Context, language string) ([]*Lesson, error) {
	records, err := s.store.Published(ctx, language, CatalogLimit)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load lesson catalog")
	}
	return records, nil
}

// Authored lists the caller's own lessons in every state but deleted.
func (s *Service) Authored(ctx context.Context, authorID uuid.UUID) ([]*Lesson, error) {
	records, err := s.store.ByAuthor(ctx, authorID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load authored lessons")
	}
	return records, nil
}

func (s *Service) Delete(ctx context.Context, authorID, lessonID uuid.UUID) error {
	record, err := s.getAuthored(ctx, authorID, lessonID)
	if err != nil {
		return err
	}

	record.Status = StatusDeleted
	if _, err := s.store.Update(ctx, record, repository.UpdateByID(record.ID.String())); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete lesson")
	}

	return nil
}

func (s *Service) getAuthored(ctx context.Context, authorID, lessonID uuid.UUID) (*Lesson, error) {
	record, err := s.store.GetWithWidgets(ctx, lessonID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrLessonNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load lesson")
	}

	if record.AuthorID != authorID {
		return nil, ErrNotLessonAuthor
	}

	return record, nil
}

func buildWidgets(inputs []WidgetInput) ([]*Widget, error) {
	widgets := make([]*Widget, 0, len(inputs))
	for i, in := range inputs {
		w := &Widget{
			ID:       uuid.New(),
			Position: i,
			Kind:     in.Kind,
			Payload:  in.Payload,
		}
		if _, err := w.Decode(); err != nil {
			return nil, err
		}
		widgets = append(widgets, w)
	}
	return widgets, nil
}
