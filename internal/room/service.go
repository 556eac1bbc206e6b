package room

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

var (
	ErrRoomNotFound = errors.New("room not found", errors.CategoryNotFound).
			WithTextCode("ROOM_NOT_FOUND").
			WithCode(errors.CodeNotFound)

	ErrNotMember = errors.New("you are not a member of this room", errors.CategoryAuthz).
			WithTextCode("NOT_ROOM_MEMBER").
			WithCode(errors.CodeForbidden)

	ErrNotModerator = errors.New("only moderators can do that", errors.CategoryAuthz).
			WithTextCode("NOT_ROOM_MODERATOR").
			WithCode(errors.CodeForbidden)

	ErrAlreadyMember = errors.New("already a member of this room", errors.CategoryConflict).
				WithTextCode("ALREADY_ROOM_MEMBER").
				WithCode(errors.CodeConflict)

	ErrRoomFull = errors.New("this room is full", errors.CategoryConflict).
			WithTextCode("ROOM_FULL").
			WithCode(errors.CodeConflict)

	ErrSlowMode = errors.New("slow mode is on, wait before posting again", errors.CategoryRateLimit).
			WithTextCode("SLOW_MODE")

	ErrMissingName = errors.New("room name is required", errors.CategoryValidation).
			WithTextCode("MISSING_ROOM_NAME").
			WithCode(errors.CodeBadRequest)
)

// Store is the storage slice the service needs.
type Store interface {
	CreateRoom(ctx context.Context, record *Room) (*Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*Room, error)
	ListRooms(ctx context.Context, language string) ([]*Room, error)
	UpdateRoom(ctx context.Context, record *Room) (*Room, error)

	GetMember(ctx context.Context, roomID, userID uuid.UUID) (*Member, error)
	CountMembers(ctx context.Context, roomID uuid.UUID) (int, error)
	AddMember(ctx context.Context, member *Member) error
	RemoveMember(ctx context.Context, roomID, userID uuid.UUID) error
	TouchLastMessage(ctx context.Context, roomID, userID uuid.UUID, at time.Time) error
}

type Service struct {
	store Store
	now   func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(store Store, opts ...Option) *Service {
	svc := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type CreateInput struct {
	CreatorID       uuid.UUID `json:"-"`
	Name            string    `json:"name"`
	Topic           string    `json:"topic"`
	Language        string    `json:"language"`
	Capacity        int       `json:"capacity"`
	SlowModeSeconds int       `json:"slow_mode_seconds"`
}

// Create opens a room and seats the creator as its first moderator.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Room, error) {
	if input.Name == "" {
		return nil, ErrMissingName
	}
	if input.SlowModeSeconds < 0 {
		input.SlowModeSeconds = 0
	}
	if input.Capacity < 0 {
		input.Capacity = 0
	}

	record := &Room{
		ID:              uuid.New(),
		CreatorID:       input.CreatorID,
		Name:            input.Name,
		Topic:           input.Topic,
		Language:        input.Language,
		Capacity:        input.Capacity,
		SlowModeSeconds: input.SlowModeSeconds,
	}

	created, err := s.store.CreateRoom(ctx, record)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create room")
	}

	member := &Member{
		RoomID: created.ID,
		UserID: input.CreatorID,
		Role:   RoleModerator,
	}
	if err := s.store.AddMember(ctx, member); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to seat room creator")
	}

	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Room, error) {
	record, err := s.store.GetRoom(ctx, id)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrRoomNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load room")
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, language string) ([]*Room, error) {
	records, err := s.store.ListRooms(ctx, language)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list rooms")
	}
	return records, nil
}

func (s *Service) Join(ctx context.Context, roomID, userID uuid.UUID) (*Member, error) {
	record, err := s.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.store.GetMember(ctx, roomID, userID); err == nil && existing != nil {
		return nil, ErrAlreadyMember
	} else if err != nil && !repository.IsRecordNotFound(err) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check membership")
	}

	if record.Capacity > 0 {
		seated, err := s.store.CountMembers(ctx, roomID)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to count members")
		}
		if seated >= record.Capacity {
			return nil, ErrRoomFull
		}
	}

	member := &Member{
		RoomID: roomID,
		UserID: userID,
		Role:   RoleMember,
	}
	if err := s.store.AddMember(ctx, member); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to join room")
	}

	return member, nil
}

func (s *Service) Leave(ctx context.Context, roomID, userID uuid.UUID) error {
	if _, err := s.member(ctx, roomID, userID); err != nil {
		return err
	}

	if err := s.store.RemoveMember(ctx, roomID, userID); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to leave room")
	}
	return nil
}

// SetSlowMode changes the room's posting cooldown. Moderators only.
func (s *Service) SetSlowMode(ctx context.Context, roomID, userID uuid.UUID, seconds int) (*Room, error) {
	member, err := s.member(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if !member.IsModerator() {
		return nil, ErrNotModerator
	}
	if seconds < 0 {
		seconds = 0
	}

	record, err := s.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}

	record.SlowModeSeconds = seconds
	updated, err := s.store.UpdateRoom(ctx, record)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update slow mode")
	}

	return updated, nil
}

// ClaimPostSlot enforces slow mode for one outgoing message. On
// success the member's cadence clock advances; under cooldown it
// returns ErrSlowMode with the remaining wait attached.
func (s *Service) ClaimPostSlot(ctx context.Context, roomID, userID uuid.UUID) error {
	record, err := s.Get(ctx, roomID)
	if err != nil {
		return err
	}

	member, err := s.member(ctx, roomID, userID)
	if err != nil {
		return err
	}

	now := s.now()
	ok, wait := member.CanPostAt(record, now)
	if !ok {
		clone := ErrSlowMode.Clone()
		clone.Source = ErrSlowMode
		return clone.WithMetadata(map[string]any{
			"retry_after_seconds": int(wait.Seconds()) + 1,
		})
	}

	if err := s.store.TouchLastMessage(ctx, roomID, userID, now); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to record message time")
	}

	return nil
}

func (s *Service) member(ctx context.Context, roomID, userID uuid.UUID) (*Member, error) {
	member, err := s.store.GetMember(ctx, roomID, userID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrNotMember
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load membership")
	}
	return member, nil
}
