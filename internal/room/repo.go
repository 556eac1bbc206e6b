package room

import (
	"context"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Rooms interface {
	repository.Repository[*Room]
	Store
}

type rooms struct {
	repository.Repository[*Room]
	db *bun.DB
}

var _ Rooms = (*rooms)(nil)

func NewRoomsRepository(db *bun.DB) Rooms {
	repo := repository.NewRepository[*Room](db, repository.ModelHandlers[*Room]{
		NewRecord: func() *Room { return &Room{} },
		GetID: func(r *Room) uuid.UUID {
			if r == nil {
				return uuid.Nil
			}
			return r.ID
		},
		SetID: func(r *Room, id uuid.UUID) {
			if r != nil {
				r.ID = id
			}
		},
	})

	return &rooms{Repository: repo, db: db}
}

func (r *rooms) CreateRoom(ctx context.Context, record *Room) (*Room, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.Repository.Create(ctx, record)
}

func (r *rooms) GetRoom(ctx context.Context, id uuid.UUID) (*Room, error) {
	record := &Room{}
	err := r.db.NewSelect().
		Model(record).
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

func (r *rooms) ListRooms(ctx context.Context, language string) ([]*Room, error) {
	var records []*Room
	q := r.db.NewSelect().
		Model(&records).
		OrderExpr("?TableAlias.created_at DESC")

	if language != "" {
		q = q.Where("?TableAlias.language = ?", language)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *rooms) UpdateRoom(ctx context.Context, record *Room) (*Room, error) {
	return r.Repository.Update(ctx, record, repository.UpdateByID(record.ID.String()))
}

func (r *rooms) GetMember(ctx context.Context, roomID, userID uuid.UUID) (*Member, error) {
	member := &Member{}
	err := r.db.NewSelect().
		Model(member).
		Where("?TableAlias.room_id = ?", roomID).
		Where("?TableAlias.user_id = ?", userID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound()
		}
		return nil, err
	}

	return member, nil
}

func (r *rooms) CountMembers(ctx context.Context, roomID uuid.UUID) (int, error) {
	return r.db.NewSelect().
		Model((*Member)(nil)).
		Where("?TableAlias.room_id = ?", roomID).
		Count(ctx)
}

func (r *rooms) AddMember(ctx context.Context, member *Member) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	now := time.Now()
	member.JoinedAt = &now

	_, err := r.db.NewInsert().Model(member).Exec(ctx)
	return err
}

func (r *rooms) RemoveMember(ctx context.Context, roomID, userID uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*Member)(nil)).
		Where("?TableAlias.room_id = ?", roomID).
		Where("?TableAlias.user_id = ?", userID).
		Exec(ctx)

	return err
}

func (r *rooms) TouchLastMessage(ctx context.Context, roomID, userID uuid.UUID, at time.Time) error {
	_, err := r.db.NewUpdate().
		Model((*Member)(nil)).
		Set("last_message_at = ?", at).
		Where("?TableAlias.room_id = ?", roomID).
		Where("?TableAlias.user_id = ?", userID).
		Exec(ctx)

	return err
}
