package social

import (
	"context"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Graph is the storage surface for the social service.
type Graph interface {
	GetRequest(ctx context.Context, id uuid.UUID) (*FriendRequest, error)
	FindRequestBetween(ctx context.Context, a, b uuid.UUID) (*FriendRequest, error)
	CreateRequest(ctx context.Context, record *FriendRequest) error
	ResolveRequest(ctx context.Context, record *FriendRequest) error
	PendingFor(ctx context.Context, userID uuid.UUID) ([]*FriendRequest, error)
	FriendsOf(ctx context.Context, userID uuid.UUID) ([]*FriendRequest, error)

	IsBlocked(ctx context.Context, a, b uuid.UUID) (bool, error)
	AddBlock(ctx context.Context, record *BlockEntry) error
	RemoveBlock(ctx context.Context, blockerID, blockedID uuid.UUID) error
	BlockedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	AddNotification(ctx context.Context, record *Notification) error
	Notifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]*Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type graph struct {
	db *bun.DB
}

var _ Graph = (*graph)(nil)

func NewGraphRepository(db *bun.DB) Graph {
	return &graph{db: db}
}

func (g *graph) GetRequest(ctx context.Context, id uuid.UUID) (*FriendRequest, error) {
	record := &FriendRequest{}
	err := g.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound()
		}
		return nil, err
	}

	return record, nil
}

// FindRequestBetween matches the pair in either direction so a
// declined or pending request cannot be shadowed by a reversed one.
func (g *graph) FindRequestBetween(ctx context.Context, a, b uuid.UUID) (*FriendRequest, error) {
	record := &FriendRequest{}
	err := g.db.NewSelect().
		Model(record).
		Where("(?TableAlias.sender_id = ? AND ?TableAlias.recipient_id = ?) OR (?TableAlias.sender_id = ? AND ?TableAlias.recipient_id = ?)",
			a, b, b, a).
		Where("?TableAlias.status != ?", RequestDeclined).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound()
		}
		return nil, err
	}

	return record, nil
}

func (g *graph) CreateRequest(ctx context.Context, record *FriendRequest) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	now := time.Now()
	record.CreatedAt = &now

	_, err := g.db.NewInsert().Model(record).Exec(ctx)
	return err
}

func (g *graph) ResolveRequest(ctx context.Context, record *FriendRequest) error {
	now := time.Now()
	record.ResolvedAt = &now

	_, err := g.db.NewUpdate().
		Model(record).
		WherePK().
		Exec(ctx)

	return err
}

func (g *graph) PendingFor(ctx context.Context, userID uuid.UUID) ([]*FriendRequest, error) {
	var records []*FriendRequest
	err := g.db.NewSelect().
		Model(&records).
		Where("?TableAlias.recipient_id = ?", userID).
		Where("?TableAlias.status = ?", RequestPending).
		OrderExpr("?TableAlias.created_at DESC").
		Scan(ctx)

	return records, err
}

func (g *graph) FriendsOf(ctx context.Context, userID uuid.UUID) ([]*FriendRequest, error) {
	var records []*FriendRequest
	err := g.db.NewSelect().
		Model(&records).
		Where("?TableAlias.sender_id = ? OR ?TableAlias.recipient_id = ?", userID, userID).
		Where("?TableAlias.status = ?", RequestAccepted).
		Scan(ctx)

	return records, err
}

func (g *graph) IsBlocked(ctx context.Context, a, b uuid.UUID) (bool, error) {
	count, err := g.db.NewSelect().
		Model((*BlockEntry)(nil)).
		Where("(?TableAlias.blocker_id = ? AND ?TableAlias.blocked_id = ?) OR (?TableAlias.blocker_id = ? AND ?TableAlias.blocked_id = ?)",
			a, b, b, a).
		Count(ctx)

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (g *graph) AddBlock(ctx context.Context, record *BlockEntry) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	now := time.Now()
	record.CreatedAt = &now

	_, err := g.db.NewInsert().Model(record).Exec(ctx)
	return err
}

func (g *graph) RemoveBlock(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	_, err := g.db.NewDelete().
		Model((*BlockEntry)(nil)).
		Where("?TableAlias.blocker_id = ?", blockerID).
		Where("?TableAlias.blocked_id = ?", blockedID).
		Exec(ctx)

	return err
}

func (g *graph) BlockedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var entries []*BlockEntry
	err := g.db.NewSelect().
		Model(&entries).
		Where("?TableAlias.blocker_id = ? OR ?TableAlias.blocked_id = ?", userID, userID).
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		other := e.BlockedID
		if other == userID {
			other = e.BlockerID
		}
		ids = append(ids, other)
	}

	return ids, nil
}

func (g *graph) AddNotification(ctx context.Context, record *Notification) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	now := time.Now()
	record.CreatedAt = &now

	_, err := g.db.NewInsert().Model(record).Exec(ctx)
	return err
}

func (g *graph) Notifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]*Notification, error) {
	var records []*Notification
	q := g.db.NewSelect().
		Model(&records).
		Where("?TableAlias.user_id = ?", userID).
		OrderExpr("?TableAlias.created_at DESC").
		Limit(limit)

	if unreadOnly {
		q = q.Where("?TableAlias.read = ?", false)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	return records, nil
}

// MarkRead scopes the update to the owner so one member cannot clear
// another's inbox.
func (g *graph) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	_, err := g.db.NewUpdate().
		Model((*Notification)(nil)).
		Set("read = ?", true).
		Where("?TableAlias.id = ?", notificationID).
		Where("?TableAlias.user_id = ?", userID).
		Exec(ctx)

	return err
}

func (g *graph) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := g.db.NewUpdate().
		Model((*Notification)(nil)).
		Set("read = ?", true).
		Where("?TableAlias.user_id = ?", userID).
		Where("?TableAlias.read = ?", false).
		Exec(ctx)

	return err
}
