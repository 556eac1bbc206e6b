package match

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/genkan-app/genkan/internal/auth"
)

// DiscoverLimit caps one page of partner suggestions.
const DiscoverLimit = 20

// BlockSource feeds the filter the ids the seeker cannot be matched
// with.
type BlockSource interface {
	BlockedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Service runs partner discovery over the users table.
type Service struct {
	db     *bun.DB
	blocks BlockSource
	now    func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(db *bun.DB, blocks BlockSource, opts ...Option) *Service {
	svc := &Service{db: db, blocks: blocks, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Discover returns exchange partner suggestions for the seeker,
// recently active members first.
func (s *Service) Discover(ctx context.Context, seeker *auth.User) ([]*auth.User, error) {
	blocked, err := s.blocks.BlockedIDs(ctx, seeker.ID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load block list")
	}

	filter := BuildFilter(seeker, blocked, s.now())

	var candidates []*auth.User
	q := s.db.NewSelect().
		Model(&candidates).
		OrderExpr("?TableAlias.last_seen_at DESC NULLS LAST")

	if err := filter.Apply(q).Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to query candidates")
	}

	matched := filter.Select(candidates)
	if len(matched) > DiscoverLimit {
		matched = matched[:DiscoverLimit]
	}

	return matched, nil
}
