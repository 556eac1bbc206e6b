// Package database bootstraps the bun connection and schema.
package database

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/genkan-app/genkan/internal/auth"
	"github.com/genkan-app/genkan/internal/lesson"
	"github.com/genkan-app/genkan/internal/room"
	"github.com/genkan-app/genkan/internal/social"
	"github.com/genkan-app/genkan/internal/story"
)

// Connect opens the database through the sqlite shim.
func Connect(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	return db, nil
}

func models() []any {
	return []any{
		(*auth.User)(nil),
		(*story.Story)(nil),
		(*story.Like)(nil),
		(*story.Comment)(nil),
		(*story.Report)(nil),
		(*lesson.Lesson)(nil),
		(*lesson.Widget)(nil),
		(*room.Room)(nil),
		(*room.Member)(nil),
		(*social.FriendRequest)(nil),
		(*social.BlockEntry)(nil),
		(*social.Notification)(nil),
	}
}

// CreateSchema creates any missing tables. Each model maps to one
// table; there is no cross-table transaction requirement in this core.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range models() {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}
