package auth

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// passwordChangeSkew backdates password_changed_at so a session token
// minted in the same instant as the save still reads as stale.
const passwordChangeSkew = time.Second

var SetUserPasswordSQL = `UPDATE "users" AS "usr"
SET
	"password_hash" = ?,
	"password_changed_at" = ?,
	"reset_token_hash" = NULL,
	"reset_token_expires_at" = NULL
WHERE
	"usr"."deleted_at" IS NULL
AND (
	"usr"."id" = ?
) RETURNING *;`

var ConsumeResetTokenSQL = `UPDATE "users" AS "usr"
SET
	"reset_token_hash" = NULL,
	"reset_token_expires_at" = NULL
WHERE
	"usr"."deleted_at" IS NULL
AND "usr"."reset_token_hash" = ?
AND "usr"."reset_token_expires_at" > ?
RETURNING *;`

var ConsumeVerifyTokenSQL = `UPDATE "users" AS "usr"
SET
	"verify_token_hash" = NULL,
	"verify_token_expires_at" = NULL
WHERE
	"usr"."deleted_at" IS NULL
AND "usr"."verify_token_hash" = ?
AND "usr"."verify_token_expires_at" > ?
RETURNING *;`

type Users interface {
	repository.Repository[*User]

	GetByEmail(ctx context.Context, email string) (*User, error)
	ListIdentifiersForName(ctx context.Context, name string) ([]string, error)

	Register(ctx context.Context, user *User) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)

	SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) (*User, error)
	SetPasswordTx(ctx context.Context, tx bun.IDB, id uuid.UUID, passwordHash string) (*User, error)

	SaveToken(ctx context.Context, id uuid.UUID, purpose TokenPurpose, digest string, expiresAt time.Time) error
	ClearToken(ctx context.Context, id uuid.UUID, purpose TokenPurpose) error
	ConsumeToken(ctx context.Context, purpose TokenPurpose, digest string) (*User, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status UserStatus) (*User, error)
	TouchLastSeen(ctx context.Context, id string) error
}

type users struct {
	repository.Repository[*User]
	db  *bun.DB
	now func() time.Time
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
	_ UserStore                    = (*users)(nil)
)

type UsersOption func(*users)

// WithUsersClock injects a custom clock (useful for expiry tests).
func WithUsersClock(clock func() time.Time) UsersOption {
	return func(u *users) {
		if clock != nil {
			u.now = clock
		}
	}
}

func NewUsersRepository(db *bun.DB, opts ...UsersOption) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	repoUsers := &users{
		Repository: repo,
		db:         db,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(repoUsers)
		}
	}

	return repoUsers
}

func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	return a.RegisterTx(ctx, a.db, user)
}

func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	prepareUserDefaults(user)
	return a.Repository.CreateTx(ctx, tx, user)
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("lower(?TableAlias.email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"email": email})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) ListIdentifiersForName(ctx context.Context, name string) ([]string, error) {
	var identifiers []string
	err := a.db.NewSelect().
		Model((*User)(nil)).
		Column("identifier").
		Where("?TableAlias.name = ?", strings.ToLower(strings.TrimSpace(name))).
		Scan(ctx, &identifiers)

	if err != nil {
		return nil, err
	}

	return identifiers, nil
}

func (a *users) SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) (*User, error) {
	return a.SetPasswordTx(ctx, a.db, id, passwordHash)
}

func (a *users) SetPasswordTx(ctx context.Context, tx bun.IDB, id uuid.UUID, passwordHash string) (*User, error) {
	changedAt := a.now().Add(-passwordChangeSkew)

	res, err := a.Repository.RawTx(ctx, tx, SetUserPasswordSQL, passwordHash, changedAt, id.String())
	if err != nil {
		return nil, err
	}

	if len(res) == 0 {
		return nil, repository.NewRecordNotFound().
			WithMetadata(map[string]any{"id": id.String()})
	}

	return res[0], nil
}

func (a *users) SaveToken(ctx context.Context, id uuid.UUID, purpose TokenPurpose, digest string, expiresAt time.Time) error {
	q := a.db.NewUpdate().
		Model((*User)(nil)).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.deleted_at IS NULL")

	// a fresh issuance overwrites the prior token for the same purpose
	if purpose == TokenPurposeVerify {
		q = q.Set("verify_token_hash = ?", digest).
			Set("verify_token_expires_at = ?", expiresAt)
	} else {
		q = q.Set("reset_token_hash = ?", digest).
			Set("reset_token_expires_at = ?", expiresAt)
	}

	_, err := q.Exec(ctx)
	return err
}

// ClearToken rolls back an issued token, e.g. after a failed email send.
func (a *users) ClearToken(ctx context.Context, id uuid.UUID, purpose TokenPurpose) error {
	q := a.db.NewUpdate().
		Model((*User)(nil)).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.deleted_at IS NULL")

	if purpose == TokenPurposeVerify {
		q = q.Set("verify_token_hash = NULL").
			Set("verify_token_expires_at = NULL")
	} else {
		q = q.Set("reset_token_hash = NULL").
			Set("reset_token_expires_at = NULL")
	}

	_, err := q.Exec(ctx)
	return err
}

// ConsumeToken is a single conditional update on one user row: the
// match on hash and unexpired expiry and the clearing of the pair
// happen atomically, which makes tokens single-use.
func (a *users) ConsumeToken(ctx context.Context, purpose TokenPurpose, digest string) (*User, error) {
	sql := ConsumeResetTokenSQL
	if purpose == TokenPurposeVerify {
		sql = ConsumeVerifyTokenSQL
	}

	res, err := a.Repository.Raw(ctx, sql, digest, a.now())
	if err != nil {
		return nil, err
	}

	if len(res) == 0 {
		return nil, repository.NewRecordNotFound().
			WithMetadata(map[string]any{"purpose": string(purpose)})
	}

	return res[0], nil
}

func (a *users) UpdateStatus(ctx context.Context, id uuid.UUID, status UserStatus) (*User, error) {
	record := &User{
		ID:     id,
		Status: status,
	}

	return a.Repository.Update(ctx, record, repository.UpdateByID(id.String()))
}

func (a *users) TouchLastSeen(ctx context.Context, id string) error {
	_, err := a.db.NewUpdate().
		Model((*User)(nil)).
		Set("last_seen_at = ?", a.now()).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.deleted_at IS NULL").
		Exec(ctx)

	return err
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = RoleUser
	}

	record.Email = strings.ToLower(strings.TrimSpace(record.Email))
	record.Name = strings.ToLower(strings.TrimSpace(record.Name))
	record.EnsureStatus()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
