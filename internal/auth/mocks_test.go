package auth_test

import (
	"context"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/genkan-app/genkan/internal/auth"
)

// MockUserStore satisfies both auth.UserStore and auth.LifecycleStore
// so one mock serves the provider and the lifecycle controller.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*auth.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) TouchLastSeen(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserStore) ListIdentifiersForName(ctx context.Context, name string) ([]string, error) {
	args := m.Called(ctx, name)
	if ids := args.Get(0); ids != nil {
		return ids.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) Register(ctx context.Context, user *auth.User) (*auth.User, error) {
	args := m.Called(ctx, user)
	if rf, ok := args.Get(0).(func(context.Context, *auth.User) (*auth.User, error)); ok {
		return rf(ctx, user)
	}
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) (*auth.User, error) {
	args := m.Called(ctx, id, passwordHash)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) SaveToken(ctx context.Context, id uuid.UUID, purpose auth.TokenPurpose, digest string, expiresAt time.Time) error {
	args := m.Called(ctx, id, purpose, digest, expiresAt)
	return args.Error(0)
}

func (m *MockUserStore) ClearToken(ctx context.Context, id uuid.UUID, purpose auth.TokenPurpose) error {
	args := m.Called(ctx, id, purpose)
	return args.Error(0)
}

func (m *MockUserStore) ConsumeToken(ctx context.Context, purpose auth.TokenPurpose, digest string) (*auth.User, error) {
	args := m.Called(ctx, purpose, digest)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) UpdateStatus(ctx context.Context, id uuid.UUID, status auth.UserStatus) (*auth.User, error) {
	args := m.Called(ctx, id, status)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}
