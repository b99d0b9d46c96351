package application

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/repository"
	"todo-api/pkg/helpers"
)

// mockUserRepo is a mock implementation of repository.UserRepository.
type mockUserRepo struct {
	CreateFunc     func(ctx context.Context, u *entity.User) error
	GetByIDFunc    func(ctx context.Context, id string) (*entity.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	u.ID = "generated-id"
	u.CreatedAt = time.Now()
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newAuthService(repo *mockUserRepo) *AuthService {
	return NewAuthService(repo, helpers.NewJWTManager("test-secret", 24*time.Hour), testLogger())
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("stores a hash, never the plaintext", func(t *testing.T) {
		var stored *entity.User
		repo := &mockUserRepo{
			CreateFunc: func(ctx context.Context, u *entity.User) error {
				stored = u
				u.ID = "u-1"
				return nil
			},
		}

		u, err := newAuthService(repo).Signup(context.Background(), "A@B.com", "Abc123")
		require.NoError(t, err)
		require.NotNil(t, stored)

		assert.Equal(t, "a@b.com", u.Email) // normalized to lowercase
		assert.Equal(t, entity.RoleUser, u.Role)
		assert.NotEqual(t, "Abc123", stored.Password)
		// the hash verifies against the original plaintext
		assert.True(t, helpers.CompareHashAndPassword(stored.Password, "Abc123"))
	})

	t.Run("duplicate email found by the explicit check", func(t *testing.T) {
		repo := &mockUserRepo{
			GetByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: "u-1", Email: email}, nil
			},
		}

		_, err := newAuthService(repo).Signup(context.Background(), "a@b.com", "Abc123")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("duplicate surfaced by the store after losing the race", func(t *testing.T) {
		repo := &mockUserRepo{
			CreateFunc: func(ctx context.Context, u *entity.User) error {
				return repository.ErrDuplicateEmail
			},
		}

		_, err := newAuthService(repo).Signup(context.Background(), "a@b.com", "Abc123")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		repo := &mockUserRepo{
			GetByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, errors.New("connection refused")
			},
		}

		_, err := newAuthService(repo).Signup(context.Background(), "a@b.com", "Abc123")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := helpers.HashPassword("Abc123")
	require.NoError(t, err)
	known := &entity.User{ID: "u-1", Email: "a@b.com", Password: hash, Role: entity.RoleUser}

	repo := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			if email == "a@b.com" {
				return known, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	svc := newAuthService(repo)

	t.Run("success issues a token with the user's claims", func(t *testing.T) {
		u, token, exp, err := svc.Login(context.Background(), "A@B.COM", "Abc123")
		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, 5*time.Second)

		claims, err := svc.JWT.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "u-1", claims.UserID)
		assert.Equal(t, "a@b.com", claims.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(context.Background(), "a@b.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email is indistinguishable from a bad password", func(t *testing.T) {
		_, _, _, err := svc.Login(context.Background(), "nobody@b.com", "Abc123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
