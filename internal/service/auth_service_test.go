package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/alexkm13/scarlet-planner/internal/models"
	appErrors "github.com/alexkm13/scarlet-planner/pkg/errors"
)

type mockUserRepo struct {
	users  map[string]models.User
	tokens map[string]models.RefreshToken
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:  map[string]models.User{},
		tokens: map[string]models.RefreshToken{},
	}
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	m.users[user.ID] = *user
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	if u, ok := m.users[id]; ok {
		u.LastLogin = &ts
		m.users[id] = u
	}
	return nil
}

func (m *mockUserRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	m.tokens[token.Token] = *token
	return nil
}

func (m *mockUserRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	if t, ok := m.tokens[token]; ok {
		return &t, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	for k, t := range m.tokens {
		if t.ID == id {
			t.Revoked = true
			t.RevokedAt = &revokedAt
			m.tokens[k] = t
		}
	}
	return nil
}

func newTestAuth(repo *mockUserRepo) *AuthService {
	return NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		AccessTokenSecret:  "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "scarlet-planner",
	})
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuth(repo)

	registered, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "student@bu.edu",
		Password: "hunter22",
		FullName: "Test Student",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)

	logged, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "student@bu.edu",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, logged.User.ID)

	claims, err := svc.ValidateToken(logged.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, "student@bu.edu", claims.Email)
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuth(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Email: "a@bu.edu", Password: "secret1", FullName: "A"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), models.RegisterRequest{Email: "a@bu.edu", Password: "secret2", FullName: "A Again"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users["u1"] = models.User{ID: "u1", Email: "a@bu.edu", PasswordHash: string(hash), Active: true}
	svc := newTestAuth(repo)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "a@bu.edu", Password: "wrong"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestAuthServiceRefreshRotatesToken(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuth(repo)

	registered, err := svc.Register(context.Background(), models.RegisterRequest{Email: "a@bu.edu", Password: "secret1", FullName: "A"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// the spent token no longer works
	_, err = svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: registered.RefreshToken})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuth(newMockUserRepo())
	_, err := svc.ValidateToken("not-a-jwt")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}
