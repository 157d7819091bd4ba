package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/alexkm13/scarlet-planner/internal/models"
)

// UserRepository provides database access for user accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT id, email, password_hash, full_name, active, last_login, created_at, updated_at FROM users WHERE email = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, email, password_hash, full_name, active, last_login, created_at, updated_at FROM users WHERE id = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	const query = `INSERT INTO users (id, email, password_hash, full_name, active, created_at, updated_at) VALUES (:id, :email, :password_hash, :full_name, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UpdateLastLogin updates the last_login timestamp for a user.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE users SET last_login = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, ts, ts); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// CreateRefreshToken persists a refresh token entry.
func (r *UserRepository) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO refresh_tokens (id, user_id, token, expires_at, created_at, revoked, revoked_at) VALUES (:id, :user_id, :token, :expires_at, :created_at, :revoked, :revoked_at)`
	if _, err := r.db.NamedExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

// FindRefreshToken returns a refresh token by token string.
func (r *UserRepository) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	const query = `SELECT id, user_id, token, expires_at, created_at, revoked, revoked_at FROM refresh_tokens WHERE token = $1 LIMIT 1`
	var rt models.RefreshToken
	if err := r.db.GetContext(ctx, &rt, query, token); err != nil {
		return nil, err
	}
	return &rt, nil
}

// RevokeRefreshToken marks a refresh token as revoked.
func (r *UserRepository) RevokeRefreshToken(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, ts); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}
