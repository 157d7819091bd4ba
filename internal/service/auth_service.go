package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/alexkm13/scarlet-planner/internal/models"
	appErrors "github.com/alexkm13/scarlet-planner/pkg/errors"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
	CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	Issuer             string
}

// AuthService provides authentication use cases.
type AuthService struct {
	repo      authUserRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{repo: repo, validator: validate, logger: logger, config: config}
}

// Register creates a new account and logs it in.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Active:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	return s.issueTokens(ctx, user)
}

// Login authenticates a user and returns issued tokens.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if !user.Active {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to update last login", zap.Error(err))
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken exchanges a refresh token for a new access token pair.
// The used token is revoked so each refresh token is single use.
func (s *AuthService) RefreshToken(ctx context.Context, req models.RefreshTokenRequest) (*models.RefreshTokenResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid refresh payload")
	}

	storedToken, err := s.repo.FindRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "refresh token not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch refresh token")
	}

	if storedToken.Revoked || time.Now().UTC().After(storedToken.ExpiresAt) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "refresh token is expired or revoked")
	}

	user, err := s.repo.FindByID(ctx, storedToken.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "associated user no longer exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	if !user.Active {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "account is inactive")
	}

	if err := s.repo.RevokeRefreshToken(ctx, storedToken.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to revoke used refresh token", zap.Error(err))
	}

	issued, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &models.RefreshTokenResponse{
		AccessToken:  issued.AccessToken,
		RefreshToken: issued.RefreshToken,
		ExpiresIn:    issued.ExpiresIn,
		IssuedAt:     issued.IssuedAt,
	}, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*models.LoginResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	refreshTokenValue, err := s.generateRefreshTokenString()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create refresh token")
	}

	refreshToken := &models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     refreshTokenValue,
		ExpiresAt: time.Now().UTC().Add(s.config.RefreshTokenExpiry),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateRefreshToken(ctx, refreshToken); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist refresh token")
	}

	return &models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		ExpiresIn:    int64(s.config.AccessTokenExpiry.Seconds()),
		IssuedAt:     time.Now().UTC(),
		User: models.UserInfo{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now().UTC()
	claims := models.JWTClaims{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenExpiry)),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.AccessTokenSecret))
}

func (s *AuthService) generateRefreshTokenString() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
