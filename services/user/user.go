// Package user handles account registration, sign-in and per-user engagement
// state (bookmarks, liked reviews).
package user

import (
	"context"
	"fmt"
	"time"

	userRepo "glowbook/database/repository/user"
	"glowbook/models"
	"glowbook/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the lifetime of an issued auth token.
const TokenTTL = 72 * time.Hour

// AuthResponse carries the signed-in user and their bearer token.
type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// UserService defines account operations.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, user models.User) (*models.User, error)
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	AuthCache *redis.Client
	Logger    *zap.Logger
}

func (s *DefaultUserService) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("registration failed, please try again")
	}

	now := time.Now()
	usr := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, &usr); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return s.issueToken(ctx, &usr)
}

func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	usr, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		s.Logger.Warn("authenticate: user lookup failed", zap.Error(err))
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueToken(ctx, usr)
}

// issueToken generates a JWT, stores its hash on the user record and in the
// auth cache, and returns both.
func (s *DefaultUserService) issueToken(ctx context.Context, usr *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(usr.ID, usr.Email, TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	usr.TokenHash = tokenHash
	if err := s.Repo.Update(ctx, usr); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	cacheKey := utils.AuthCachePrefix + usr.ID
	if err := s.AuthCache.Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		s.Logger.Warn("failed to warm auth cache", zap.Error(err))
	}

	return &AuthResponse{User: *usr, Token: token}, nil
}

func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultUserService) UpdateProfile(ctx context.Context, user models.User) (*models.User, error) {
	existing, err := s.Repo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = user.Name
	existing.PhoneNumber = user.PhoneNumber
	existing.ProfileAddress = user.ProfileAddress
	existing.AlternativeAddress = user.AlternativeAddress
	existing.DarkMode = user.DarkMode
	if err := s.Repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
