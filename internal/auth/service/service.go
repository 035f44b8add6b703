package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"softwaresur_backend/internal/auth/password"
	"softwaresur_backend/internal/auth/repository"
	"softwaresur_backend/internal/auth/transport"
	"softwaresur_backend/platform/apperr"
	"softwaresur_backend/platform/config"
	"softwaresur_backend/platform/logger"
)

const accessTokenType = "access"

// Config combines the configuration the auth service needs.
type Config interface {
	config.JWTConfig
	config.AuthServiceConfig
}

type Service struct {
	repo *repository.Repository
	cfg  Config
	log  *logger.Logger
}

func New(repo *repository.Repository, cfg Config, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Login verifies admin credentials and issues a signed access token.
// Unknown emails and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (*transport.LoginResponse, error) {
	admin, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if err := password.Compare(admin.PasswordHash, req.Password); err != nil {
		s.log.AuthEvent("login", admin.Email, false, "wrong password")
		return nil, apperr.Unauthorized("invalid credentials")
	}

	ttl := s.cfg.GetAccessTokenTTL()
	token, err := s.signJWT(admin, ttl)
	if err != nil {
		return nil, err
	}

	s.log.AuthEvent("login", admin.Email, true, "")

	return &transport.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
		Admin: transport.AdminProfile{
			ID:          admin.ID,
			Email:       admin.Email,
			DisplayName: admin.DisplayName,
		},
	}, nil
}

// Profile returns the admin profile for an authenticated user ID.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*transport.AdminProfile, error) {
	admin, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &transport.AdminProfile{
		ID:          admin.ID,
		Email:       admin.Email,
		DisplayName: admin.DisplayName,
	}, nil
}

// IsAdmin reports whether userID belongs to a registered admin. Any
// lookup failure reads as "not an admin" so authorization fails closed.
func (s *Service) IsAdmin(ctx context.Context, userID uuid.UUID) bool {
	ok, err := s.repo.Exists(ctx, userID)
	if err != nil {
		s.log.Error("admin check failed, denying access", "user_id", userID, "error", err)
		return false
	}
	return ok
}

func (s *Service) signJWT(admin *repository.Admin, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   admin.ID.String(),
		"email": admin.Email,
		"type":  accessTokenType,
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
