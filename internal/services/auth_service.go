package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/complaintbox/backend/internal/config"
	"github.com/complaintbox/backend/internal/dto"
	"github.com/complaintbox/backend/internal/storage"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService performs credential login for the admin dashboard and mints the
// session token. Username lookup is case-sensitive and only matches active
// accounts.
type AuthService struct {
	store storage.Storage
	cfg   *config.Config
}

func NewAuthService(store storage.Storage, cfg *config.Config) *AuthService {
	return &AuthService{store: store, cfg: cfg}
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.store.FindActiveAdmin(req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// A failed lastLogin write must not block an otherwise valid login.
	if err := s.store.TouchAdminLogin(admin.ID, time.Now().UTC()); err != nil {
		slog.Warn("failed to update last login", "username", admin.Username, "error", err)
	}

	token, err := s.generateSessionToken(admin.ID.String(), admin.Username, admin.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User: dto.SessionUser{
			ID:       admin.ID,
			Username: admin.Username,
			Role:     admin.Role,
		},
	}, nil
}

func (s *AuthService) generateSessionToken(sub, username, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      sub,
		"username": username,
		"role":     role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
