package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"chem-backend/internal/auth"
	"chem-backend/internal/models"
	"chem-backend/internal/repositories"
)

// TokenRevoker stores logged-out token ids until they expire
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

type UserService struct {
	Repo       UserStore
	JWTManager *auth.JWTManager
	Revoker    TokenRevoker
}

func NewUserService(repo UserStore, jwtManager *auth.JWTManager, revoker TokenRevoker) *UserService {
	return &UserService{
		Repo:       repo,
		JWTManager: jwtManager,
		Revoker:    revoker,
	}
}

// Register self-registers an account. The very first account becomes
// admin; every later one is staff.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, invalid("username and password are required")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.Repo.CreateAutoRole(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("[Users] Registered %s as %s", user.Username, user.Role)

	return s.issue(user)
}

// Login checks the password and, when enabled, the TOTP code
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.Repo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidLogin
	}
	if err != nil {
		return nil, err
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidLogin
	}

	if user.TOTPEnabled {
		if req.TOTPCode == "" {
			return nil, ErrTOTPRequired
		}
		if !auth.ValidateTOTP(req.TOTPCode, user.TOTPSecret) {
			return nil, ErrInvalidTOTP
		}
	}

	return s.issue(user)
}

// CreateStaff provisions a staff account directly. Admin only.
func (s *UserService) CreateStaff(ctx context.Context, session *auth.Session, req *models.CreateStaffRequest) (*models.User, error) {
	if err := auth.Authorize(session, auth.ActionCreateStaff); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, invalid("username and password are required")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleStaff,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("[Users] %s created staff account %s", session.Username, user.Username)
	return user, nil
}

// Logout revokes the session's token for the rest of its lifetime
func (s *UserService) Logout(ctx context.Context, session *auth.Session) error {
	if session == nil {
		return auth.ErrUnauthenticated
	}
	if s.Revoker == nil {
		return nil
	}
	return s.Revoker.Revoke(ctx, session.TokenID, time.Until(session.ExpiresAt))
}

// SetupTOTP generates and stores a new (not yet enabled) TOTP secret
func (s *UserService) SetupTOTP(ctx context.Context, session *auth.Session) (*models.TOTPSetupResponse, error) {
	if session == nil {
		return nil, auth.ErrUnauthenticated
	}
	secret, url, err := auth.GenerateTOTP(session.Username)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetTOTPSecret(ctx, session.UserID, secret); err != nil {
		return nil, err
	}
	return &models.TOTPSetupResponse{Secret: secret, URL: url}, nil
}

// EnableTOTP turns on two-factor login once the user proves they hold the secret
func (s *UserService) EnableTOTP(ctx context.Context, session *auth.Session, code string) error {
	if session == nil {
		return auth.ErrUnauthenticated
	}
	user, err := s.Repo.Get(ctx, session.UserID)
	if err != nil {
		return err
	}
	if user.TOTPSecret == "" {
		return invalid("run TOTP setup first")
	}
	if !auth.ValidateTOTP(code, user.TOTPSecret) {
		return ErrInvalidTOTP
	}
	return s.Repo.EnableTOTP(ctx, user.ID)
}

func (s *UserService) issue(user *models.User) (*models.AuthResponse, error) {
	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}
