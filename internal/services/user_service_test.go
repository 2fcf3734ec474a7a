package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"chem-backend/internal/auth"
	"chem-backend/internal/config"
	"chem-backend/internal/models"
	"chem-backend/internal/repositories"

	"github.com/pquerna/otp/totp"
)

func newUserService() (*UserService, *fakeUsers, *fakeRevoker) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Issuer = "chem-test"
	cfg.JWT.ExpirationHours = 1
	users := &fakeUsers{}
	revoker := &fakeRevoker{}
	return NewUserService(users, auth.NewJWTManager(cfg), revoker), users, revoker
}

func TestRegisterFirstUserIsAdmin(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()

	first, err := svc.Register(ctx, &models.RegisterRequest{Username: "owner", Password: "pw"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if first.User.Role != models.RoleAdmin || first.Token == "" {
		t.Errorf("first user should be admin with a token, got %+v", first.User)
	}

	second, err := svc.Register(ctx, &models.RegisterRequest{Username: "clerk", Password: "pw"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if second.User.Role != models.RoleStaff {
		t.Errorf("second user should be staff, got %s", second.User.Role)
	}

	if _, err := svc.Register(ctx, &models.RegisterRequest{Username: "clerk", Password: "pw"}); !errors.Is(err, repositories.ErrDuplicateUsername) {
		t.Errorf("want ErrDuplicateUsername, got %v", err)
	}
	if _, err := svc.Register(ctx, &models.RegisterRequest{Username: "x"}); !errors.Is(err, ErrValidation) {
		t.Errorf("want ErrValidation, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newUserService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, &models.RegisterRequest{Username: "owner", Password: "secret"}); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.Login(ctx, &models.LoginRequest{Username: "owner", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := svc.JWTManager.ValidateToken(resp.Token)
	if err != nil || claims.Role != models.RoleAdmin {
		t.Errorf("token should carry the admin role: %v %+v", err, claims)
	}

	if _, err := svc.Login(ctx, &models.LoginRequest{Username: "owner", Password: "wrong"}); !errors.Is(err, ErrInvalidLogin) {
		t.Errorf("wrong password: want ErrInvalidLogin, got %v", err)
	}
	if _, err := svc.Login(ctx, &models.LoginRequest{Username: "ghost", Password: "secret"}); !errors.Is(err, ErrInvalidLogin) {
		t.Errorf("unknown user: want ErrInvalidLogin, got %v", err)
	}
}

func TestCreateStaffAdminOnly(t *testing.T) {
	svc, users, _ := newUserService()
	ctx := context.Background()

	if _, err := svc.CreateStaff(ctx, staffSession, &models.CreateStaffRequest{Username: "n", Password: "p"}); !errors.Is(err, auth.ErrForbidden) {
		t.Errorf("want ErrForbidden, got %v", err)
	}
	u, err := svc.CreateStaff(ctx, adminSession, &models.CreateStaffRequest{Name: "New", Username: "n", Password: "p"})
	if err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
	if u.Role != models.RoleStaff || len(users.items) != 1 {
		t.Errorf("unexpected staff user %+v", u)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, revoker := newUserService()
	session := &auth.Session{UserID: "u", TokenID: "jti-9", ExpiresAt: time.Now().Add(time.Hour)}

	if err := svc.Logout(context.Background(), session); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	ttl, ok := revoker.revoked["jti-9"]
	if !ok || ttl <= 0 || ttl > time.Hour {
		t.Errorf("token should be revoked until expiry, got %v %v", ok, ttl)
	}
	if err := svc.Logout(context.Background(), nil); !errors.Is(err, auth.ErrUnauthenticated) {
		t.Errorf("want ErrUnauthenticated, got %v", err)
	}
}

func TestTOTPFlow(t *testing.T) {
	svc, users, _ := newUserService()
	ctx := context.Background()
	reg, err := svc.Register(ctx, &models.RegisterRequest{Username: "owner", Password: "secret"})
	if err != nil {
		t.Fatal(err)
	}
	session := &auth.Session{UserID: reg.User.ID, Username: "owner", Role: models.RoleAdmin}

	setup, err := svc.SetupTOTP(ctx, session)
	if err != nil {
		t.Fatalf("SetupTOTP: %v", err)
	}
	if err := svc.EnableTOTP(ctx, session, "000000"); !errors.Is(err, ErrInvalidTOTP) {
		t.Errorf("want ErrInvalidTOTP, got %v", err)
	}

	code, _ := totp.GenerateCode(setup.Secret, time.Now())
	if err := svc.EnableTOTP(ctx, session, code); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}
	if !users.items[0].TOTPEnabled {
		t.Fatal("totp should be enabled")
	}

	if _, err := svc.Login(ctx, &models.LoginRequest{Username: "owner", Password: "secret"}); !errors.Is(err, ErrTOTPRequired) {
		t.Errorf("want ErrTOTPRequired, got %v", err)
	}
	code, _ = totp.GenerateCode(setup.Secret, time.Now())
	if _, err := svc.Login(ctx, &models.LoginRequest{Username: "owner", Password: "secret", TOTPCode: code}); err != nil {
		t.Errorf("login with code: %v", err)
	}
}
