package service

import (
	"errors"
	"testing"
	"time"

	"github.com/techgear-vn/techgear-api/internal/config"
	"github.com/techgear-vn/techgear-api/internal/repository"

	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := newServiceTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key-test-secret-key-1234"
	cfg.JWT.ExpireHours = 24
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{
		MinLength:     8,
		RequireNumber: true,
		RequireLetter: true,
	}
	svc := NewAuthService(cfg, repository.NewUserRepository(db), nil)
	return svc, db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, err := svc.Register(RegisterInput{
		Email:    " Shopper@Test.Local ",
		Password: "secret1234",
		Name:     "Shopper",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "shopper@test.local" {
		t.Fatalf("email should be lowercased and trimmed, got %q", user.Email)
	}
	if user.Role != "USER" {
		t.Fatalf("role want USER got %s", user.Role)
	}

	got, token, expiresAt, err := svc.Login("shopper@test.local", "secret1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("login user id want %d got %d", user.ID, got.ID)
	}
	if token == "" {
		t.Fatalf("expected a session token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("token expiry should be in the future, got %v", expiresAt)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != "USER" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, err := svc.Register(RegisterInput{Email: "dup@test.local", Password: "secret1234"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(RegisterInput{Email: "DUP@test.local", Password: "secret1234"})
	if err != ErrEmailTaken {
		t.Fatalf("duplicate email want ErrEmailTaken got %v", err)
	}
}

func TestRegisterEnforcesPasswordPolicy(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	_, err := svc.Register(RegisterInput{Email: "weak@test.local", Password: "short1"})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("short password want ErrWeakPassword got %v", err)
	}
	_, err = svc.Register(RegisterInput{Email: "weak@test.local", Password: "lettersonly"})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("no digit want ErrWeakPassword got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	if _, err := svc.Register(RegisterInput{Email: "cred@test.local", Password: "secret1234"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, _, err := svc.Login("cred@test.local", "wrong-password"); err != ErrInvalidCredentials {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@test.local", "secret1234"); err != ErrInvalidCredentials {
		t.Fatalf("unknown email want ErrInvalidCredentials got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, err := svc.Register(RegisterInput{Email: "change@test.local", Password: "secret1234"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "wrong-password", "another1234"); err != ErrInvalidPassword {
		t.Fatalf("wrong old password want ErrInvalidPassword got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "secret1234", "another1234"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, _, _, err := svc.Login("change@test.local", "another1234"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, _, _, err := svc.Login("change@test.local", "secret1234"); err != ErrInvalidCredentials {
		t.Fatalf("old password should be rejected, got %v", err)
	}
}

func TestVerifyEmailConsumesToken(t *testing.T) {
	svc, db := setupAuthServiceTest(t)

	user, err := svc.Register(RegisterInput{Email: "verify@test.local", Password: "secret1234"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	token, err := svc.issueToken(user.ID, "verify_email")
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}

	if err := svc.VerifyEmail(token); err != nil {
		t.Fatalf("verify email failed: %v", err)
	}
	refreshed, err := repository.NewUserRepository(db).GetByID(user.ID)
	if err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if refreshed.EmailVerifiedAt == nil {
		t.Fatalf("email_verified_at should be set")
	}

	if err := svc.VerifyEmail(token); err != ErrTokenInvalid {
		t.Fatalf("reused token want ErrTokenInvalid got %v", err)
	}
}
