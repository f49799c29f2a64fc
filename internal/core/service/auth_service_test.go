package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
)

type stubAuthRepo struct {
	byUsername map[string]*domain.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{byUsername: make(map[string]*domain.User)}
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byUsername[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	user.ID = "usr_" + user.Username
	clone := *user
	r.byUsername[user.Username] = &clone
	return user, nil
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, "ayse", "parola-123", "ayse@example.com", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleOperator {
		t.Errorf("default role must be operator, got %q", user.Role)
	}
	if user.PasswordHash == "parola-123" {
		t.Errorf("password must not be stored in clear")
	}

	token, logged, err := svc.Login(ctx, "ayse", "parola-123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.Username != "ayse" {
		t.Errorf("unexpected user: %+v", logged)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token must verify with the signing secret: %v", err)
	}
	if claims["username"] != "ayse" || claims["role"] != domain.RoleOperator {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ayse", "parola-123", "", "admin"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(ctx, "ayse", "yanlis")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "kimse", "parola")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ayse", "parola-123", "", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(ctx, "ayse", "parola-456", "", "")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected user exists, got %v", err)
	}
}

func TestAuthService_RejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", time.Hour)

	_, err := svc.Register(context.Background(), "ayse", "parola-123", "", "superuser")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown role, got %v", err)
	}
}
