package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
)

type stubAuthService struct {
	registered  *domain.User
	registerErr error
	token       string
	loginErr    error
}

func (s *stubAuthService) Register(_ context.Context, username, password, email, role string) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	s.registered = &domain.User{Username: username, Email: email, Role: role}
	return s.registered, nil
}

func (s *stubAuthService) Login(_ context.Context, username, _ string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.token, &domain.User{Username: username}, nil
}

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/auth/register",
		`{"username":"ayse","password":"parola-123","email":"ayse@example.com"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.registered == nil || svc.registered.Username != "ayse" {
		t.Errorf("service not called with the username: %+v", svc.registered)
	}
}

func TestAuthHandler_RegisterRejectsShortPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(http.MethodPost, "/auth/register",
		`{"username":"ayse","password":"kisa"}`)

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{token: "jwt-token"}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"username":"ayse","password":"parola-123"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "jwt-token") {
		t.Errorf("token missing from response: %s", rec.Body.String())
	}
}

func TestAuthHandler_LoginFailurePropagates(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc)

	c, _ := newTestContext(http.MethodPost, "/auth/login",
		`{"username":"ayse","password":"yanlis"}`)

	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("domain errors must reach the central error handler, got %v", err)
	}
}
