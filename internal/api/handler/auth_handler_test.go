package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/qent/car-rental-system/internal/core/domain"
	"github.com/qent/car-rental-system/internal/core/ports"
	"github.com/qent/car-rental-system/internal/core/session"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

// drainInitial consumes the notifier's initial signed-out event.
func drainInitial(n *session.Notifier) {
	<-n.Events()
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
			if input.Email != "alice@example.com" {
				t.Fatalf("unexpected email: %s", input.Email)
			}
			return &domain.User{ID: "u1", Email: input.Email, Role: domain.RoleUser}, nil
		},
	}
	notifier := session.NewNotifier()
	drainInitial(notifier)
	handler := NewAuthHandler(stub, notifier)

	body := strings.NewReader(`{"email":"alice@example.com","password":"secret1","full_name":"Alice"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	select {
	case ev := <-notifier.Events():
		if ev.UserID != "u1" {
			t.Fatalf("published event for %q, want u1", ev.UserID)
		}
	default:
		t.Fatalf("registration must publish an auth event")
	}
}

func TestAuthHandler_Register_InvalidEmail(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	handler := NewAuthHandler(&stubAuthService{}, session.NewNotifier())

	body := strings.NewReader(`{"email":"not-an-email","password":"secret1","full_name":"Alice"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			return "signed.jwt.token", &domain.User{ID: "u1", Email: email, Role: domain.RoleUser}, nil
		},
	}
	notifier := session.NewNotifier()
	drainInitial(notifier)
	handler := NewAuthHandler(stub, notifier)

	body := strings.NewReader(`{"email":"alice@example.com","password":"secret1"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed.jwt.token" {
		t.Fatalf("token missing from response: %v", resp)
	}

	select {
	case ev := <-notifier.Events():
		if ev.UserID != "u1" {
			t.Fatalf("published event for %q, want u1", ev.UserID)
		}
	default:
		t.Fatalf("login must publish an auth event")
	}
}

func TestAuthHandler_Logout_PublishesSignedOut(t *testing.T) {
	e := echo.New()
	notifier := session.NewNotifier()
	drainInitial(notifier)
	handler := NewAuthHandler(&stubAuthService{}, notifier)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	select {
	case ev := <-notifier.Events():
		if ev.UserID != "" {
			t.Fatalf("logout must publish an empty event, got %q", ev.UserID)
		}
	default:
		t.Fatalf("logout must publish an auth event")
	}
}
