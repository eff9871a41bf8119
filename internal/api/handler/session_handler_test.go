package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/qent/car-rental-system/internal/core/domain"
	"github.com/qent/car-rental-system/internal/core/ports"
	"github.com/qent/car-rental-system/internal/core/session"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	clone := *user
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) { return nil, nil }

func (r *stubUserRepo) UpdateProfile(_ context.Context, _ string, _ ports.ProfileUpdate) error {
	return nil
}

type stubOnboardingStore struct {
	completed map[string]bool
	err       error
	marked    []string
}

func (s *stubOnboardingStore) Completed(_ context.Context, deviceID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.completed[deviceID], nil
}

func (s *stubOnboardingStore) MarkCompleted(_ context.Context, deviceID string) error {
	if s.err != nil {
		return s.err
	}
	if s.completed == nil {
		s.completed = make(map[string]bool)
	}
	s.completed[deviceID] = true
	s.marked = append(s.marked, deviceID)
	return nil
}

func newSessionHandler(users map[string]*domain.User, onboarding *stubOnboardingStore) *SessionHandler {
	manager := session.NewManager(&stubUserRepo{users: users}, zerolog.Nop())
	return NewSessionHandler(manager, onboarding, zerolog.Nop())
}

func routeRequest(t *testing.T, h *SessionHandler, target string, uid string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != "" {
		c.Set("uid", uid)
	}

	if err := h.Route(c); err != nil {
		e.HTTPErrorHandler(err, c)
		return rec, nil
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec, resp
}

func TestSessionRoute_NewDeviceGetsOnboarding(t *testing.T) {
	h := newSessionHandler(nil, &stubOnboardingStore{})

	rec, resp := routeRequest(t, h, "/v1/session/route?device_id=d1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp["route"] != string(session.RouteOnboarding) {
		t.Fatalf("route = %v, want Onboarding", resp["route"])
	}
}

func TestSessionRoute_OnboardedAnonymousGetsSignIn(t *testing.T) {
	h := newSessionHandler(nil, &stubOnboardingStore{completed: map[string]bool{"d1": true}})

	_, resp := routeRequest(t, h, "/v1/session/route?device_id=d1", "")
	if resp["route"] != string(session.RouteSignIn) {
		t.Fatalf("route = %v, want SignIn", resp["route"])
	}
	if resp["is_authenticated"] != false {
		t.Fatalf("anonymous caller reported as authenticated")
	}
}

func TestSessionRoute_AdminGetsAdminStack(t *testing.T) {
	users := map[string]*domain.User{"u1": {ID: "u1", Role: domain.RoleAdmin}}
	h := newSessionHandler(users, &stubOnboardingStore{completed: map[string]bool{"d1": true}})

	_, resp := routeRequest(t, h, "/v1/session/route?device_id=d1", "u1")
	if resp["route"] != string(session.RouteAdminStack) {
		t.Fatalf("route = %v, want AdminStack", resp["route"])
	}
	if resp["role"] != string(domain.RoleAdmin) {
		t.Fatalf("role = %v", resp["role"])
	}
}

// A signed-in user whose document is missing still lands on the user stack.
func TestSessionRoute_MissingUserDocFallsBackToUserStack(t *testing.T) {
	h := newSessionHandler(nil, &stubOnboardingStore{completed: map[string]bool{"d1": true}})

	_, resp := routeRequest(t, h, "/v1/session/route?device_id=d1", "ghost")
	if resp["route"] != string(session.RouteUserStack) {
		t.Fatalf("route = %v, want UserStack", resp["route"])
	}
	if resp["is_authenticated"] != true {
		t.Fatalf("lookup failure must not sign the user out")
	}
}

// An unreadable onboarding flag fails open so the client is never trapped on
// the onboarding screens.
func TestSessionRoute_OnboardingLookupFailsOpen(t *testing.T) {
	h := newSessionHandler(nil, &stubOnboardingStore{err: errors.New("redis down")})

	rec, resp := routeRequest(t, h, "/v1/session/route?device_id=d1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp["route"] != string(session.RouteSignIn) {
		t.Fatalf("route = %v, want SignIn", resp["route"])
	}
}

func TestSessionRoute_RequiresDeviceID(t *testing.T) {
	h := newSessionHandler(nil, &stubOnboardingStore{})

	rec, _ := routeRequest(t, h, "/v1/session/route", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCompleteOnboarding(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	store := &stubOnboardingStore{}
	h := newSessionHandler(nil, store)

	req := httptest.NewRequest(http.MethodPost, "/v1/session/onboarding", strings.NewReader(`{"device_id":"d1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CompleteOnboarding(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(store.marked) != 1 || store.marked[0] != "d1" {
		t.Fatalf("device not marked: %v", store.marked)
	}
}

func TestCompleteOnboarding_MissingDeviceID(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := newSessionHandler(nil, &stubOnboardingStore{})

	req := httptest.NewRequest(http.MethodPost, "/v1/session/onboarding", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CompleteOnboarding(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
