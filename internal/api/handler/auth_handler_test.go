package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stayease/marketplace-system/internal/core/domain"
	"github.com/stayease/marketplace-system/internal/core/ports"
)

type stubSessionManager struct {
	loginFn  func(ctx context.Context, email, password string, expectedType domain.AccountType) (*domain.Session, error)
	signupFn func(ctx context.Context, input ports.SignupInput) (*domain.Session, error)
	updateFn func(ctx context.Context, input ports.ProfileUpdateInput) (*domain.Session, error)

	current   *domain.Session
	state     domain.SessionState
	loggedOut bool
}

func (s *stubSessionManager) Restore(_ context.Context) (*domain.Session, error) {
	return s.current, nil
}

func (s *stubSessionManager) Login(ctx context.Context, email, password string, expectedType domain.AccountType) (*domain.Session, error) {
	return s.loginFn(ctx, email, password, expectedType)
}

func (s *stubSessionManager) Signup(ctx context.Context, input ports.SignupInput) (*domain.Session, error) {
	return s.signupFn(ctx, input)
}

func (s *stubSessionManager) UpdateProfile(ctx context.Context, input ports.ProfileUpdateInput) (*domain.Session, error) {
	return s.updateFn(ctx, input)
}

func (s *stubSessionManager) Logout(_ context.Context) {
	s.loggedOut = true
	s.current = nil
	s.state = domain.StateUnauthenticated
}

func (s *stubSessionManager) Current() *domain.Session { return s.current }

func (s *stubSessionManager) State() domain.SessionState { return s.state }

func newAuthContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubSessionManager{
		signupFn: func(_ context.Context, input ports.SignupInput) (*domain.Session, error) {
			if input.Email != "new@example.com" || input.UserType != domain.TypeGuest {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Session{
				ID: "u1", Email: input.Email, FirstName: input.FirstName,
				LastName: input.LastName, Type: input.UserType,
			}, nil
		},
	}
	h := NewAuthHandler(stub, "secret", time.Hour)

	body := `{"first_name":"Nina","last_name":"Ruiz","email":"new@example.com","password":"password123","user_type":"guest"}`
	c, rec := newAuthContext(e, http.MethodPost, "/auth/signup", body)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] == "" || resp["token"] == nil {
		t.Fatalf("expected token in response")
	}
	session, ok := resp["session"].(map[string]any)
	if !ok {
		t.Fatalf("expected session in response")
	}
	if session["id"] != "u1" || session["email"] != "new@example.com" {
		t.Fatalf("unexpected session payload: %+v", session)
	}
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubSessionManager{
		signupFn: func(_ context.Context, _ ports.SignupInput) (*domain.Session, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}
	h := NewAuthHandler(stub, "secret", time.Hour)

	body := `{"first_name":"Nina","last_name":"Ruiz","email":"dup@example.com","password":"password123","user_type":"guest"}`
	c, _ := newAuthContext(e, http.MethodPost, "/auth/signup", body)

	err := h.Signup(c)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubSessionManager{
		signupFn: func(_ context.Context, _ ports.SignupInput) (*domain.Session, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, "secret", time.Hour)

	// missing everything but email, and password too short
	body := `{"email":"x@example.com","password":"abc"}`
	c, _ := newAuthContext(e, http.MethodPost, "/auth/signup", body)

	err := h.Signup(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubSessionManager{
		loginFn: func(_ context.Context, email, password string, expectedType domain.AccountType) (*domain.Session, error) {
			if email != "guest@example.com" || password != "password123" || expectedType != domain.TypeGuest {
				t.Fatalf("unexpected args: %s %s %s", email, password, expectedType)
			}
			return &domain.Session{ID: "u1", Email: email, Type: expectedType}, nil
		},
	}
	h := NewAuthHandler(stub, "secret", time.Hour)

	body := `{"email":"guest@example.com","password":"password123","user_type":"guest"}`
	c, rec := newAuthContext(e, http.MethodPost, "/auth/login", body)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_TypeMismatch(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubSessionManager{
		loginFn: func(_ context.Context, _, _ string, _ domain.AccountType) (*domain.Session, error) {
			return nil, &domain.TypeMismatchError{Actual: domain.TypeHost, Expected: domain.TypeGuest}
		},
	}
	h := NewAuthHandler(stub, "secret", time.Hour)

	body := `{"email":"host@example.com","password":"password123","user_type":"guest"}`
	c, _ := newAuthContext(e, http.MethodPost, "/auth/login", body)

	err := h.Login(c)
	var mismatch *domain.TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
	if mismatch.Actual != domain.TypeHost {
		t.Fatalf("unexpected actual type: %s", mismatch.Actual)
	}
}

func TestAuthHandler_Session_ReportsState(t *testing.T) {
	e := echo.New()
	stub := &stubSessionManager{
		state:   domain.StateAuthenticated,
		current: &domain.Session{ID: "u1", Email: "guest@example.com", Type: domain.TypeGuest},
	}
	h := NewAuthHandler(stub, "secret", time.Hour)

	c, rec := newAuthContext(e, http.MethodGet, "/auth/session", "")

	if err := h.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp sessionStateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.State != string(domain.StateAuthenticated) {
		t.Fatalf("expected authenticated state, got %q", resp.State)
	}
	if resp.Session == nil || resp.Session.ID != "u1" {
		t.Fatalf("unexpected session payload: %+v", resp.Session)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := echo.New()
	stub := &stubSessionManager{
		state:   domain.StateAuthenticated,
		current: &domain.Session{ID: "u1"},
	}
	h := NewAuthHandler(stub, "secret", time.Hour)

	c, rec := newAuthContext(e, http.MethodPost, "/auth/logout", "")

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !stub.loggedOut {
		t.Fatalf("logout not forwarded to session manager")
	}
}

func TestAuthHandler_UpdateProfile_WrongIdentity(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubSessionManager{
		state:   domain.StateAuthenticated,
		current: &domain.Session{ID: "u1"},
		updateFn: func(_ context.Context, _ ports.ProfileUpdateInput) (*domain.Session, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, "secret", time.Hour)

	c, _ := newAuthContext(e, http.MethodPatch, "/auth/profile", `{"first_name":"Zed"}`)
	c.Set("user_id", "someone-else")
	c.Set("type", "guest")

	err := h.UpdateProfile(c)
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestAuthHandler_UpdateProfile_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubSessionManager{
		state:   domain.StateAuthenticated,
		current: &domain.Session{ID: "u1", Email: "guest@example.com", Type: domain.TypeGuest},
		updateFn: func(_ context.Context, input ports.ProfileUpdateInput) (*domain.Session, error) {
			if input.FirstName == nil || *input.FirstName != "Zed" {
				t.Fatalf("first name not forwarded: %+v", input)
			}
			if input.LastName != nil {
				t.Fatalf("unset field should stay nil")
			}
			return &domain.Session{ID: "u1", Email: "guest@example.com", FirstName: "Zed", Type: domain.TypeGuest}, nil
		},
	}
	h := NewAuthHandler(stub, "secret", time.Hour)

	c, rec := newAuthContext(e, http.MethodPatch, "/auth/profile", `{"first_name":"Zed"}`)
	c.Set("user_id", "u1")
	c.Set("type", "guest")

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Session == nil || resp.Session.FirstName != "Zed" {
		t.Fatalf("unexpected session payload: %+v", resp.Session)
	}
}
