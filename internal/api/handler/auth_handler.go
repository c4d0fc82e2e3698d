package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/stayease/marketplace-system/internal/api/metrics"
	"github.com/stayease/marketplace-system/internal/core/domain"
	"github.com/stayease/marketplace-system/internal/core/ports"
)

type AuthHandler struct {
	sessions  ports.SessionManager
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthHandler(sessions ports.SessionManager, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Signup creates a new account and establishes the session.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessions.Signup(c.Request().Context(), ports.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserType:  domain.AccountType(req.UserType),
		Avatar:    req.Avatar,
	})
	if err != nil {
		metrics.SignupsTotal.WithLabelValues(signupOutcome(err), req.UserType).Inc()
		return err
	}

	metrics.SignupsTotal.WithLabelValues("success", req.UserType).Inc()
	metrics.DirectoryMutationsTotal.WithLabelValues("create").Inc()

	token, err := h.issueToken(session)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, authResponse{Token: token, Session: toSessionResponse(session)})
}

// Login authenticates against the directory and establishes the session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials and declared account type"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password, domain.AccountType(req.UserType))
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()

	token, err := h.issueToken(session)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, Session: toSessionResponse(session)})
}

// Logout clears the session. Always succeeds.
//
// @Summary      Log out
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Session reports the session manager state. Clients must treat "loading"
// as distinct from "unauthenticated" during startup restore.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionStateResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionStateResponse{
		State:   string(h.sessions.State()),
		Session: toSessionResponse(h.sessions.Current()),
	})
}

// UpdateProfile edits the current user's profile fields.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/profile [patch]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	current := h.sessions.Current()
	if current == nil || current.ID != userID {
		return domain.ErrNotAuthenticated
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessions.UpdateProfile(c.Request().Context(), ports.ProfileUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Avatar:    req.Avatar,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	metrics.DirectoryMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, authResponse{Session: toSessionResponse(session)})
}

func (h *AuthHandler) issueToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":   session.ID,
		"email": session.Email,
		"type":  string(session.Type),
		"exp":   time.Now().Add(h.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(h.jwtSecret))
}

func toSessionResponse(s *domain.Session) *sessionResponse {
	if s == nil {
		return nil
	}
	return &sessionResponse{
		ID:        s.ID,
		Email:     s.Email,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Type:      string(s.Type),
		Avatar:    s.Avatar,
	}
}

func signupOutcome(err error) string {
	if errors.Is(err, domain.ErrDuplicateEmail) {
		return "duplicate_email"
	}
	return "error"
}

func loginOutcome(err error) string {
	var mismatch *domain.TypeMismatchError
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.As(err, &mismatch):
		return "type_mismatch"
	}
	return "error"
}
