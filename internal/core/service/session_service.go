package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/stayease/marketplace-system/internal/core/domain"
	"github.com/stayease/marketplace-system/internal/core/ports"
)

// sessionKey is the record-store key holding the current session.
const sessionKey = "stayease_user"

// defaultAvatar is substituted when an account has no avatar stored.
const defaultAvatar = "https://images.unsplash.com/photo-1494790108755-2616b612b1c2?w=100&h=100&fit=crop&crop=face"

// SessionService implements ports.SessionManager. It holds the single
// current session, persists it independently of the directory, and drives
// the unauthenticated/loading/authenticated lifecycle. Any directory-level
// failure reverts the state transition and re-raises the error.
type SessionService struct {
	directory ports.UserDirectory
	store     ports.RecordStore
	log       zerolog.Logger

	mu      sync.Mutex
	state   domain.SessionState
	current *domain.Session
}

func NewSessionService(directory ports.UserDirectory, store ports.RecordStore, log zerolog.Logger) *SessionService {
	return &SessionService{
		directory: directory,
		store:     store,
		log:       log,
		state:     domain.StateLoading,
	}
}

// Restore re-reads a previously persisted session. Call once at process
// start; the manager leaves the loading state only after this completes.
func (s *SessionService) Restore(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found, err := s.store.Get(ctx, sessionKey)
	if err != nil {
		s.state = domain.StateUnauthenticated
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if !found {
		s.state = domain.StateUnauthenticated
		return nil, nil
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		s.state = domain.StateUnauthenticated
		return nil, fmt.Errorf("decode session: %w", err)
	}

	s.current = &session
	s.state = domain.StateAuthenticated
	s.log.Info().Str("user_id", session.ID).Msg("session restored")
	return &session, nil
}

// Login authenticates against the directory and establishes the session.
// It fails with a TypeMismatchError when the account is registered under a
// different type than the caller declared.
func (s *SessionService) Login(ctx context.Context, email, password string, expectedType domain.AccountType) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.StateLoading

	user, err := s.directory.Authenticate(ctx, email, password)
	if err != nil {
		s.state = domain.StateUnauthenticated
		return nil, err
	}
	if user.Type != expectedType {
		s.state = domain.StateUnauthenticated
		return nil, &domain.TypeMismatchError{Actual: user.Type, Expected: expectedType}
	}

	return s.establish(ctx, user)
}

// Signup creates the account and establishes the session, substituting the
// default avatar when none is given.
func (s *SessionService) Signup(ctx context.Context, input ports.SignupInput) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.StateLoading

	avatar := input.Avatar
	if avatar == "" {
		avatar = defaultAvatar
	}

	user, err := s.directory.Create(ctx, domain.UserDraft{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Type:      input.UserType,
		Password:  input.Password,
		Avatar:    avatar,
	})
	if err != nil {
		s.state = domain.StateUnauthenticated
		return nil, err
	}

	return s.establish(ctx, user)
}

// UpdateProfile edits the current user through the directory and re-derives
// the session from the returned record.
func (s *SessionService) UpdateProfile(ctx context.Context, input ports.ProfileUpdateInput) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, domain.ErrNotAuthenticated
	}

	user, err := s.directory.Update(ctx, s.current.ID, domain.UserUpdate{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Avatar:    input.Avatar,
		Password:  input.Password,
	})
	if err != nil {
		return nil, err
	}

	return s.establish(ctx, user)
}

// Logout clears the persisted session. It cannot fail: a store error is
// logged and the in-memory session is dropped regardless.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(ctx, sessionKey); err != nil {
		s.log.Warn().Err(err).Msg("failed to remove persisted session")
	}
	s.current = nil
	s.state = domain.StateUnauthenticated
}

// Current returns the active session, or nil.
func (s *SessionService) Current() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	session := *s.current
	return &session
}

// State returns the lifecycle state. The transport layer must treat loading
// as distinct from unauthenticated during startup restore.
func (s *SessionService) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// establish projects the user into a session, persists it, and moves to the
// authenticated state. On failure the state reverts to what it was before
// the operation began (unauthenticated for login/signup, authenticated for
// a profile update). Callers must hold s.mu.
func (s *SessionService) establish(ctx context.Context, user *domain.User) (*domain.Session, error) {
	revert := domain.StateUnauthenticated
	if s.current != nil {
		revert = domain.StateAuthenticated
	}

	session := domain.NewSession(user, defaultAvatar)

	raw, err := json.Marshal(session)
	if err != nil {
		s.state = revert
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := s.store.Set(ctx, sessionKey, raw); err != nil {
		s.state = revert
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.current = session
	s.state = domain.StateAuthenticated
	return session, nil
}
