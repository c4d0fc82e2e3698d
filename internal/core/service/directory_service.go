package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stayease/marketplace-system/internal/core/domain"
	"github.com/stayease/marketplace-system/internal/core/ports"
)

// usersKey is the record-store key holding the whole directory state.
const usersKey = "stayease_users_db"

// DirectoryConfig tunes directory behaviour at construction time.
type DirectoryConfig struct {
	// Seed pre-populates an empty directory with the fixture accounts
	// (guest@example.com / host@example.com). Off by default.
	Seed bool
	// Latency is an artificial delay applied to lookups, simulating a
	// network round-trip for UX testing. Zero disables it.
	Latency time.Duration
}

// DirectoryService implements ports.UserDirectory over a record store.
// Every mutation is a whole read-modify-write cycle guarded by a mutex, so
// concurrent operations on one instance cannot produce lost updates.
type DirectoryService struct {
	store   ports.RecordStore
	history ports.HistoryLog
	cfg     DirectoryConfig
	log     zerolog.Logger

	mu sync.Mutex
}

func NewDirectoryService(store ports.RecordStore, history ports.HistoryLog, cfg DirectoryConfig, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{store: store, history: history, cfg: cfg, log: log}
}

// Initialize loads the directory state, writing the default state when the
// store holds none yet.
func (s *DirectoryService) Initialize(ctx context.Context) (domain.DirectoryState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadState(ctx)
}

// FindByEmail scans for the first record whose email matches exactly
// (case-sensitive). Returns ErrUserNotFound when absent.
func (s *DirectoryService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	return findByEmail(state, email)
}

// Create adds a new user with a fresh id, failing with ErrDuplicateEmail
// when the email is already taken. The password is stored as a bcrypt hash.
func (s *DirectoryService) Create(ctx context.Context, draft domain.UserDraft) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := findByEmail(state, draft.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        draft.Email,
		FirstName:    draft.FirstName,
		LastName:     draft.LastName,
		Type:         draft.Type,
		PasswordHash: string(hash),
		Avatar:       draft.Avatar,
	}

	state.Users = append(state.Users, user)
	if err := s.commit(ctx, state); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("type", string(user.Type)).Msg("user created")
	return &user, nil
}

// Authenticate verifies credentials. It fails with ErrInvalidCredentials on
// an unknown email or a wrong password, without revealing which.
func (s *DirectoryService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}

	user, err := findByEmail(state, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Update shallow-merges the partial fields into the record with the given
// id. Fields not present in the update are preserved.
func (s *DirectoryService) Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range state.Users {
		if state.Users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrUserNotFound
	}

	user := state.Users[idx]
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Avatar != nil {
		user.Avatar = *update.Avatar
	}
	if update.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	state.Users[idx] = user
	if err := s.commit(ctx, state); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user updated")
	return &user, nil
}

// All returns every record in creation order.
func (s *DirectoryService) All(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	return state.Clone().Users, nil
}

// loadState reads the persisted state, writing the default state on first
// use. Callers must hold s.mu.
func (s *DirectoryService) loadState(ctx context.Context) (domain.DirectoryState, error) {
	raw, found, err := s.store.Get(ctx, usersKey)
	if err != nil {
		return domain.DirectoryState{}, fmt.Errorf("load directory: %w", err)
	}

	if !found {
		state := s.defaultState()
		if err := s.persist(ctx, state); err != nil {
			return domain.DirectoryState{}, err
		}
		return state, nil
	}

	var state domain.DirectoryState
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.DirectoryState{}, fmt.Errorf("decode directory: %w", err)
	}
	return state, nil
}

// commit persists the full state and appends a history snapshot. A failed
// snapshot does not fail the mutation; the state is already durable.
func (s *DirectoryService) commit(ctx context.Context, state domain.DirectoryState) error {
	if err := s.persist(ctx, state); err != nil {
		return err
	}
	if err := s.history.Append(ctx, state.Clone()); err != nil {
		s.log.Warn().Err(err).Msg("failed to append history snapshot")
	}
	return nil
}

func (s *DirectoryService) persist(ctx context.Context, state domain.DirectoryState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode directory: %w", err)
	}
	if err := s.store.Set(ctx, usersKey, raw); err != nil {
		return fmt.Errorf("persist directory: %w", err)
	}
	return nil
}

func (s *DirectoryService) defaultState() domain.DirectoryState {
	if !s.cfg.Seed {
		return domain.DirectoryState{Users: []domain.User{}}
	}
	return domain.DirectoryState{Users: fixtureUsers()}
}

func (s *DirectoryService) simulateLatency(ctx context.Context) error {
	if s.cfg.Latency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.cfg.Latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func findByEmail(state domain.DirectoryState, email string) (*domain.User, error) {
	for i := range state.Users {
		if state.Users[i].Email == email {
			user := state.Users[i]
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// fixtureUsers are the development convenience accounts, both with password
// "password123".
func fixtureUsers() []domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	return []domain.User{
		{
			ID:           uuid.NewString(),
			Email:        "guest@example.com",
			FirstName:    "Guest",
			LastName:     "User",
			Type:         domain.TypeGuest,
			PasswordHash: string(hash),
			Avatar:       "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?w=100&h=100&fit=crop&crop=face",
		},
		{
			ID:           uuid.NewString(),
			Email:        "host@example.com",
			FirstName:    "Host",
			LastName:     "User",
			Type:         domain.TypeHost,
			PasswordHash: string(hash),
			Avatar:       "https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=100&h=100&fit=crop&crop=face",
		},
	}
}
