package ports

import (
	"context"

	"github.com/stayease/marketplace-system/internal/core/domain"
)

// UserDirectory owns the canonical user set. Every mutation is a whole
// read-modify-write cycle against the record store followed by a history
// snapshot; failed operations leave persisted state untouched.
type UserDirectory interface {
	// Initialize loads the directory state, writing the default (optionally
	// seeded) state when none exists yet.
	Initialize(ctx context.Context) (domain.DirectoryState, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, draft domain.UserDraft) (*domain.User, error)
	// Authenticate verifies email and password. It fails with
	// ErrInvalidCredentials without revealing which check failed.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error)
	All(ctx context.Context) ([]domain.User, error)
}

// HistoryLog is the append-only audit trail of directory snapshots.
type HistoryLog interface {
	Append(ctx context.Context, state domain.DirectoryState) error
	// ReadAll returns snapshots oldest first.
	ReadAll(ctx context.Context) ([]domain.HistorySnapshot, error)
	Clear(ctx context.Context) error
}
