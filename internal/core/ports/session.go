package ports

import (
	"context"

	"github.com/stayease/marketplace-system/internal/core/domain"
)

// SignupInput is the DTO passed from the transport layer to the session
// manager on account creation.
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	UserType  domain.AccountType
	Avatar    string
}

// ProfileUpdateInput carries the editable profile fields. Nil fields are
// left unchanged; identity fields (id, email, type) are not editable here.
type ProfileUpdateInput struct {
	FirstName *string
	LastName  *string
	Avatar    *string
	Password  *string
}

// SessionManager holds the single current session and drives the
// unauthenticated/loading/authenticated lifecycle. It never mutates user
// records directly; all profile edits go through the directory.
type SessionManager interface {
	// Restore re-reads a previously persisted session at process start.
	Restore(ctx context.Context) (*domain.Session, error)
	Login(ctx context.Context, email, password string, expectedType domain.AccountType) (*domain.Session, error)
	Signup(ctx context.Context, input SignupInput) (*domain.Session, error)
	UpdateProfile(ctx context.Context, input ProfileUpdateInput) (*domain.Session, error)
	Logout(ctx context.Context)
	Current() *domain.Session
	State() domain.SessionState
}
