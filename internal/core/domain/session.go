package domain

import "fmt"

// SessionState is the lifecycle state of the session manager.
type SessionState string

const (
	StateUnauthenticated SessionState = "unauthenticated"
	StateLoading         SessionState = "loading"
	StateAuthenticated   SessionState = "authenticated"
)

// Session is the password-free projection of the authenticated user. At most
// one session exists at a time; it is persisted independently of the
// directory and re-derived from the directory record after every mutation.
type Session struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Type      AccountType `json:"type"`
	Avatar    string      `json:"avatar,omitempty"`
}

// NewSession projects a directory record into a session, substituting the
// default avatar when the record has none stored.
func NewSession(u *User, defaultAvatar string) *Session {
	avatar := u.Avatar
	if avatar == "" {
		avatar = defaultAvatar
	}
	return &Session{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Type:      u.Type,
		Avatar:    avatar,
	}
}

// TypeMismatchError signals a login against the wrong declared account type.
// The message names the actual registration so the UI can report it.
type TypeMismatchError struct {
	Actual   AccountType
	Expected AccountType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("this account is registered as a %s, not a %s", e.Actual, e.Expected)
}
