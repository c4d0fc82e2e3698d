package domain

import "errors"

// AccountType distinguishes travellers from property owners.
type AccountType string

const (
	TypeGuest AccountType = "guest"
	TypeHost  AccountType = "host"
)

// Valid reports whether t is one of the two known account types.
func (t AccountType) Valid() bool {
	return t == TypeGuest || t == TypeHost
}

var ErrDuplicateEmail = errors.New("user with this email already exists")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrUserNotFound = errors.New("user not found")
var ErrNotAuthenticated = errors.New("not authenticated")

// User is a record in the user directory. Email is the business key and is
// unique across the directory; uniqueness is enforced at creation time.
// PasswordHash is a bcrypt hash and never leaves the directory layer.
type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Type         AccountType `json:"type"`
	PasswordHash string      `json:"password"`
	Avatar       string      `json:"avatar,omitempty"`
}

// UserDraft carries the fields a caller supplies when creating a user.
// The directory assigns the ID and hashes the password.
type UserDraft struct {
	Email     string
	FirstName string
	LastName  string
	Type      AccountType
	Password  string
	Avatar    string
}

// UserUpdate is a partial update applied to an existing record. Nil fields
// are preserved (shallow merge). ID, email and account type are immutable
// through the modeled flows and intentionally absent.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Avatar    *string
	Password  *string
}

// DirectoryState is the whole persisted user set, in creation order. It is
// serialized as a unit on every mutation.
type DirectoryState struct {
	Users []User `json:"users"`
}

// Clone returns a deep copy so history snapshots never alias live state.
func (s DirectoryState) Clone() DirectoryState {
	users := make([]User, len(s.Users))
	copy(users, s.Users)
	return DirectoryState{Users: users}
}
