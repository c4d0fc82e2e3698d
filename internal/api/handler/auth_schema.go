package handler

// --- Request / Response types ---
//
// Transport types are intentionally separate from ports/domain types so the
// JSON contract is not coupled to internal service changes.

type signupRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6"`
	UserType  string `json:"user_type"  validate:"required,oneof=guest host"`
	Avatar    string `json:"avatar"`
}

type loginRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required"`
	UserType string `json:"user_type" validate:"required,oneof=guest host"`
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Avatar    *string `json:"avatar"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
}

type sessionResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Type      string `json:"type"`
	Avatar    string `json:"avatar,omitempty"`
}

type authResponse struct {
	Token   string           `json:"token,omitempty"`
	Session *sessionResponse `json:"session,omitempty"`
}

type sessionStateResponse struct {
	State   string           `json:"state"`
	Session *sessionResponse `json:"session,omitempty"`
}
