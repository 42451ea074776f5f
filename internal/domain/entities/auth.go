package entities

import "github.com/google/uuid"

// AuthContext is the acting identity of a request. It is passed explicitly
// into usecases instead of being read from ambient request state.
type AuthContext struct {
	UserID   uuid.UUID
	Email    string
	Role     UserRole
	Operator bool // authenticated with the operator key rather than a user session
}

// IsAdmin reports whether the caller may use operator endpoints
func (a AuthContext) IsAdmin() bool {
	return a.Operator || a.Role == UserRoleAdmin
}

// IsUser reports whether the context identifies a local user
func (a AuthContext) IsUser() bool {
	return a.UserID != uuid.Nil
}
