package models

import "strings"

// Roles a user account can hold. Admin is reserved for future
// privileged endpoints; every registration starts as RoleUser.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the user's email address (unique). Used for login.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the password. Never serialized.
	PasswordHash string `json:"-"`

	// Role is either "user" or "admin".
	Role string `json:"role"`

	// LastLogin is the Unix timestamp of the last successful login,
	// zero if the user has never logged in.
	LastLogin int64 `json:"lastLogin,omitempty"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64 `json:"updatedAt"`
}

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration fields and returns field-level errors.
func (in *RegisterInput) Validate() *ValidationError {
	var errs []FieldError
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if !validEmail(in.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "a valid email is required"})
	}
	if len(in.Password) < 8 {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// validEmail applies the same loose shape check the old server relied on:
// something, an @, something, a dot, something.
func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	if at < 1 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
