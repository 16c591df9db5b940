package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	domainauth "github.com/aromabase/aromabase/internal/domain/auth"
)

const (
	maxUsernameLen    = 32
	maxDisplayNameLen = 100
)

// User is a platform account. SubjectID ties the account to the identity
// provider subject; Role drives the access gate's permission checks.
type User struct {
	ID          string          `json:"id"           db:"id"`
	SubjectID   string          `json:"subject_id"   db:"subject_id"`
	Username    string          `json:"username"     db:"username"`
	DisplayName string          `json:"display_name" db:"display_name"`
	Email       string          `json:"email"        db:"email"`
	Role        domainauth.Role `json:"role"         db:"role"`
	CreatedAt   time.Time       `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"   db:"updated_at"`
}

// UsersListOptions controls paging and filtering for listing users.
type UsersListOptions struct {
	Limit  int
	Offset int
	Q      *string          // substring match on username or email (ILIKE)
	Role   *domainauth.Role // exact match
}

// CreateUserRequest represents parameters to provision a User.
// Username is optional; when empty the service derives one from the display
// name or email local part.
type CreateUserRequest struct {
	SubjectID   string          `json:"subject_id"`
	Username    string          `json:"username,omitempty"`
	DisplayName string          `json:"display_name"`
	Email       string          `json:"email"`
	Role        domainauth.Role `json:"role"`
}

// UpdateUserRequest represents parameters to update a User.
type UpdateUserRequest struct {
	DisplayName *string          `json:"display_name,omitempty"`
	Role        *domainauth.Role `json:"role,omitempty"`
}

// Validate validates CreateUserRequest.
func (r *CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.SubjectID) == "" {
		return errors.New("subject_id is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("email must be a valid address")
	}
	if r.Username != "" {
		if err := ValidateUsername(r.Username); err != nil {
			return err
		}
	}
	if utf8.RuneCountInString(r.DisplayName) > maxDisplayNameLen {
		return errors.New("display_name cannot exceed 100 characters")
	}
	role, ok := domainauth.ParseRole(string(r.Role))
	if !ok {
		return errors.New("invalid role")
	}
	r.Role = role
	return nil
}

// HasUpdates reports whether any field is set in UpdateUserRequest.
func (r *UpdateUserRequest) HasUpdates() bool {
	return r.DisplayName != nil || r.Role != nil
}

// Validate validates UpdateUserRequest.
func (r *UpdateUserRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.DisplayName != nil {
		d := strings.TrimSpace(*r.DisplayName)
		if d == "" {
			return errors.New("display_name cannot be empty")
		}
		if utf8.RuneCountInString(d) > maxDisplayNameLen {
			return errors.New("display_name cannot exceed 100 characters")
		}
	}
	if r.Role != nil {
		role, ok := domainauth.ParseRole(string(*r.Role))
		if !ok {
			return errors.New("invalid role")
		}
		*r.Role = role
	}
	return nil
}

// ValidateUsername checks the username charset and length rules: lowercase
// letters, digits and single hyphens, 3 to 32 characters, no leading or
// trailing hyphen.
func ValidateUsername(username string) error {
	if utf8.RuneCountInString(username) < 3 {
		return errors.New("username must be at least 3 characters")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return errors.New("username cannot exceed 32 characters")
	}
	if strings.HasPrefix(username, "-") || strings.HasSuffix(username, "-") {
		return errors.New("username cannot start or end with a hyphen")
	}
	if strings.Contains(username, "--") {
		return errors.New("username cannot contain consecutive hyphens")
	}
	for _, r := range username {
		if !unicode.IsLower(r) && !unicode.IsDigit(r) && r != '-' {
			return errors.New("username may only contain lowercase letters, digits and hyphens")
		}
	}
	return nil
}
