// Package models defines the core data structures for users and
// component configuration.
package models

import (
	"errors"
	"time"
)

// Store-level sentinel errors shared by repositories and their callers.
var (
	// ErrNotFound indicates that no record matched the given identifier.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a unique-constraint violation.
	ErrDuplicate = errors.New("duplicate record")
)

// User represents an onboarding user record.
type User struct {
	// ID is the unique identifier for the user.
	ID int64 `json:"id"`
	// Email is the unique address the user registered with.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password.
	// It never leaves the server.
	PasswordHash string `json:"-"`
	// Step is the onboarding progress cursor (1=credentials, 2/3=dynamic
	// pages, 4=complete).
	Step int `json:"step"`
	// Profile fields collected on the dynamic pages. Nil means the user
	// has not provided the field yet.
	AboutMe   *string    `json:"aboutMe,omitempty"`
	Birthdate *time.Time `json:"birthdate,omitempty"`
	Street    *string    `json:"street,omitempty"`
	City      *string    `json:"city,omitempty"`
	State     *string    `json:"state,omitempty"`
	Zip       *string    `json:"zip,omitempty"`
}

// UserSummary is the projection of a user exposed by the listing
// endpoint. Credentials are deliberately excluded.
type UserSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// UserPatch is a merge-patch over a user record: only non-nil fields are
// applied, everything else is left untouched.
type UserPatch struct {
	Email *string
	// Password carries a plaintext password on the way into the service
	// layer. The service hashes it into PasswordHash and clears it before
	// the patch reaches a repository.
	Password     *string
	PasswordHash *string
	AboutMe      *string
	Birthdate    *time.Time
	Street       *string
	City         *string
	State        *string
	Zip          *string
	Step         *int
}

// Empty reports whether the patch would modify nothing.
func (p UserPatch) Empty() bool {
	return p.Email == nil && p.Password == nil && p.PasswordHash == nil &&
		p.AboutMe == nil && p.Birthdate == nil && p.Street == nil &&
		p.City == nil && p.State == nil && p.Zip == nil && p.Step == nil
}

// ComponentConfig assigns a named onboarding component to a wizard page.
type ComponentConfig struct {
	// Name is the unique component identifier, e.g. "aboutMe".
	Name string `json:"name"`
	// Page is the wizard page the component appears on, 2 or 3.
	Page int `json:"page"`
}
