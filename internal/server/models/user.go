// Package models defines the domain entities persisted in the database.
// Mutation methods validate before changing state, so an entity loaded from
// storage can not be driven into an invalid state by the service layer.
package models

import (
	"net/mail"

	"github.com/dmitrijs2005/projecthub/internal/common"
)

// User is a registered account. PasswordHash is opaque to the domain layer;
// hashing and verification belong to the hashing collaborator.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	IsActive     bool
}

// NewUser constructs an active user, validating email format and the
// presence of a password hash. ID stays zero until storage assigns one.
func NewUser(email, passwordHash string) (*User, error) {
	if !validEmail(email) {
		return nil, common.ErrInvalidEmail
	}
	if passwordHash == "" {
		return nil, common.ErrEmptyPassword
	}
	return &User{Email: email, PasswordHash: passwordHash, IsActive: true}, nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// reject display-name forms like "Alice <a@b.com>"
	return addr.Address == email
}

// ChangePassword replaces the stored hash. Replacing a hash with itself is
// rejected so a lost update does not masquerade as success.
func (u *User) ChangePassword(newHash string) error {
	if newHash == "" {
		return common.ErrEmptyPassword
	}
	if newHash == u.PasswordHash {
		return common.ErrSamePassword
	}
	u.PasswordHash = newHash
	return nil
}

// Deactivate flips the lifecycle flag off, rejecting a no-op transition.
func (u *User) Deactivate() error {
	if !u.IsActive {
		return common.ErrAlreadyInactive
	}
	u.IsActive = false
	return nil
}

// Activate flips the lifecycle flag on, rejecting a no-op transition.
func (u *User) Activate() error {
	if u.IsActive {
		return common.ErrAlreadyActive
	}
	u.IsActive = true
	return nil
}
