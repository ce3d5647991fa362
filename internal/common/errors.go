// Package common defines shared sentinel errors used across all layers of
// the project. Callers should use errors.Is to match these values; services
// wrap lower-level failures with %w so matching survives wrapping.
package common

import "errors"

var (
	// repository-level errors
	ErrNotFound = errors.New("not found")

	// validation errors (caller's fault, never retried)
	ErrValidation       = errors.New("validation error")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrEmptyPassword    = errors.New("password hash can not be empty")
	ErrSamePassword     = errors.New("new password can not be the same as the old one")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrEmptyName        = errors.New("project name can not be empty")
	ErrEmptyDescription = errors.New("project description can not be empty")
	ErrNoChange         = errors.New("new value is the same as the old one")
	ErrInvalidUser      = errors.New("invalid user id")
	ErrAlreadyActive    = errors.New("user is already active")
	ErrAlreadyInactive  = errors.New("user is already deactivated")
	ErrFilenameRequired = errors.New("original filename is required")

	// conflict errors (uniqueness violations, duplicate membership)
	ErrEmailTaken         = errors.New("email already registered")
	ErrAlreadyParticipant = errors.New("user is already a project participant")
	ErrOwnerParticipant   = errors.New("project owner can not be added as a participant")

	// membership absence (not-found flavored, see KindOf)
	ErrNotParticipant = errors.New("user is not a project participant")

	// authorization errors
	ErrAccessDenied     = errors.New("access denied")
	ErrPermissionDenied = errors.New("permission denied")

	// storage / cross-resource errors
	ErrInternal       = errors.New("internal error")
	ErrPartialFailure = errors.New("partial failure: blob and record state diverged")
)

// Kind classifies an error into one of the broad failure categories the
// transport layer maps to status codes.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindPermission
	KindStorage
)

// KindOf reports the taxonomy kind of err, unwrapping as needed.
// Anything a service did not translate into a sentinel is treated as a
// backing-store failure.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrEmptyPassword),
		errors.Is(err, ErrSamePassword),
		errors.Is(err, ErrPasswordTooShort),
		errors.Is(err, ErrEmptyName),
		errors.Is(err, ErrEmptyDescription),
		errors.Is(err, ErrNoChange),
		errors.Is(err, ErrInvalidUser),
		errors.Is(err, ErrAlreadyActive),
		errors.Is(err, ErrAlreadyInactive),
		errors.Is(err, ErrFilenameRequired):
		return KindValidation
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotParticipant):
		return KindNotFound
	case errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrAlreadyParticipant),
		errors.Is(err, ErrOwnerParticipant):
		return KindConflict
	case errors.Is(err, ErrAccessDenied), errors.Is(err, ErrPermissionDenied):
		return KindPermission
	default:
		return KindStorage
	}
}
