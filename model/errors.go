package model

import "errors"

// Error kinds shared by every layer. Callers wrap them with context and
// match with errors.Is; the HTTP layer maps each kind to a status code.
var (
	ErrUnauthenticated   = errors.New("authentication required")
	ErrInvalidCredential = errors.New("invalid or expired token")
	ErrForbidden         = errors.New("access denied")
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrQuotaExceeded     = errors.New("note limit reached, upgrade to Pro for unlimited notes")
	ErrConflict          = errors.New("already exists")
)

// CodeLimitReached is the machine-readable code sent with quota denials.
const CodeLimitReached = "LIMIT_REACHED"
