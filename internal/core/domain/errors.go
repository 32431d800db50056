package domain

import "errors"

// Share code errors. Each is a distinct, user-surfaceable condition; none is retried.
var (
	ErrInvalidLength      = errors.New("invalid code length")
	ErrUnsupportedVersion = errors.New("unsupported code version")
	ErrChecksumMismatch   = errors.New("code checksum mismatch")
)

// Session and register errors
var (
	ErrSessionNotFound = errors.New("no stored session")
	ErrFindingNotFound = errors.New("finding not found")
)

// DecodeFailureReason returns a short metric/audit label for a decode error.
func DecodeFailureReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidLength):
		return "invalid_length"
	case errors.Is(err, ErrUnsupportedVersion):
		return "unsupported_version"
	case errors.Is(err, ErrChecksumMismatch):
		return "checksum_mismatch"
	}
	return "unknown"
}
