package menu

import "errors"

var (
	// ErrInvalidArgument is returned when a title, label, name or index fails validation
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDuplicateKey is returned when an explicit key is already registered
	ErrDuplicateKey = errors.New("duplicate key")
)

// IsInvalidArgument reports whether err came from argument validation
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsDuplicateKey reports whether err came from a key collision
func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}
