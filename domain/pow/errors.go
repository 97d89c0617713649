package pow

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrSizeMismatch is matched by errors.Is for every SizeMismatchError
var ErrSizeMismatch = errors.New("size mismatch")

// SizeMismatchError indicates that a header or nonce buffer does not have the
// fixed length its variant requires.
type SizeMismatchError struct {
	// Name identifies the mismatched buffer, e.g. "header" or "nonce"
	Name     string
	Expected int
	Actual   int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("%s is not the correct size: expected %d, got %d", e.Name, e.Expected, e.Actual)
}

// Is reports whether target is ErrSizeMismatch
func (e *SizeMismatchError) Is(target error) bool {
	return target == ErrSizeMismatch
}

func validateSize(name string, buf []byte, expected int) error {
	if len(buf) != expected {
		return &SizeMismatchError{
			Name:     name,
			Expected: expected,
			Actual:   len(buf),
		}
	}
	return nil
}
