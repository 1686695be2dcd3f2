package watch

import (
	"errors"
	"fmt"
)

var ErrNoRule = errors.New("watch file does not contain any rules")

// UnsupportedVersionError is returned for watch files that are
// not written in format version 3.
type UnsupportedVersionError struct {
	Version int
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported watch file version: %d", e.Version)
}
