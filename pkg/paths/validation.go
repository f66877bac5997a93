package paths

import (
	"strings"

	"github.com/arthur-debert/heimweh/pkg/errors"
)

// ValidateCastleName ensures a castle name is valid for use as a directory
// name below the castles root. Castle names must:
// - Not be empty
// - Not contain path separators
// - Not be reserved names (. or ..)
// - Not contain control characters
func ValidateCastleName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "castle name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return errors.Newf(errors.ErrInvalidInput, "castle name cannot contain path separators: %q", name)
	}

	if name == "." || name == ".." {
		return errors.New(errors.ErrInvalidInput, "castle name cannot be '.' or '..'")
	}

	for _, r := range name {
		if r < 32 {
			return errors.Newf(errors.ErrInvalidInput, "castle name contains control characters: %q", name)
		}
	}

	return nil
}
