package output

import (
	"strings"

	"github.com/arthur-debert/heimweh/pkg/errors"
)

// Format selects how results are printed
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat parses a format name, case insensitive
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown output format %q, expected text, json or yaml", s).
		WithDetail("format", s)
}
