package types

import (
	"encoding/json"

	"github.com/arthur-debert/heimweh/pkg/errors"
)

// CastleInfo contains summary information about a single castle.
type CastleInfo struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// CastleFailure reports a castle that could not be processed. Failures are
// collected next to successful results instead of aborting a batch.
type CastleFailure struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	Err  error  `json:"-" yaml:"-"`
}

// Error implements the error interface
func (f CastleFailure) Error() string {
	return f.Name + ": " + f.Err.Error()
}

// Unwrap exposes the underlying cause
func (f CastleFailure) Unwrap() error {
	return f.Err
}

// castleFailureDoc is the serialized form of a CastleFailure
type castleFailureDoc struct {
	Name  string           `json:"name" yaml:"name"`
	Path  string           `json:"path" yaml:"path"`
	Error string           `json:"error" yaml:"error"`
	Code  errors.ErrorCode `json:"code" yaml:"code"`
}

func (f CastleFailure) doc() castleFailureDoc {
	d := castleFailureDoc{Name: f.Name, Path: f.Path, Code: errors.GetErrorCode(f.Err)}
	if f.Err != nil {
		d.Error = f.Err.Error()
	}
	return d
}

// MarshalJSON emits the failure with its reason and error code
func (f CastleFailure) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.doc())
}

// MarshalYAML emits the failure with its reason and error code
func (f CastleFailure) MarshalYAML() (interface{}, error) {
	return f.doc(), nil
}

// ListCastlesResult holds the result of the 'list' command.
type ListCastlesResult struct {
	Castles  []CastleInfo    `json:"castles" yaml:"castles"`
	Failures []CastleFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// LinksResult holds the manifest of a single castle.
type LinksResult struct {
	Castle string `json:"castle" yaml:"castle"`
	Links  []Link `json:"links" yaml:"links"`
}

// BootstrapResult holds the outcome of the 'bootstrap' command.
type BootstrapResult struct {
	// Cloned lists every castle cloned, in clone order
	Cloned []CastleInfo `json:"cloned" yaml:"cloned"`
	// Skipped lists declared castles that were already present
	Skipped []CastleInfo `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	// Failures lists declared castles that could not be bootstrapped
	Failures []CastleFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
}
