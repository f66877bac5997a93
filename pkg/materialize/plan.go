package materialize

import (
	"github.com/arthur-debert/heimweh/pkg/errors"
	"github.com/arthur-debert/heimweh/pkg/types"
)

// Severity tells how serious a skipped link is
type Severity string

const (
	// SeverityWarning marks links skipped because their target cannot be
	// resolved
	SeverityWarning Severity = "warning"
	// SeverityError marks conflicts, containment violations and castles
	// that could not be read
	SeverityError Severity = "error"
)

// Issue is a link, or a whole castle, that was not materialized
type Issue struct {
	Castle   string
	Path     string
	Severity Severity
	Err      error
}

// Error implements the error interface
func (i Issue) Error() string {
	if i.Path == "" {
		return i.Castle + ": " + i.Err.Error()
	}
	return i.Castle + ": " + i.Path + ": " + i.Err.Error()
}

// Unwrap exposes the underlying cause
func (i Issue) Unwrap() error {
	return i.Err
}

// Code returns the error code of the cause
func (i Issue) Code() errors.ErrorCode {
	return errors.GetErrorCode(i.Err)
}

// Plan is the set of changes needed to link castles into the home
// directory
type Plan struct {
	// Operations still to execute, in planning order
	Operations []types.Operation
	// Unchanged are operations whose result is already in place
	Unchanged []types.Operation
	// Issues lists everything that was skipped
	Issues []Issue
}

// HasErrors reports whether any issue has error severity
func (p *Plan) HasErrors() bool {
	for _, issue := range p.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Ordered returns the operations with all directories first. Relative
// order is preserved, so parents are created before their children.
func (p *Plan) Ordered() []types.Operation {
	ordered := make([]types.Operation, 0, len(p.Operations))
	for _, op := range p.Operations {
		if op.Type == types.OperationCreateDir {
			ordered = append(ordered, op)
		}
	}
	for _, op := range p.Operations {
		if op.Type != types.OperationCreateDir {
			ordered = append(ordered, op)
		}
	}
	return ordered
}
