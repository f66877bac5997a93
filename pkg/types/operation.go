package types

import (
	"fmt"
	"io/fs"
)

// OperationType defines the type of file system operation
type OperationType string

const (
	// OperationCreateSymlink creates a symbolic link
	OperationCreateSymlink OperationType = "create_symlink"

	// OperationCreateDir creates a directory
	OperationCreateDir OperationType = "create_dir"
)

// OperationStatus defines the state of an operation
type OperationStatus string

const (
	// StatusReady means the operation is ready to be executed
	StatusReady OperationStatus = "ready"
	// StatusSkipped means the home directory already holds the result
	StatusSkipped OperationStatus = "skipped"
	// StatusDone means the operation was executed
	StatusDone OperationStatus = "done"
	// StatusError means the operation failed
	StatusError OperationStatus = "error"
)

// Operation is a single change to the home directory
type Operation struct {
	// Type is the type of operation
	Type OperationType `json:"type" yaml:"type"`

	// Castle is the castle the link comes from
	Castle string `json:"castle" yaml:"castle"`

	// Path is the home-relative path of the link
	Path string `json:"path" yaml:"path"`

	// Source is what the symlink points at, empty for directories
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Target is the absolute path created in the home directory
	Target string `json:"target" yaml:"target"`

	// Mode is the permission of created directories
	Mode fs.FileMode `json:"-" yaml:"-"`

	// Status is the current state of the operation
	Status OperationStatus `json:"status" yaml:"status"`
}

// String describes the operation for plan output
func (o Operation) String() string {
	switch o.Type {
	case OperationCreateDir:
		return fmt.Sprintf("mkdir %s", o.Target)
	case OperationCreateSymlink:
		return fmt.Sprintf("link %s -> %s", o.Target, o.Source)
	default:
		return fmt.Sprintf("%s %s", o.Type, o.Target)
	}
}
