package types

import (
	"fmt"
	"path"
)

// SymlinkMode is the git tree entry mode marking a blob as a symbolic link.
const SymlinkMode uint32 = 0o120000

// LinkKind is the kind of filesystem entry a Link describes
type LinkKind string

const (
	LinkDirectory LinkKind = "directory"
	LinkFile      LinkKind = "file"
	LinkSymlink   LinkKind = "symlink"
)

// Link is one manifest entry produced by walking a castle's home tree.
//
// Path is slash separated and relative to the home tree root. It never
// contains ".." segments. RawTarget is only set for symlinks and holds the
// verbatim blob content, which may well contain "..".
type Link struct {
	Path      string   `json:"path" yaml:"path"`
	ID        string   `json:"id" yaml:"id"`
	Kind      LinkKind `json:"kind" yaml:"kind"`
	RawTarget string   `json:"target,omitempty" yaml:"target,omitempty"`
}

// NewDirectoryLink creates a directory entry
func NewDirectoryLink(p, id string) Link {
	return Link{Path: p, ID: id, Kind: LinkDirectory}
}

// NewFileLink creates a plain file entry
func NewFileLink(p, id string) Link {
	return Link{Path: p, ID: id, Kind: LinkFile}
}

// NewSymlinkLink creates a symlink entry carrying the raw stored target
func NewSymlinkLink(p, id, rawTarget string) Link {
	return Link{Path: p, ID: id, Kind: LinkSymlink, RawTarget: rawTarget}
}

// Target returns where the entry points to, relative to the home tree root.
// Files and directories are placed at their own path. A symlink's raw target
// is resolved against the symlink's parent directory, the way the kernel
// resolves relative symlinks: "a/b/link" -> "../c" gives "a/c".
// Absolute raw targets are returned cleaned and unchanged.
func (l Link) Target() string {
	if l.Kind != LinkSymlink {
		return l.Path
	}
	if path.IsAbs(l.RawTarget) {
		return path.Clean(l.RawTarget)
	}
	return path.Join(path.Dir(l.Path), l.RawTarget)
}

// IsDir reports whether the entry is a directory
func (l Link) IsDir() bool {
	return l.Kind == LinkDirectory
}

// IsSymlink reports whether the entry is a symlink
func (l Link) IsSymlink() bool {
	return l.Kind == LinkSymlink
}

// KindLabel renders the kind for the links listing, e.g. "Symlink(../c)".
func (l Link) KindLabel() string {
	switch l.Kind {
	case LinkDirectory:
		return "Directory"
	case LinkFile:
		return "File"
	case LinkSymlink:
		return fmt.Sprintf("Symlink(%s)", l.RawTarget)
	default:
		return string(l.Kind)
	}
}

// String renders the entry as "<path> [<kind>] <content-id>"
func (l Link) String() string {
	return fmt.Sprintf("%s [%s] %s", l.Path, l.KindLabel(), l.ID)
}
