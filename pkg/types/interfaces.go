package types

import (
	"io/fs"
)

// FS is the filesystem interface required for materializing links
type FS interface {
	Stat(name string) (fs.FileInfo, error)

	// Lstat must not follow symlinks. Implementations without symlink
	// support may fall back to Stat.
	Lstat(name string) (fs.FileInfo, error)

	MkdirAll(path string, perm fs.FileMode) error

	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
}
