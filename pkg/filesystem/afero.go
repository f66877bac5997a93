package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/arthur-debert/heimweh/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS implements types.FS using afero. Backends with symlink support
// (afero.OsFs) are used directly; for the others, symlinks are simulated.
type aferoFS struct {
	fs afero.Fs

	mu    sync.Mutex
	links map[string]string
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fs afero.Fs) types.FS {
	return &aferoFS{fs: fs, links: make(map[string]string)}
}

// NewMemoryFS creates an afero MemMapFs backed filesystem
func NewMemoryFS() types.FS {
	return NewAferoFS(afero.NewMemMapFs())
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if lstater, ok := a.fs.(afero.Lstater); ok {
		info, lstatCalled, err := lstater.LstatIfPossible(name)
		if lstatCalled {
			return info, err
		}
	}

	if target, ok := a.simulated(name); ok {
		return &symlinkInfo{name: filepath.Base(name), target: target}, nil
	}
	return a.fs.Stat(name)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) Symlink(oldname, newname string) error {
	if linker, ok := a.fs.(afero.Linker); ok {
		err := linker.SymlinkIfPossible(oldname, newname)
		if !errors.Is(err, afero.ErrNoSymlink) {
			return err
		}
	}

	// Afero's MemMapFs doesn't support Symlink, so we simulate it by
	// creating a file holding the target and remembering the link.
	if _, err := a.Lstat(newname); err == nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: fs.ErrExist}
	}
	if _, err := a.fs.Stat(filepath.Dir(newname)); err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: fs.ErrNotExist}
	}
	if err := afero.WriteFile(a.fs, newname, []byte(oldname), 0777); err != nil {
		return err
	}

	a.mu.Lock()
	a.links[filepath.Clean(newname)] = oldname
	a.mu.Unlock()
	return nil
}

func (a *aferoFS) Readlink(name string) (string, error) {
	if reader, ok := a.fs.(afero.LinkReader); ok {
		target, err := reader.ReadlinkIfPossible(name)
		if !errors.Is(err, afero.ErrNoReadlink) {
			return target, err
		}
	}

	if target, ok := a.simulated(name); ok {
		return target, nil
	}
	return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrInvalid}
}

func (a *aferoFS) simulated(name string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	target, ok := a.links[filepath.Clean(name)]
	return target, ok
}

// symlinkInfo describes a simulated symlink
type symlinkInfo struct {
	name   string
	target string
}

func (s *symlinkInfo) Name() string       { return s.name }
func (s *symlinkInfo) Size() int64        { return int64(len(s.target)) }
func (s *symlinkInfo) Mode() fs.FileMode  { return fs.ModeSymlink | 0777 }
func (s *symlinkInfo) ModTime() time.Time { return time.Time{} }
func (s *symlinkInfo) IsDir() bool        { return false }
func (s *symlinkInfo) Sys() interface{}   { return nil }
