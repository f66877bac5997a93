package filesystem

import (
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	synthfilesystem "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
)

// NewSynthOS returns the synthfs view of the OS filesystem that plans are
// executed on. It takes absolute paths.
func NewSynthOS() synthfilesystem.FullFileSystem {
	osfs := synthfilesystem.NewOSFileSystem("/")
	return synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths()
}

// NewSynthMemory returns an in-memory synthfs filesystem taking absolute
// paths, for executing plans in tests
func NewSynthMemory() synthfilesystem.FullFileSystem {
	testFS := synthfilesystem.NewTestFileSystem()
	return synthfs.NewPathAwareFileSystem(testFS, "/").WithAbsolutePaths()
}
