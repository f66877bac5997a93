// pkg/testutil/environment.go
// DEPENDENCIES: paths, gitrepo helpers
// PURPOSE: Isolated home directory and castles root for tests

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/heimweh/pkg/paths"
)

// TestEnvironment is a home directory with a castles root inside a temp
// directory. All paths are canonical so they compare equal to resolved
// link targets.
type TestEnvironment struct {
	HomeDir     string
	CastlesRoot string
	Paths       paths.Paths
	Env         paths.MapEnvironment

	t *testing.T
}

// NewTestEnvironment creates <tmp>/home and <tmp>/home/.homesick
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}

	home := filepath.Join(base, "home")
	env := paths.MapEnvironment{paths.EnvHome: home}

	p, err := paths.New(env, paths.Options{})
	if err != nil {
		t.Fatalf("Failed to create paths: %v", err)
	}
	if err := os.MkdirAll(p.CastlesRoot(), 0755); err != nil {
		t.Fatalf("Failed to create castles root: %v", err)
	}

	return &TestEnvironment{
		HomeDir:     home,
		CastlesRoot: p.CastlesRoot(),
		Paths:       p,
		Env:         env,
		t:           t,
	}
}

// AddCastle creates a castle repository named name below the castles root
func (e *TestEnvironment) AddCastle(name string, spec TreeSpec) string {
	e.t.Helper()

	dir := e.Paths.CastlePath(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		e.t.Fatalf("Failed to create castle dir %s: %v", dir, err)
	}
	return NewCastle(e.t, dir, spec)
}

// AddPlainDir creates a directory below the castles root that is not a
// repository
func (e *TestEnvironment) AddPlainDir(name string) string {
	e.t.Helper()

	dir := e.Paths.CastlePath(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		e.t.Fatalf("Failed to create dir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README"), []byte("not a castle\n"), 0644); err != nil {
		e.t.Fatalf("Failed to write file in %s: %v", dir, err)
	}
	return dir
}

// HomePath maps a slash separated home-relative path into the home dir
func (e *TestEnvironment) HomePath(rel string) string {
	return e.Paths.HomePath(rel)
}
