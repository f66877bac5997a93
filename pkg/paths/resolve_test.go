// pkg/paths/resolve_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test canonical resolution and containment checks

package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/heimweh/pkg/errors"
	"github.com/arthur-debert/heimweh/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// castleDir builds root/home/... on disk and returns the canonical root
func castleDir(t *testing.T) string {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "home", "a", "b"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "zsh"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "home", "a", "c"), []byte("c"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "zsh", "zshrc"), []byte("z"), 0644))
	return root
}

func TestResolve(t *testing.T) {
	root := castleDir(t)

	t.Run("plain_file", func(t *testing.T) {
		got, err := paths.Resolve(root, "a/c")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "home", "a", "c"), got)
	})

	t.Run("dotdot_is_applied", func(t *testing.T) {
		got, err := paths.Resolve(root, "a/b/../c")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "home", "a", "c"), got)
	})

	t.Run("outside_home_but_inside_castle", func(t *testing.T) {
		got, err := paths.Resolve(root, "../zsh/zshrc")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "zsh", "zshrc"), got)
	})

	t.Run("missing_entry_fails", func(t *testing.T) {
		_, err := paths.Resolve(root, "a/nothing")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrPathResolution))
	})
}

func TestResolve_FollowsSymlinksBeforeDotDot(t *testing.T) {
	root := castleDir(t)

	// home/a/link -> ../../zsh ; "a/link/../zshrc" must go through the
	// symlink first and land in the castle's zsh directory, not home/a.
	require.NoError(t, os.Symlink("../../zsh", filepath.Join(root, "home", "a", "link")))

	got, err := paths.Resolve(root, "a/link/../zsh/zshrc")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "zsh", "zshrc"), got)
}

func TestResolve_DanglingSymlink(t *testing.T) {
	root := castleDir(t)
	require.NoError(t, os.Symlink("nowhere", filepath.Join(root, "home", "dangling")))

	_, err := paths.Resolve(root, "dangling")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathResolution))
}

func TestIsInside(t *testing.T) {
	tests := []struct {
		name      string
		root      string
		candidate string
		want      bool
	}{
		{"same_path", "/castles/zsh", "/castles/zsh", true},
		{"nested", "/castles/zsh", "/castles/zsh/home/.zshrc", true},
		{"deeply_nested", "/castles/zsh", "/castles/zsh/a/b/c/d", true},
		{"sibling_with_common_prefix", "/castles/zsh", "/castles/zsh-extra/x", false},
		{"parent", "/castles/zsh", "/castles", false},
		{"unrelated", "/castles/zsh", "/etc/passwd", false},
		{"trailing_separator", "/castles/zsh/", "/castles/zsh/home", true},
		{"filesystem_root", "/", "/etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.IsInside(tt.root, tt.candidate))
		})
	}
}

func TestIsInside_CanonicalizesSymlinkedRoot(t *testing.T) {
	castle := castleDir(t)
	alias := filepath.Join(t.TempDir(), "alias")
	require.NoError(t, os.Symlink(castle, alias))

	assert.True(t, paths.IsInside(alias, filepath.Join(castle, "home", "a", "c")))
	assert.True(t, paths.IsInside(castle, filepath.Join(alias, "home", "a", "c")))
	assert.False(t, paths.IsInside(alias, filepath.Dir(castle)))
}

func TestIsInside_MissingPathUnderSymlinkedRoot(t *testing.T) {
	castle := castleDir(t)
	alias := filepath.Join(t.TempDir(), "alias")
	require.NoError(t, os.Symlink(castle, alias))

	tests := []struct {
		name      string
		root      string
		candidate string
		want      bool
	}{
		{"alias_root_real_missing_child", alias, filepath.Join(castle, "home", "new", "file"), true},
		{"real_root_alias_missing_child", castle, filepath.Join(alias, "home", "new", "file"), true},
		{"missing_child_of_existing_dir", alias, filepath.Join(castle, "home", "a", "missing"), true},
		{"missing_sibling", alias, filepath.Join(filepath.Dir(castle), "other", "file"), false},
		{"missing_escape_through_dotdot", alias, filepath.Join(alias, "missing", "..", "..", "x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.IsInside(tt.root, tt.candidate))
		})
	}
}

func TestCanonicalize_Relative(t *testing.T) {
	root := castleDir(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	got, err := paths.Canonicalize(filepath.Join("home", "a", "c"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "home", "a", "c"), got)
}
