// pkg/paths/paths_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: MapEnvironment
// PURPOSE: Test home and castles root defaulting

package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/heimweh/pkg/errors"
	"github.com/arthur-debert/heimweh/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	env := paths.MapEnvironment{"HOME": "/home/alice"}

	p, err := paths.New(env, paths.Options{})
	require.NoError(t, err)

	assert.Equal(t, "/home/alice", p.HomeDir())
	assert.Equal(t, "/home/alice/.homesick", p.CastlesRoot())
	assert.Equal(t, "/home/alice/.homesick/zsh", p.CastlePath("zsh"))
	assert.Equal(t, "/home/alice/.config/git/config", p.HomePath(".config/git/config"))
}

func TestNew_Overrides(t *testing.T) {
	tests := []struct {
		name     string
		env      paths.MapEnvironment
		opts     paths.Options
		wantHome string
		wantRoot string
	}{
		{
			name:     "home_override_moves_default_root",
			env:      paths.MapEnvironment{"HOME": "/home/alice"},
			opts:     paths.Options{HomeDir: "/tmp/fakehome"},
			wantHome: "/tmp/fakehome",
			wantRoot: "/tmp/fakehome/.homesick",
		},
		{
			name:     "root_override",
			env:      paths.MapEnvironment{"HOME": "/home/alice"},
			opts:     paths.Options{CastlesRoot: "/srv/castles"},
			wantHome: "/home/alice",
			wantRoot: "/srv/castles",
		},
		{
			name:     "tilde_root_override",
			env:      paths.MapEnvironment{"HOME": "/home/alice"},
			opts:     paths.Options{CastlesRoot: "~/src/castles"},
			wantHome: "/home/alice",
			wantRoot: "/home/alice/src/castles",
		},
		{
			name:     "castles_dir_name",
			env:      paths.MapEnvironment{"HOME": "/home/alice"},
			opts:     paths.Options{CastlesDirName: ".castles"},
			wantHome: "/home/alice",
			wantRoot: "/home/alice/.castles",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := paths.New(tt.env, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHome, p.HomeDir())
			assert.Equal(t, tt.wantRoot, p.CastlesRoot())
		})
	}
}

func TestNew_RelativeHomeIsMadeAbsolute(t *testing.T) {
	p, err := paths.New(paths.MapEnvironment{}, paths.Options{HomeDir: "relhome"})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p.HomeDir()))
}

func TestNew_NoHome(t *testing.T) {
	_, err := paths.New(paths.MapEnvironment{}, paths.Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
}

func TestHomeDirectory(t *testing.T) {
	home, err := paths.HomeDirectory(paths.MapEnvironment{"HOME": "/home/bob"})
	require.NoError(t, err)
	assert.Equal(t, "/home/bob", home)
}

func TestValidateCastleName(t *testing.T) {
	tests := []struct {
		name    string
		castle  string
		wantErr bool
	}{
		{"simple", "zsh", false},
		{"dotted", "dot-files", false},
		{"hidden", ".secret", false},
		{"empty", "", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"control", "a\tb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := paths.ValidateCastleName(tt.castle)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
