package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/heimweh/pkg/errors"
	"github.com/arthur-debert/heimweh/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config lookup at an empty directory
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func writeUserConfig(t *testing.T, configHome, content string) {
	t.Helper()
	dir := filepath.Join(configHome, "heimweh")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Empty(t, cfg.Home)
	assert.Empty(t, cfg.Root)
	assert.Equal(t, ".homesick", cfg.Castles.Dir)
	assert.Equal(t, "home.toml", cfg.Castles.Manifest)
	assert.Equal(t, os.FileMode(0o755), cfg.Link.DirMode)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoad_Layering(t *testing.T) {
	t.Run("user_file_overrides_defaults", func(t *testing.T) {
		configHome := isolate(t)
		writeUserConfig(t, configHome, `
root = "/srv/castles"

[link]
dir_mode = "0700"
`)

		cfg, err := Load(LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, "/srv/castles", cfg.Root)
		assert.Equal(t, os.FileMode(0o700), cfg.Link.DirMode)
		assert.Equal(t, ".homesick", cfg.Castles.Dir, "untouched keys keep defaults")
	})

	t.Run("env_overrides_file", func(t *testing.T) {
		configHome := isolate(t)
		writeUserConfig(t, configHome, "[castles]\ndir = \".from-file\"\n")
		t.Setenv("HEIMWEH_CASTLES__DIR", ".from-env")
		t.Setenv("HEIMWEH_OUTPUT__FORMAT", "yaml")

		cfg, err := Load(LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, ".from-env", cfg.Castles.Dir)
		assert.Equal(t, "yaml", cfg.Output.Format)
	})

	t.Run("env_mode_is_octal", func(t *testing.T) {
		isolate(t)
		t.Setenv("HEIMWEH_LINK__DIR_MODE", "0750")

		cfg, err := Load(LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o750), cfg.Link.DirMode)
	})

	t.Run("overrides_win", func(t *testing.T) {
		isolate(t)
		t.Setenv("HEIMWEH_HOME", "/from/env")

		cfg, err := Load(LoadOptions{Overrides: map[string]interface{}{
			"home":        "/from/flag",
			"castles.dir": ".flag",
		}})
		require.NoError(t, err)
		assert.Equal(t, "/from/flag", cfg.Home)
		assert.Equal(t, ".flag", cfg.Castles.Dir)
	})

	t.Run("explicit_config_file", func(t *testing.T) {
		isolate(t)
		path := filepath.Join(t.TempDir(), "custom.toml")
		require.NoError(t, os.WriteFile(path, []byte(`home = "/custom"`), 0644))

		cfg, err := Load(LoadOptions{ConfigFile: path})
		require.NoError(t, err)
		assert.Equal(t, "/custom", cfg.Home)
	})
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{name: "malformed_toml", content: "[castles\ndir=", code: errors.ErrConfigParse},
		{name: "empty_castles_dir", content: "[castles]\ndir = \"\"\n", code: errors.ErrConfigParse},
		{name: "non_octal_mode", content: "[link]\ndir_mode = \"rwx\"\n", code: errors.ErrConfigParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configHome := isolate(t)
			writeUserConfig(t, configHome, tt.content)

			_, err := Load(LoadOptions{})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "home", envKey("HEIMWEH_HOME"))
	assert.Equal(t, "castles.dir", envKey("HEIMWEH_CASTLES__DIR"))
	assert.Equal(t, "link.dir_mode", envKey("HEIMWEH_LINK__DIR_MODE"))
}

func TestUserConfigPath(t *testing.T) {
	t.Run("process_environment", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
		assert.Equal(t, "/xdg/config/heimweh/config.toml", UserConfigPath(paths.OSEnvironment{}))
	})

	t.Run("injected_environment", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/xdg/process")
		env := paths.MapEnvironment{"XDG_CONFIG_HOME": "/xdg/injected"}
		assert.Equal(t, "/xdg/injected/heimweh/config.toml", UserConfigPath(env))
	})
}

func TestLoad_InjectedEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("HEIMWEH_CASTLES__DIR", ".from-process")

	configHome := t.TempDir()
	writeUserConfig(t, configHome, "[output]\nformat = \"yaml\"\n")

	env := paths.MapEnvironment{
		"XDG_CONFIG_HOME":        configHome,
		"HEIMWEH_LINK__DIR_MODE": "0700",
		"HEIMWEH_HOME":           "/from/map",
		"OTHER":                  "ignored",
	}
	cfg, err := Load(LoadOptions{Env: env})
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Output.Format, "config file found through the injected XDG_CONFIG_HOME")
	assert.Equal(t, os.FileMode(0700), cfg.Link.DirMode)
	assert.Equal(t, "/from/map", cfg.Home)
	assert.Equal(t, ".homesick", cfg.Castles.Dir, "process variables are not read")
}

func TestDefaultsContent(t *testing.T) {
	assert.Contains(t, DefaultsContent(), `manifest = "home.toml"`)
}
