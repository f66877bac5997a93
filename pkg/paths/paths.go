package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/heimweh/pkg/errors"
)

// EnvHome is the standard home directory variable
const EnvHome = "HOME"

// Castle layout. These describe the structure of a castle repository and
// are not user-configurable.
const (
	// DefaultCastlesDir is the directory below home holding all castles
	DefaultCastlesDir = ".homesick"

	// CastleHomeDir is the subtree of a castle mirroring the home directory
	CastleHomeDir = "home"

	// CastleManifestFile declares further castles to bootstrap
	CastleManifestFile = "home.toml"
)

// Paths provides the two locations a heimweh invocation works with
type Paths interface {
	// HomeDir is the directory castles are linked into
	HomeDir() string
	// CastlesRoot is the directory holding one subdirectory per castle
	CastlesRoot() string
	// CastlePath returns the working directory of the named castle
	CastlePath(name string) string
	// HomePath maps a slash separated home-relative path into HomeDir
	HomePath(rel string) string
}

// Options overrides the defaults of New. Empty fields use defaults.
type Options struct {
	HomeDir        string
	CastlesRoot    string
	CastlesDirName string
}

type paths struct {
	homeDir     string
	castlesRoot string
}

// New creates a Paths instance. The home directory defaults to the one
// reported by env, the castles root to <home>/.homesick. Both may start
// with "~/".
func New(env Environment, opts Options) (Paths, error) {
	home := opts.HomeDir
	if home == "" {
		h, err := HomeDirectory(env)
		if err != nil {
			return nil, err
		}
		home = h
	} else {
		expanded, err := expandHome(env, home)
		if err != nil {
			return nil, err
		}
		home = expanded
	}

	absHome, err := filepath.Abs(home)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for home %s", home)
	}

	root := opts.CastlesRoot
	if root == "" {
		dirName := opts.CastlesDirName
		if dirName == "" {
			dirName = DefaultCastlesDir
		}
		root = filepath.Join(absHome, dirName)
	} else {
		expanded, err := expandHome(env, root)
		if err != nil {
			return nil, err
		}
		root = expanded
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for castles root %s", root)
	}

	return &paths{homeDir: absHome, castlesRoot: absRoot}, nil
}

func (p *paths) HomeDir() string {
	return p.homeDir
}

func (p *paths) CastlesRoot() string {
	return p.castlesRoot
}

func (p *paths) CastlePath(name string) string {
	return filepath.Join(p.castlesRoot, name)
}

func (p *paths) HomePath(rel string) string {
	return filepath.Join(p.homeDir, filepath.FromSlash(rel))
}

// expandHome expands a leading "~" to the home directory reported by env
func expandHome(env Environment, path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := HomeDirectory(env)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot expand ~ in %s", path)
	}
	return filepath.Join(home, path[1:]), nil
}
