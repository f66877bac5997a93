package world

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/heimweh/pkg/castle"
	"github.com/arthur-debert/heimweh/pkg/errors"
	"github.com/arthur-debert/heimweh/pkg/logging"
	"github.com/arthur-debert/heimweh/pkg/paths"
	"github.com/arthur-debert/heimweh/pkg/types"
)

// World is the set of castles below a castles root together with the home
// directory they are linked into
type World struct {
	paths paths.Paths
}

// New creates a World over the given locations
func New(p paths.Paths) *World {
	return &World{paths: p}
}

// Paths returns the locations the world works with
func (w *World) Paths() paths.Paths {
	return w.paths
}

// CastleNames lists the directories below the castles root, sorted by
// name. Hidden entries and plain files are skipped. A missing castles root
// yields no names.
func (w *World) CastleNames() ([]string, error) {
	logger := logging.GetLogger("world")
	root := w.paths.CastlesRoot()

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("root", root).Msg("Castles root does not exist")
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot access castles root").
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrInvalidInput, "castles root is not a directory").
			WithDetail("path", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read castles root").
			WithDetail("path", root)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			logger.Trace().Str("name", name).Msg("Skipping hidden entry")
			continue
		}
		if !isDir(filepath.Join(root, name), entry) {
			logger.Trace().Str("name", name).Msg("Skipping non-directory")
			continue
		}
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

// Castles opens every castle below the castles root. Castles that cannot
// be opened are returned as failures; the error result is reserved for an
// unreadable castles root.
func (w *World) Castles() ([]*castle.Castle, []types.CastleFailure, error) {
	logger := logging.GetLogger("world")

	names, err := w.CastleNames()
	if err != nil {
		return nil, nil, err
	}

	var castles []*castle.Castle
	var failures []types.CastleFailure
	for _, name := range names {
		c, err := castle.Open(w.paths.CastlePath(name))
		if err != nil {
			logger.Warn().Err(err).Str("castle", name).Msg("Failed to open castle, skipping")
			failures = append(failures, w.failure(name, err))
			continue
		}
		castles = append(castles, c)
	}

	logger.Info().
		Int("castles", len(castles)).
		Int("failures", len(failures)).
		Msg("Scanned castles root")
	return castles, failures, nil
}

// CastleForName opens the named castle. It fails with INVALID_INPUT for
// names that cannot be a directory below the castles root or that are
// hidden, as CastleNames never lists those, NOT_FOUND when
// the castle does not exist and REPOSITORY_OPEN when it is not a git
// repository.
func (w *World) CastleForName(name string) (*castle.Castle, error) {
	if err := paths.ValidateCastleName(name); err != nil {
		return nil, err
	}
	if strings.HasPrefix(name, ".") {
		return nil, errors.Newf(errors.ErrInvalidInput, "castle name cannot be hidden: %q", name).
			WithDetail("castle", name)
	}

	dir := w.paths.CastlePath(name)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrNotFound, "castle %s not found", name).
				WithDetail("castle", name).
				WithDetail("path", dir)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot access castle %s", name).
			WithDetail("castle", name).
			WithDetail("path", dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrRepositoryOpen, "castle %s is not a directory", name).
			WithDetail("castle", name).
			WithDetail("path", dir)
	}

	return castle.Open(dir)
}

// Select opens the named castles in the given order, or every castle when
// no names are given. Duplicate names are opened once.
func (w *World) Select(names []string) ([]*castle.Castle, []types.CastleFailure, error) {
	if len(names) == 0 {
		return w.Castles()
	}

	logger := logging.GetLogger("world")
	seen := make(map[string]bool, len(names))

	var castles []*castle.Castle
	var failures []types.CastleFailure
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		c, err := w.CastleForName(name)
		if err != nil {
			logger.Warn().Err(err).Str("castle", name).Msg("Failed to open castle")
			failures = append(failures, w.failure(name, err))
			continue
		}
		castles = append(castles, c)
	}

	return castles, failures, nil
}

// Links returns the manifest of the castle
func (w *World) Links(c *castle.Castle) ([]types.Link, error) {
	links, err := c.Links()
	if err != nil {
		return nil, err
	}
	if links == nil {
		links = []types.Link{}
	}
	return links, nil
}

func (w *World) failure(name string, err error) types.CastleFailure {
	return types.CastleFailure{Name: name, Path: w.paths.CastlePath(name), Err: err}
}

// isDir follows symlinked entries so castles may live elsewhere
func isDir(full string, entry os.DirEntry) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := os.Stat(full)
	return err == nil && info.IsDir()
}
