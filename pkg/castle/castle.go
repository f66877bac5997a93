package castle

import (
	"path"
	"path/filepath"

	"github.com/arthur-debert/heimweh/pkg/errors"
	"github.com/arthur-debert/heimweh/pkg/logging"
	"github.com/arthur-debert/heimweh/pkg/paths"
	"github.com/arthur-debert/heimweh/pkg/repository"
	"github.com/arthur-debert/heimweh/pkg/types"
)

// Castle is an opened castle repository
type Castle struct {
	name string
	root string
	repo repository.Accessor
}

// Open opens the castle whose working directory is dir. The castle is named
// after the directory.
func Open(dir string) (*Castle, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", dir)
	}

	repo, err := repository.Open(abs)
	if err != nil {
		return nil, err
	}

	return New(filepath.Base(abs), abs, repo), nil
}

// New creates a castle from an already opened repository
func New(name, root string, repo repository.Accessor) *Castle {
	return &Castle{name: name, root: root, repo: repo}
}

// Name returns the castle's name
func (c *Castle) Name() string {
	return c.name
}

// Root returns the castle's working directory
func (c *Castle) Root() string {
	return c.root
}

// HomeRoot returns the directory of the castle's home tree in the work tree
func (c *Castle) HomeRoot() string {
	return filepath.Join(c.root, paths.CastleHomeDir)
}

// Info returns summary information about the castle
func (c *Castle) Info() types.CastleInfo {
	return types.CastleInfo{Name: c.name, Path: c.root}
}

// Links walks the home tree of the castle's latest commit
func (c *Castle) Links() ([]types.Link, error) {
	logger := logging.GetLogger("castle")
	defer logging.LogOperationStart(logger, "links:"+c.name)()

	rootTree, err := c.repo.HeadTree()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTreeIO, "failed to read latest commit of castle %s", c.name).
			WithDetail("castle", c.name)
	}

	homeTree, found, err := repository.Subtree(c.repo, rootTree, paths.CastleHomeDir)
	if err != nil {
		return nil, treeError(err, rootTree, "")
	}
	if !found {
		return nil, errors.Newf(errors.ErrMissingHomeSubtree, "no '%s' dir found in castle %s", paths.CastleHomeDir, c.name).
			WithDetail("castle", c.name)
	}

	links, err := Walk(c.repo, homeTree)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("castle", c.name).Int("links", len(links)).Msg("Walked home tree")
	return links, nil
}

// ResolvePath returns the canonical location of a home-relative path in the
// castle's work tree
func (c *Castle) ResolvePath(rel string) (string, error) {
	return paths.Resolve(c.root, rel)
}

// ResolveLink returns the canonical location of the link's target in the
// castle's work tree. The entry has to exist on disk.
func (c *Castle) ResolveLink(link types.Link) (string, error) {
	if !link.IsSymlink() {
		return c.ResolvePath(link.Target())
	}

	if path.IsAbs(link.RawTarget) {
		resolved, err := paths.Canonicalize(filepath.FromSlash(link.RawTarget))
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrPathResolution, "cannot resolve %s", link.RawTarget).
				WithDetail("castle", c.name).
				WithDetail("path", link.Path)
		}
		return resolved, nil
	}

	// Hand the unclean path to the filesystem so ".." applies after any
	// symlinked parent has been followed.
	return c.ResolvePath(path.Dir(link.Path) + "/" + link.RawTarget)
}

// IsInside reports whether p lies inside the castle's working directory
func (c *Castle) IsInside(p string) bool {
	return paths.IsInside(c.root, p)
}

// CheckLink resolves the link's target and verifies it stays inside the
// castle. It returns the resolved path, a PATH_RESOLUTION error when the
// target does not exist, or a CONTAINMENT_VIOLATION error when it escapes.
func (c *Castle) CheckLink(link types.Link) (string, error) {
	resolved, err := c.ResolveLink(link)
	if err != nil {
		return "", err
	}

	if !c.IsInside(resolved) {
		return "", errors.Newf(errors.ErrContainmentViolation,
			"link %s in castle %s points outside of the castle: %s", link.Path, c.name, resolved).
			WithDetail("castle", c.name).
			WithDetail("path", link.Path).
			WithDetail("target", resolved)
	}
	return resolved, nil
}
