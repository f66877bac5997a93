package materialize

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/heimweh/pkg/castle"
	"github.com/arthur-debert/heimweh/pkg/errors"
	"github.com/arthur-debert/heimweh/pkg/logging"
	"github.com/arthur-debert/heimweh/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultDirMode is used for created directories unless configured
const DefaultDirMode fs.FileMode = 0755

// Options configures a Planner
type Options struct {
	// FS is used to inspect the home directory
	FS types.FS
	// HomeDir receives the links
	HomeDir string
	// DirMode is the permission of created directories
	DirMode fs.FileMode
}

// Planner computes the operations linking castles into a home directory
type Planner struct {
	fs      types.FS
	home    string
	dirMode fs.FileMode
	logger  zerolog.Logger
}

// NewPlanner creates a planner
func NewPlanner(opts Options) *Planner {
	mode := opts.DirMode
	if mode == 0 {
		mode = DefaultDirMode
	}
	return &Planner{
		fs:      opts.FS,
		home:    opts.HomeDir,
		dirMode: mode,
		logger:  logging.GetLogger("materialize"),
	}
}

// claim records which castle owns a home path
type claim struct {
	castle string
	dir    bool
}

type planning struct {
	plan   *Plan
	claims map[string]claim
}

// Plan walks every castle in order and returns the resulting plan. It only
// reads the home directory.
func (p *Planner) Plan(castles []*castle.Castle) *Plan {
	defer logging.LogOperationStart(p.logger, "plan")()

	st := &planning{plan: &Plan{}, claims: make(map[string]claim)}
	for _, c := range castles {
		p.planCastle(st, c)
	}

	p.logger.Info().
		Int("operations", len(st.plan.Operations)).
		Int("unchanged", len(st.plan.Unchanged)).
		Int("issues", len(st.plan.Issues)).
		Msg("Plan ready")
	return st.plan
}

func (p *Planner) planCastle(st *planning, c *castle.Castle) {
	links, err := c.Links()
	if err != nil {
		p.logger.Error().Err(err).Str("castle", c.Name()).Msg("Cannot read castle, skipping")
		st.plan.Issues = append(st.plan.Issues, Issue{Castle: c.Name(), Severity: SeverityError, Err: err})
		return
	}

	var blocked []string
	var symlinks []types.Link

	// Phase 1: directories and files
	for _, link := range links {
		if isBelow(blocked, link.Path) {
			p.logger.Debug().Str("castle", c.Name()).Str("path", link.Path).Msg("Parent not linked, skipping")
			continue
		}

		switch {
		case link.IsSymlink():
			symlinks = append(symlinks, link)
		case link.IsDir():
			if !p.planDir(st, c, link) {
				blocked = append(blocked, link.Path)
			}
		default:
			p.planSymlink(st, c, link, filepath.Join(c.HomeRoot(), filepath.FromSlash(link.Path)))
		}
	}

	// Phase 2: symlinks stored in the castle
	for _, link := range symlinks {
		resolved, err := c.CheckLink(link)
		if err != nil {
			issue := Issue{Castle: c.Name(), Path: link.Path, Err: err}
			if errors.IsErrorCode(err, errors.ErrContainmentViolation) {
				p.logger.Error().
					Str("code", string(errors.ErrContainmentViolation)).
					Str("castle", c.Name()).
					Str("path", link.Path).
					Str("target", link.RawTarget).
					Msg("Symlink points outside of the castle, rejected")
				issue.Severity = SeverityError
			} else {
				p.logger.Warn().
					Err(err).
					Str("castle", c.Name()).
					Str("path", link.Path).
					Msg("Cannot resolve symlink, skipping")
				issue.Severity = SeverityWarning
			}
			st.plan.Issues = append(st.plan.Issues, issue)
			continue
		}

		p.planSymlink(st, c, link, resolved)
	}
}

// planDir plans the directory for link and reports whether its children
// can be linked
func (p *Planner) planDir(st *planning, c *castle.Castle, link types.Link) bool {
	target := p.target(link)
	op := types.Operation{
		Type:   types.OperationCreateDir,
		Castle: c.Name(),
		Path:   link.Path,
		Target: target,
		Mode:   p.dirMode,
	}

	if owner, ok := st.claims[link.Path]; ok {
		if owner.dir {
			return true
		}
		st.conflict(op, "%s is already linked from castle %s", target, owner.castle)
		return false
	}

	info, err := p.fs.Lstat(target)
	switch {
	case err != nil && os.IsNotExist(err):
		st.ready(op, true)
		return true
	case err != nil:
		st.fileAccess(op, err)
		return false
	case info.IsDir():
		st.unchanged(op, true)
		return true
	case info.Mode()&fs.ModeSymlink != 0:
		// a symlinked directory, e.g. ~/.config pointing elsewhere, is
		// used as is
		if dirInfo, err := p.fs.Stat(target); err == nil && dirInfo.IsDir() {
			st.unchanged(op, true)
			return true
		}
	}

	st.conflict(op, "%s exists and is not a directory", target)
	return false
}

// planSymlink plans a symlink at link's home path pointing at source
func (p *Planner) planSymlink(st *planning, c *castle.Castle, link types.Link, source string) {
	target := p.target(link)
	op := types.Operation{
		Type:   types.OperationCreateSymlink,
		Castle: c.Name(),
		Path:   link.Path,
		Source: source,
		Target: target,
	}

	if owner, ok := st.claims[link.Path]; ok {
		st.conflict(op, "%s is already linked from castle %s", target, owner.castle)
		return
	}

	info, err := p.fs.Lstat(target)
	if err != nil {
		if os.IsNotExist(err) {
			st.ready(op, false)
		} else {
			st.fileAccess(op, err)
		}
		return
	}

	if info.Mode()&fs.ModeSymlink == 0 {
		st.conflict(op, "%s already exists", target)
		return
	}

	existing, err := p.fs.Readlink(target)
	if err != nil {
		st.fileAccess(op, err)
		return
	}
	if !filepath.IsAbs(existing) {
		existing = filepath.Join(filepath.Dir(target), existing)
	}
	if filepath.Clean(existing) != filepath.Clean(source) {
		st.conflict(op, "%s already points to %s", target, existing)
		return
	}

	st.unchanged(op, false)
}

func (p *Planner) target(link types.Link) string {
	return filepath.Join(p.home, filepath.FromSlash(link.Path))
}

func (st *planning) ready(op types.Operation, dir bool) {
	op.Status = types.StatusReady
	st.plan.Operations = append(st.plan.Operations, op)
	st.claims[op.Path] = claim{castle: op.Castle, dir: dir}
}

func (st *planning) unchanged(op types.Operation, dir bool) {
	op.Status = types.StatusSkipped
	st.plan.Unchanged = append(st.plan.Unchanged, op)
	st.claims[op.Path] = claim{castle: op.Castle, dir: dir}
}

func (st *planning) conflict(op types.Operation, format string, args ...interface{}) {
	err := errors.Newf(errors.ErrLinkConflict, format, args...).
		WithDetail("castle", op.Castle).
		WithDetail("path", op.Target)
	logger := logging.GetLogger("materialize")
	logger.Warn().Str("castle", op.Castle).Str("path", op.Path).Msg(err.Message)
	st.plan.Issues = append(st.plan.Issues, Issue{Castle: op.Castle, Path: op.Path, Severity: SeverityError, Err: err})
}

func (st *planning) fileAccess(op types.Operation, cause error) {
	err := errors.Wrapf(cause, errors.ErrFileAccess, "cannot inspect %s", op.Target).
		WithDetail("castle", op.Castle).
		WithDetail("path", op.Target)
	st.plan.Issues = append(st.plan.Issues, Issue{Castle: op.Castle, Path: op.Path, Severity: SeverityError, Err: err})
}

// isBelow reports whether p lies below one of the blocked directories
func isBelow(blocked []string, p string) bool {
	for _, b := range blocked {
		if strings.HasPrefix(p, b+"/") {
			return true
		}
	}
	return false
}
