package bootstrap

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/heimweh/pkg/config"
	"github.com/arthur-debert/heimweh/pkg/errors"
	"github.com/arthur-debert/heimweh/pkg/logging"
	"github.com/arthur-debert/heimweh/pkg/paths"
	"github.com/arthur-debert/heimweh/pkg/repository"
	"github.com/arthur-debert/heimweh/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures a bootstrap run
type Options struct {
	// CastlesRoot receives one directory per cloned castle
	CastlesRoot string
	// ManifestName is the file declaring further castles, home.toml by default
	ManifestName string
	// Cloner fetches remotes, repository.GitCloner by default
	Cloner repository.Cloner
	// DirMode is used when creating the castles root, 0755 by default
	DirMode os.FileMode
}

type run struct {
	opts   Options
	logger zerolog.Logger
	result *types.BootstrapResult
}

// Bootstrap clones url into the castles root under the name derived from
// it, then clones every castle declared by its manifest, recursively.
//
// Problems with the first castle are returned as error. Problems with a
// declared castle are recorded in the result's Failures and only stop the
// bootstrap of that castle's own declarations.
func Bootstrap(ctx context.Context, opts Options, url string) (*types.BootstrapResult, error) {
	opts = withDefaults(opts)

	r := &run{
		opts:   opts,
		logger: logging.GetLogger("bootstrap"),
		result: &types.BootstrapResult{Cloned: []types.CastleInfo{}},
	}
	defer logging.LogOperationStart(r.logger, "bootstrap")()

	name, err := NameFromURL(url)
	if err != nil {
		return nil, err
	}
	if err := paths.ValidateCastleName(name); err != nil {
		return nil, err
	}

	dest := filepath.Join(opts.CastlesRoot, name)
	if exists(dest) {
		return nil, errors.Newf(errors.ErrAlreadyExists, "castle %s already exists at %s", name, dest).
			WithDetail("castle", name).
			WithDetail("path", dest)
	}

	if err := os.MkdirAll(opts.CastlesRoot, opts.DirMode); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create castles root %s", opts.CastlesRoot).
			WithDetail("path", opts.CastlesRoot)
	}

	if err := opts.Cloner.Clone(ctx, url, dest); err != nil {
		return nil, err
	}
	r.cloned(name, dest)

	r.follow(ctx, name, dest)
	return r.result, nil
}

// follow clones the castles declared in the manifest of the castle at dir
func (r *run) follow(ctx context.Context, owner, dir string) {
	manifestPath := filepath.Join(dir, r.opts.ManifestName)
	manifest, err := config.LoadCastleManifest(manifestPath)
	if err != nil {
		r.logger.Error().Err(err).Str("castle", owner).Msg("Cannot read castle manifest")
		r.fail(owner, dir, err)
		return
	}

	for _, decl := range manifest.Declared() {
		dest := filepath.Join(r.opts.CastlesRoot, decl.Name)

		if err := paths.ValidateCastleName(decl.Name); err != nil {
			r.logger.Error().Err(err).Str("declaredBy", owner).Msg("Invalid declared castle name")
			r.fail(decl.Name, dest, err)
			continue
		}

		if exists(dest) {
			r.logger.Info().
				Str("castle", decl.Name).
				Str("declaredBy", owner).
				Msg("Castle already present, skipping")
			r.result.Skipped = append(r.result.Skipped, types.CastleInfo{Name: decl.Name, Path: dest})
			continue
		}

		if err := r.opts.Cloner.Clone(ctx, decl.URL, dest); err != nil {
			r.logger.Error().Err(err).Str("castle", decl.Name).Str("url", decl.URL).Msg("Failed to clone declared castle")
			r.fail(decl.Name, dest, err)
			continue
		}
		r.cloned(decl.Name, dest)

		r.follow(ctx, decl.Name, dest)
	}
}

func (r *run) cloned(name, dest string) {
	r.logger.Info().Str("castle", name).Str("path", dest).Msg("Castle cloned")
	r.result.Cloned = append(r.result.Cloned, types.CastleInfo{Name: name, Path: dest})
}

func (r *run) fail(name, dest string, err error) {
	r.result.Failures = append(r.result.Failures, types.CastleFailure{Name: name, Path: dest, Err: err})
}

func withDefaults(opts Options) Options {
	if opts.ManifestName == "" {
		opts.ManifestName = paths.CastleManifestFile
	}
	if opts.Cloner == nil {
		opts.Cloner = repository.GitCloner{}
	}
	if opts.DirMode == 0 {
		opts.DirMode = 0755
	}
	return opts
}

func exists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}
