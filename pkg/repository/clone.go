package repository

import (
	"context"
	"io"

	"github.com/arthur-debert/heimweh/pkg/errors"
	"github.com/arthur-debert/heimweh/pkg/logging"
	"github.com/go-git/go-git/v5"
)

// Cloner clones a remote repository into a local directory
type Cloner interface {
	Clone(ctx context.Context, url, path string) error
}

// GitCloner clones with go-git, initialising submodules recursively
type GitCloner struct {
	// Progress receives the remote's sideband output, may be nil
	Progress io.Writer
}

// Clone implements Cloner
func (c GitCloner) Clone(ctx context.Context, url, path string) error {
	logger := logging.GetLogger("repository.clone")
	logger.Info().Str("url", url).Str("path", path).Msg("Cloning castle")

	_, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{
		URL:               url,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
		Progress:          c.Progress,
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrClone, "failed to clone %s", url).
			WithDetail("url", url).
			WithDetail("path", path)
	}
	return nil
}
