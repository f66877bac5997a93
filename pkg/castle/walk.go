package castle

import (
	"github.com/arthur-debert/heimweh/pkg/errors"
	"github.com/arthur-debert/heimweh/pkg/logging"
	"github.com/arthur-debert/heimweh/pkg/repository"
	"github.com/arthur-debert/heimweh/pkg/types"
)

// Walk converts the tree treeID into a manifest. Entries appear in the order
// the tree stores them, each directory immediately followed by its
// contents. Entries that are neither trees nor blobs, such as submodule
// commits, are logged and skipped.
func Walk(repo repository.Accessor, treeID string) ([]types.Link, error) {
	return walkTree(repo, treeID, "")
}

func walkTree(repo repository.Accessor, treeID, prefix string) ([]types.Link, error) {
	entries, err := repo.Entries(treeID)
	if err != nil {
		return nil, treeError(err, treeID, prefix)
	}

	var links []types.Link
	for _, entry := range entries {
		p := entry.Name
		if prefix != "" {
			p = prefix + "/" + entry.Name
		}

		switch entry.Kind {
		case repository.KindTree:
			links = append(links, types.NewDirectoryLink(p, entry.ID))

			children, err := walkTree(repo, entry.ID, p)
			if err != nil {
				return nil, err
			}
			links = append(links, children...)

		case repository.KindBlob:
			if entry.Mode != types.SymlinkMode {
				links = append(links, types.NewFileLink(p, entry.ID))
				continue
			}

			content, err := repo.BlobContent(entry.ID)
			if err != nil {
				return nil, treeError(err, entry.ID, p)
			}
			links = append(links, types.NewSymlinkLink(p, entry.ID, string(content)))

		default:
			logger := logging.GetLogger("castle.walk")
			logger.Warn().
				Str("code", string(errors.ErrUnexpectedTreeEntry)).
				Str("path", p).
				Str("kind", entry.Kind.String()).
				Str("id", entry.ID).
				Msg("Unexpected kind in tree, skipping")
		}
	}

	return links, nil
}

// treeError wraps accessor failures as TREE_IO, keeping the path where the
// walk failed. Errors that already are TREE_IO only gain the path.
func treeError(err error, id, p string) error {
	var herr *errors.HeimwehError
	if e, ok := err.(*errors.HeimwehError); ok && e.Code == errors.ErrTreeIO {
		herr = e
	} else {
		herr = errors.Wrapf(err, errors.ErrTreeIO, "failed to walk object %s", id)
	}
	if p != "" {
		herr.WithDetail("path", p)
	}
	return herr
}
