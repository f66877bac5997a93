package repository

import (
	"io"

	"github.com/arthur-debert/heimweh/pkg/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
)

// ObjectKind is the kind of object a tree entry refers to
type ObjectKind int

const (
	KindUnknown ObjectKind = iota
	KindTree
	KindBlob
	KindCommit
)

// String returns the git name of the object kind
func (k ObjectKind) String() string {
	switch k {
	case KindTree:
		return "tree"
	case KindBlob:
		return "blob"
	case KindCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// Entry is a single named entry of a tree
type Entry struct {
	Name string
	ID   string
	Kind ObjectKind
	Mode uint32
}

// Accessor gives read access to the objects of a repository
type Accessor interface {
	// HeadTree returns the id of the root tree of the latest commit
	HeadTree() (string, error)
	// Entries lists a tree's entries in stored order
	Entries(treeID string) ([]Entry, error)
	// BlobContent returns the raw bytes of a blob
	BlobContent(blobID string) ([]byte, error)
}

// Subtree looks up the tree entry called name directly under treeID.
// found is false when there is no such entry or it is not a tree.
func Subtree(a Accessor, treeID, name string) (id string, found bool, err error) {
	entries, err := a.Entries(treeID)
	if err != nil {
		return "", false, err
	}
	for _, e := range entries {
		if e.Name == name && e.Kind == KindTree {
			return e.ID, true, nil
		}
	}
	return "", false, nil
}

// Repository is a git repository opened with go-git
type Repository struct {
	repo    *git.Repository
	workdir string
}

// Open opens the repository whose working directory is path. Parent
// directories are not searched.
func Open(path string) (*Repository, error) {
	r, err := git.PlainOpen(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRepositoryOpen, "could not open castle at %s", path).
			WithDetail("path", path)
	}
	return &Repository{repo: r, workdir: path}, nil
}

// FromGit wraps an already opened go-git repository
func FromGit(r *git.Repository, workdir string) *Repository {
	return &Repository{repo: r, workdir: workdir}
}

// Workdir returns the working directory the repository was opened at
func (r *Repository) Workdir() string {
	return r.workdir
}

// HeadTree returns the id of the tree of the commit HEAD points to
func (r *Repository) HeadTree() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrTreeIO, "failed to resolve HEAD")
	}
	commit, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTreeIO, "failed to load commit %s", ref.Hash())
	}
	return commit.TreeHash.String(), nil
}

// Entries lists the entries of a tree
func (r *Repository) Entries(treeID string) ([]Entry, error) {
	tree, err := r.repo.TreeObject(plumbing.NewHash(treeID))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTreeIO, "failed to load tree %s", treeID)
	}

	entries := make([]Entry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		entries = append(entries, Entry{
			Name: e.Name,
			ID:   e.Hash.String(),
			Kind: kindForMode(e.Mode),
			Mode: uint32(e.Mode),
		})
	}
	return entries, nil
}

// BlobContent returns the raw content of a blob
func (r *Repository) BlobContent(blobID string) ([]byte, error) {
	blob, err := r.repo.BlobObject(plumbing.NewHash(blobID))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTreeIO, "failed to load blob %s", blobID)
	}
	reader, err := blob.Reader()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTreeIO, "failed to read blob %s", blobID)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTreeIO, "failed to read blob %s", blobID)
	}
	return data, nil
}

// kindForMode maps a tree entry mode to the kind of object it refers to,
// the same way git itself does.
func kindForMode(m filemode.FileMode) ObjectKind {
	switch m {
	case filemode.Dir:
		return KindTree
	case filemode.Regular, filemode.Deprecated, filemode.Executable, filemode.Symlink:
		return KindBlob
	case filemode.Submodule:
		return KindCommit
	default:
		return KindUnknown
	}
}
