package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/heimweh/pkg/repository"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/storage/memory"
)

// EntrySpec describes one entry of a TreeSpec
type EntrySpec struct {
	// Content is the blob content; for submodules the commit hash
	Content string
	Mode    filemode.FileMode
}

// TreeSpec maps slash separated repository paths to entries. Parent
// directories are implied.
type TreeSpec map[string]EntrySpec

// File is a regular file entry
func File(content string) EntrySpec {
	return EntrySpec{Content: content, Mode: filemode.Regular}
}

// Executable is an executable file entry
func Executable(content string) EntrySpec {
	return EntrySpec{Content: content, Mode: filemode.Executable}
}

// Symlink is a symlink entry pointing at target
func Symlink(target string) EntrySpec {
	return EntrySpec{Content: target, Mode: filemode.Symlink}
}

// Dir is an explicit directory entry, useful for directories holding
// only other directories
func Dir() EntrySpec {
	return EntrySpec{Mode: filemode.Dir}
}

// Submodule is a gitlink entry referencing commit
func Submodule(commit string) EntrySpec {
	return EntrySpec{Content: commit, Mode: filemode.Submodule}
}

// NewMemoryRepository builds an in-memory repository, objects in memory
// storage and an empty memfs work tree, whose HEAD commit holds the tree
func NewMemoryRepository(t *testing.T, spec TreeSpec) *repository.Repository {
	t.Helper()

	r, err := git.Init(memory.NewStorage(), memfs.New())
	if err != nil {
		t.Fatalf("Failed to init memory repository: %v", err)
	}
	commitTree(t, r, spec)
	return repository.FromGit(r, "")
}

// NewCastle creates a castle at dir: a git repository whose HEAD commit
// holds the tree, with the tree also written out as the work tree.
func NewCastle(t *testing.T, dir string, spec TreeSpec) string {
	t.Helper()

	r, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("Failed to init repository at %s: %v", dir, err)
	}
	commitTree(t, r, spec)
	WriteWorktree(t, dir, spec)
	return dir
}

// WriteWorktree writes the files, directories and symlinks of spec below dir.
// Submodule entries become empty directories.
func WriteWorktree(t *testing.T, dir string, spec TreeSpec) {
	t.Helper()

	for _, p := range sortedPaths(spec) {
		e := spec[p]
		full := filepath.Join(dir, filepath.FromSlash(p))

		if e.Mode == filemode.Dir || e.Mode == filemode.Submodule {
			if err := os.MkdirAll(full, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", full, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", filepath.Dir(full), err)
		}

		switch e.Mode {
		case filemode.Symlink:
			if err := os.Symlink(e.Content, full); err != nil {
				t.Fatalf("Failed to create symlink %s: %v", full, err)
			}
		case filemode.Executable:
			if err := os.WriteFile(full, []byte(e.Content), 0755); err != nil {
				t.Fatalf("Failed to write %s: %v", full, err)
			}
		default:
			if err := os.WriteFile(full, []byte(e.Content), 0644); err != nil {
				t.Fatalf("Failed to write %s: %v", full, err)
			}
		}
	}
}

// commitTree stores the tree described by spec, commits it and points
// HEAD at the commit through refs/heads/master.
func commitTree(t *testing.T, r *git.Repository, spec TreeSpec) plumbing.Hash {
	t.Helper()

	root := buildNode(spec)
	treeHash := storeNode(t, r.Storer, root)

	sig := object.Signature{
		Name:  "heimweh",
		Email: "heimweh@example.com",
		When:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	commit := &object.Commit{
		Author:    sig,
		Committer: sig,
		Message:   "castle fixture\n",
		TreeHash:  treeHash,
	}
	obj := r.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		t.Fatalf("Failed to encode commit: %v", err)
	}
	commitHash, err := r.Storer.SetEncodedObject(obj)
	if err != nil {
		t.Fatalf("Failed to store commit: %v", err)
	}

	branch := plumbing.NewBranchReferenceName("master")
	if err := r.Storer.SetReference(plumbing.NewHashReference(branch, commitHash)); err != nil {
		t.Fatalf("Failed to set branch: %v", err)
	}
	if err := r.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, branch)); err != nil {
		t.Fatalf("Failed to set HEAD: %v", err)
	}
	return commitHash
}

type node struct {
	entry    EntrySpec
	children map[string]*node
}

func buildNode(spec TreeSpec) *node {
	root := &node{entry: Dir(), children: map[string]*node{}}
	for p, e := range spec {
		cur := root
		parts := strings.Split(strings.Trim(p, "/"), "/")
		for i, part := range parts {
			child, ok := cur.children[part]
			if !ok {
				child = &node{entry: Dir(), children: map[string]*node{}}
				cur.children[part] = child
			}
			if i == len(parts)-1 {
				child.entry = e
			}
			cur = child
		}
	}
	return root
}

func storeNode(t *testing.T, s storer.EncodedObjectStorer, n *node) plumbing.Hash {
	t.Helper()

	entries := make([]object.TreeEntry, 0, len(n.children))
	for name, child := range n.children {
		var h plumbing.Hash
		switch child.entry.Mode {
		case filemode.Dir:
			h = storeNode(t, s, child)
		case filemode.Submodule:
			h = plumbing.NewHash(child.entry.Content)
		default:
			h = storeBlob(t, s, []byte(child.entry.Content))
		}
		entries = append(entries, object.TreeEntry{Name: name, Mode: child.entry.Mode, Hash: h})
	}

	// git orders entries by name, comparing directories as if they had a
	// trailing slash
	sort.Slice(entries, func(i, j int) bool {
		return sortKey(entries[i]) < sortKey(entries[j])
	})

	tree := &object.Tree{Entries: entries}
	obj := s.NewEncodedObject()
	if err := tree.Encode(obj); err != nil {
		t.Fatalf("Failed to encode tree: %v", err)
	}
	h, err := s.SetEncodedObject(obj)
	if err != nil {
		t.Fatalf("Failed to store tree: %v", err)
	}
	return h
}

func storeBlob(t *testing.T, s storer.EncodedObjectStorer, data []byte) plumbing.Hash {
	t.Helper()

	obj := s.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	w, err := obj.Writer()
	if err != nil {
		t.Fatalf("Failed to open blob writer: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Failed to write blob: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close blob writer: %v", err)
	}
	h, err := s.SetEncodedObject(obj)
	if err != nil {
		t.Fatalf("Failed to store blob: %v", err)
	}
	return h
}

func sortKey(e object.TreeEntry) string {
	if e.Mode == filemode.Dir {
		return e.Name + "/"
	}
	return e.Name
}

func sortedPaths(spec TreeSpec) []string {
	paths := make([]string, 0, len(spec))
	for p := range spec {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		// parents before children
		di, dj := strings.Count(paths[i], "/"), strings.Count(paths[j], "/")
		if di != dj {
			return di < dj
		}
		return paths[i] < paths[j]
	})
	return paths
}

// BlobID returns the git blob id of content, as stored in a tree
func BlobID(content string) string {
	return plumbing.ComputeHash(plumbing.BlobObject, []byte(content)).String()
}
