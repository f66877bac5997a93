// pkg/castle/walk_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory git repositories, fake accessor
// PURPOSE: Test tree traversal into link manifests

package castle_test

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/arthur-debert/heimweh/pkg/castle"
	"github.com/arthur-debert/heimweh/pkg/errors"
	"github.com/arthur-debert/heimweh/pkg/repository"
	"github.com/arthur-debert/heimweh/pkg/testutil"
	"github.com/arthur-debert/heimweh/pkg/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAccessor serves trees and blobs from maps
type fakeAccessor struct {
	head  string
	trees map[string][]repository.Entry
	blobs map[string][]byte
	fail  map[string]error
}

func (f *fakeAccessor) HeadTree() (string, error) {
	return f.head, nil
}

func (f *fakeAccessor) Entries(id string) ([]repository.Entry, error) {
	if err := f.fail[id]; err != nil {
		return nil, err
	}
	entries, ok := f.trees[id]
	if !ok {
		return nil, stderrors.New("object not found")
	}
	return entries, nil
}

func (f *fakeAccessor) BlobContent(id string) ([]byte, error) {
	if err := f.fail[id]; err != nil {
		return nil, err
	}
	data, ok := f.blobs[id]
	if !ok {
		return nil, stderrors.New("object not found")
	}
	return data, nil
}

func homeTreeID(t *testing.T, repo repository.Accessor) string {
	t.Helper()
	root, err := repo.HeadTree()
	require.NoError(t, err)
	id, found, err := repository.Subtree(repo, root, "home")
	require.NoError(t, err)
	require.True(t, found)
	return id
}

func TestWalk_PreOrderManifest(t *testing.T) {
	repo := testutil.NewMemoryRepository(t, testutil.TreeSpec{
		"home/.vimrc":             testutil.File("set nu\n"),
		"home/.config/git/config": testutil.File("[user]\n"),
		"home/.config/git/ignore": testutil.File("*.swp\n"),
		"home/.zshrc":             testutil.Symlink("../zsh/zshrc"),
	})

	links, err := castle.Walk(repo, homeTreeID(t, repo))
	require.NoError(t, err)

	var got []string
	for _, l := range links {
		got = append(got, string(l.Kind)+" "+l.Path)
	}

	// git stores ".config" before ".vimrc" and ".zshrc"
	want := []string{
		"directory .config",
		"directory .config/git",
		"file .config/git/config",
		"file .config/git/ignore",
		"file .vimrc",
		"symlink .zshrc",
	}
	assert.Equal(t, want, got)
}

func TestWalk_ParentsPrecedeChildren(t *testing.T) {
	repo := testutil.NewMemoryRepository(t, testutil.TreeSpec{
		"home/a/b/c/d":  testutil.File("d"),
		"home/a/x":      testutil.File("x"),
		"home/a/b/link": testutil.Symlink("c/d"),
		"home/z/y":      testutil.File("y"),
	})

	links, err := castle.Walk(repo, homeTreeID(t, repo))
	require.NoError(t, err)

	seen := map[string]int{}
	for i, l := range links {
		_, dup := seen[l.Path]
		assert.False(t, dup, "path %s listed twice", l.Path)
		seen[l.Path] = i
	}

	for i, l := range links {
		if idx := strings.LastIndex(l.Path, "/"); idx > 0 {
			parent := l.Path[:idx]
			parentIdx, ok := seen[parent]
			require.True(t, ok, "parent %s of %s missing", parent, l.Path)
			assert.Less(t, parentIdx, i, "parent %s must precede %s", parent, l.Path)
			assert.True(t, links[parentIdx].IsDir())
		}
	}
}

func TestWalk_SymlinkCarriesExactBlobBytes(t *testing.T) {
	target := "../../weird name/with\ttab/..//x"
	repo := testutil.NewMemoryRepository(t, testutil.TreeSpec{
		"home/dir/link":   testutil.Symlink(target),
		"home/dir/script": testutil.Executable("#!/bin/sh\n"),
	})

	links, err := castle.Walk(repo, homeTreeID(t, repo))
	require.NoError(t, err)
	require.Len(t, links, 3)

	byPath := map[string]types.Link{}
	for _, l := range links {
		byPath[l.Path] = l
	}

	link := byPath["dir/link"]
	assert.Equal(t, types.LinkSymlink, link.Kind)
	assert.Equal(t, target, link.RawTarget)
	assert.Equal(t, testutil.BlobID(target), link.ID)

	script := byPath["dir/script"]
	assert.Equal(t, types.LinkFile, script.Kind, "executables are plain files")
	assert.Empty(t, script.RawTarget)
}

func TestWalk_Decomposable(t *testing.T) {
	repo := testutil.NewMemoryRepository(t, testutil.TreeSpec{
		"home/.vimrc":             testutil.File("set nu\n"),
		"home/.config/git/config": testutil.File("[user]\n"),
		"home/.config/git/hooks":  testutil.Symlink("../../hooks"),
		"home/.config/nvim/init":  testutil.File("lua\n"),
		"home/bin/tool":           testutil.Executable("#!/bin/sh\n"),
	})

	all, err := castle.Walk(repo, homeTreeID(t, repo))
	require.NoError(t, err)

	var configID string
	var restricted []types.Link
	for _, l := range all {
		if l.Path == ".config" {
			configID = l.ID
			continue
		}
		if strings.HasPrefix(l.Path, ".config/") {
			l.Path = strings.TrimPrefix(l.Path, ".config/")
			restricted = append(restricted, l)
		}
	}
	require.NotEmpty(t, configID)

	sub, err := castle.Walk(repo, configID)
	require.NoError(t, err)

	if diff := cmp.Diff(restricted, sub); diff != "" {
		t.Errorf("walking a subtree differs from the restricted walk (-restricted +sub):\n%s", diff)
	}
}

func TestWalk_SkipsUnexpectedEntries(t *testing.T) {
	repo := testutil.NewMemoryRepository(t, testutil.TreeSpec{
		"home/.emacs.d/modules": testutil.Submodule("0123456789abcdef0123456789abcdef01234567"),
		"home/.emacs.d/init.el": testutil.File("(setq x 1)\n"),
	})

	links, err := castle.Walk(repo, homeTreeID(t, repo))
	require.NoError(t, err)

	var got []string
	for _, l := range links {
		got = append(got, l.Path)
	}
	assert.Equal(t, []string{".emacs.d", ".emacs.d/init.el"}, got)
}

func TestWalk_FakeAccessorUnknownKind(t *testing.T) {
	repo := &fakeAccessor{
		trees: map[string][]repository.Entry{
			"root": {
				{Name: "odd", ID: "o1", Kind: repository.KindUnknown, Mode: 0o160000},
				{Name: "ok", ID: "b1", Kind: repository.KindBlob, Mode: 0o100644},
			},
		},
	}

	links, err := castle.Walk(repo, "root")
	require.NoError(t, err)
	assert.Equal(t, []types.Link{types.NewFileLink("ok", "b1")}, links)
}

func TestWalk_AccessorFailures(t *testing.T) {
	t.Run("subtree_lookup_fails", func(t *testing.T) {
		repo := &fakeAccessor{
			trees: map[string][]repository.Entry{
				"root": {{Name: "dir", ID: "t1", Kind: repository.KindTree, Mode: 0o40000}},
			},
			fail: map[string]error{"t1": stderrors.New("corrupt tree")},
		}

		_, err := castle.Walk(repo, "root")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTreeIO))
		assert.Contains(t, err.Error(), "corrupt tree")
		assert.Equal(t, "dir", errors.GetErrorDetails(err)["path"])
	})

	t.Run("symlink_blob_fails", func(t *testing.T) {
		repo := &fakeAccessor{
			trees: map[string][]repository.Entry{
				"root": {{Name: "link", ID: "b1", Kind: repository.KindBlob, Mode: 0o120000}},
			},
			fail: map[string]error{"b1": stderrors.New("short read")},
		}

		_, err := castle.Walk(repo, "root")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTreeIO))
		assert.Equal(t, "link", errors.GetErrorDetails(err)["path"])
	})

	t.Run("regular_blobs_are_not_read", func(t *testing.T) {
		repo := &fakeAccessor{
			trees: map[string][]repository.Entry{
				"root": {{Name: "file", ID: "b1", Kind: repository.KindBlob, Mode: 0o100644}},
			},
			fail: map[string]error{"b1": stderrors.New("must not be read")},
		}

		links, err := castle.Walk(repo, "root")
		require.NoError(t, err)
		assert.Len(t, links, 1)
	})
}
