// pkg/types/link_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test link target derivation and kind helpers

package types_test

import (
	"testing"

	"github.com/arthur-debert/heimweh/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestLinkTarget(t *testing.T) {
	tests := []struct {
		name string
		link types.Link
		want string
	}{
		{
			name: "file_is_placed_at_own_path",
			link: types.NewFileLink(".config/git/config", "a1"),
			want: ".config/git/config",
		},
		{
			name: "directory_is_placed_at_own_path",
			link: types.NewDirectoryLink(".config", "a2"),
			want: ".config",
		},
		{
			name: "symlink_resolves_against_parent",
			link: types.NewSymlinkLink("a/b/link", "a3", "../x"),
			want: "a/x",
		},
		{
			name: "symlink_sibling",
			link: types.NewSymlinkLink("a/b/link", "a4", "c"),
			want: "a/b/c",
		},
		{
			name: "symlink_at_root",
			link: types.NewSymlinkLink(".vimrc", "a5", "vim/vimrc"),
			want: "vim/vimrc",
		},
		{
			name: "symlink_escaping_root_keeps_dotdot",
			link: types.NewSymlinkLink(".zshrc", "a6", "../zsh/zshrc"),
			want: "../zsh/zshrc",
		},
		{
			name: "absolute_symlink_is_kept",
			link: types.NewSymlinkLink("a/link", "a7", "/etc//passwd"),
			want: "/etc/passwd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.link.Target())
		})
	}
}

func TestLinkKindHelpers(t *testing.T) {
	dir := types.NewDirectoryLink("d", "1")
	file := types.NewFileLink("f", "2")
	link := types.NewSymlinkLink("l", "3", "f")

	assert.True(t, dir.IsDir())
	assert.False(t, file.IsDir())
	assert.False(t, link.IsDir())

	assert.True(t, link.IsSymlink())
	assert.False(t, file.IsSymlink())
}

func TestLinkString(t *testing.T) {
	assert.Equal(t, ".vim [Directory] abc", types.NewDirectoryLink(".vim", "abc").String())
	assert.Equal(t, ".vimrc [File] def", types.NewFileLink(".vimrc", "def").String())
	assert.Equal(t, "a/l [Symlink(../x)] 123", types.NewSymlinkLink("a/l", "123", "../x").String())
}
