package bootstrap

import (
	"strings"

	"github.com/arthur-debert/heimweh/pkg/errors"
)

const (
	gitSuffix = ".git"
	dotPrefix = "dot-"
)

// NameFromURL derives a castle name from a remote URL: the last path
// segment without ".git" suffix and "dot-" prefix. Scp-like addresses such
// as git@host:dot-zsh.git are supported.
func NameFromURL(url string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(url), "/")

	segment := trimmed
	if i := strings.LastIndexAny(trimmed, "/:"); i >= 0 {
		segment = trimmed[i+1:]
	}

	name := strings.TrimPrefix(strings.TrimSuffix(segment, gitSuffix), dotPrefix)
	if name == "" {
		return "", errors.Newf(errors.ErrInvalidInput, "cannot derive a castle name from %q", url).
			WithDetail("url", url)
	}
	return name, nil
}
