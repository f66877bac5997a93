package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/heimweh/pkg/errors"
)

// Resolve returns the canonical location of rel, a slash separated path
// relative to the castle's home tree. The path must exist.
//
// The path is not cleaned before it reaches the filesystem:
// "a/link/../b" has to follow "a/link" before ".." is applied.
func Resolve(castleRoot, rel string) (string, error) {
	sep := string(filepath.Separator)
	joined := strings.TrimRight(castleRoot, sep) + sep + CastleHomeDir + sep + filepath.FromSlash(rel)

	resolved, err := Canonicalize(joined)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrPathResolution, "cannot resolve %s", rel).
			WithDetail("castle", castleRoot).
			WithDetail("path", rel)
	}
	return resolved, nil
}

// Canonicalize returns the absolute path of p with every symlink resolved.
// It fails if p, or any component of it, does not exist.
func Canonicalize(p string) (string, error) {
	if !filepath.IsAbs(p) {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		p = wd + string(filepath.Separator) + p
	}

	resolved, err := filepath.EvalSymlinks(p)
	if err != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}

// IsInside reports whether candidate is root or lies below it. Both paths
// are canonicalized, so a symlinked prefix on either side does not change
// the answer. For a path that does not exist, the longest existing prefix
// is canonicalized and the remaining components are appended. The
// comparison is per path component: "/a/bc" is not inside "/a/b".
func IsInside(root, candidate string) bool {
	r := canonicalPrefix(root)
	c := canonicalPrefix(candidate)

	if r == c {
		return true
	}

	sep := string(filepath.Separator)
	if !strings.HasSuffix(r, sep) {
		r += sep
	}
	return strings.HasPrefix(c, r)
}

// canonicalPrefix canonicalizes the longest existing prefix of p and joins
// the missing tail onto it
func canonicalPrefix(p string) string {
	if resolved, err := Canonicalize(p); err == nil {
		return resolved
	}

	sep := string(filepath.Separator)
	prefix := p
	if !filepath.IsAbs(prefix) {
		wd, err := os.Getwd()
		if err != nil {
			return filepath.Clean(p)
		}
		prefix = wd + sep + prefix
	}

	rest := ""
	for {
		i := strings.LastIndex(prefix, sep)
		if i < 0 {
			break
		}
		rest = filepath.Join(prefix[i+1:], rest)
		prefix = prefix[:i]
		if prefix == "" {
			prefix = sep
		}
		if resolved, err := Canonicalize(prefix); err == nil {
			return filepath.Join(resolved, rest)
		}
		if prefix == sep {
			break
		}
	}
	return filepath.Clean(p)
}
