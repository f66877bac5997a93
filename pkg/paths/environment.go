package paths

import (
	"os"
	"sort"

	"github.com/arthur-debert/heimweh/pkg/errors"
)

// Environment provides the process environment lookups heimweh depends on
type Environment interface {
	Getenv(key string) string
	// Environ returns the variables as "key=value" strings
	Environ() []string
	UserHomeDir() (string, error)
}

// OSEnvironment reads the real process environment
type OSEnvironment struct{}

// Getenv implements Environment
func (OSEnvironment) Getenv(key string) string {
	return os.Getenv(key)
}

// Environ implements Environment
func (OSEnvironment) Environ() []string {
	return os.Environ()
}

// UserHomeDir implements Environment
func (OSEnvironment) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

// MapEnvironment is a fixed environment, mostly for tests
type MapEnvironment map[string]string

// Getenv implements Environment
func (m MapEnvironment) Getenv(key string) string {
	return m[key]
}

// Environ implements Environment, sorted by key
func (m MapEnvironment) Environ() []string {
	vars := make([]string, 0, len(m))
	for k, v := range m {
		vars = append(vars, k+"="+v)
	}
	sort.Strings(vars)
	return vars
}

// UserHomeDir implements Environment
func (m MapEnvironment) UserHomeDir() (string, error) {
	if home := m[EnvHome]; home != "" {
		return home, nil
	}
	return "", errors.New(errors.ErrNotFound, "$HOME is not defined")
}

// HomeDirectory returns the user's home directory.
// It first tries the HOME variable, then the platform lookup. If both fail,
// it returns an error rather than using dangerous defaults.
func HomeDirectory(env Environment) (string, error) {
	if home := env.Getenv(EnvHome); home != "" {
		return home, nil
	}

	home, err := env.UserHomeDir()
	if err == nil && home != "" {
		return home, nil
	}

	return "", errors.New(errors.ErrFileAccess,
		"unable to determine home directory: neither HOME nor the platform lookup are available")
}
