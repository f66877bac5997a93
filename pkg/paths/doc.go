// Package paths provides centralized path handling for heimweh.
//
// It answers three questions:
//
//   - Where is the home directory, and where do castles live? (Paths)
//   - Where does an entry of a castle's home tree really live on disk? (Resolve)
//   - Is a path inside a castle? (IsInside)
//
// # Environment
//
// The home directory default comes from an Environment, so the logic stays
// deterministic in tests. OSEnvironment is used at the process boundary and
// MapEnvironment everywhere else.
//
// # Defaults
//
//   - Home directory: $HOME (falling back to os.UserHomeDir)
//   - Castles root: <home>/.homesick
//
// # Resolution
//
// Resolve canonicalizes against the real filesystem: symlinks along the way
// are followed and ".." is applied to the already resolved prefix, exactly
// like the kernel does for a relative symlink. A path that does not exist
// cannot be resolved.
package paths
