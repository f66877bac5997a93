// Package castle opens castles and turns their home tree into a manifest.
//
// A castle is a git repository whose HEAD commit contains a "home" tree
// mirroring the layout of a home directory. Links walks that tree and
// returns one types.Link per directory, file and symlink, parents before
// their children. Nothing is cached: every call reads the repository again.
//
// Symlink entries are only descriptions until they are checked. CheckLink
// resolves a symlink against the castle's work tree and refuses any target
// outside the castle, so a castle can never plant links pointing elsewhere.
package castle
