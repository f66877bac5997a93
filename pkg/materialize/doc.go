// Package materialize links castles into the home directory.
//
// Planning runs in two phases per castle. Phase one covers directories,
// which are created, and plain files, which are symlinked to their
// location in the castle's work tree. Phase two covers symlinks stored in
// the castle: each is resolved against the work tree and only linked when
// it stays inside the castle.
//
// Castles claim home paths in the order they are planned. The first claim
// wins, later claims are reported as LINK_CONFLICT; directories can be
// shared. Nothing already present in the home directory is ever replaced.
//
// An Executor applies a plan through synthfs, one operation per pipeline.
package materialize
