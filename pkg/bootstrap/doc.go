// Package bootstrap clones castles from their remotes.
//
// Bootstrapping clones one castle, then reads the home.toml manifest at the
// root of the clone and clones every castle it declares, following the
// declared castles' own manifests in turn. A castle directory that already
// exists is never touched: the castle named on the command line fails with
// ALREADY_EXISTS, declared castles are skipped. Skipping also ends
// declaration cycles.
package bootstrap
