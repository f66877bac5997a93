// Package testutil provides utilities for testing heimweh components.
//
// Key components:
//   - TreeSpec: declarative description of a repository tree
//   - NewMemoryRepository: bare in-memory git repository built from a TreeSpec
//   - NewCastle: on-disk castle (git repository plus checked out work tree)
//   - TestEnvironment: isolated home directory and castles root
//
// Usage guidelines:
//   - Walker tests should use in-memory repositories
//   - Resolver and materializer tests need NewCastle, since symlink
//     resolution requires the work tree to exist on disk
//   - All test data should be defined inline, not in external files
package testutil
