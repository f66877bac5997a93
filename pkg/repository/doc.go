// Package repository is the git access layer for castles.
//
// Castles are read through the small Accessor interface, which speaks in
// content ids (hex object hashes) only: the id of the HEAD tree, the entries
// of a tree, and the raw bytes of a blob. Repository implements it on top of
// go-git, so no git binary is required. Cloning goes through the Cloner
// interface so bootstrap logic can be exercised without a network.
package repository
