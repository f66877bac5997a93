// Package world ties the castles root and the home directory together.
//
// A World enumerates the castles below the castles root and opens them on
// demand. Scans never stop at a broken castle: every castle that cannot be
// opened is reported as a types.CastleFailure next to the castles that
// could, so one bad repository does not hide the others.
package world
