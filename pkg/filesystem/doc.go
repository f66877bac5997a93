// Package filesystem provides filesystem implementations for heimweh.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem and an afero backed one. The materializer only
// touches the home directory through types.FS, which lets plans be
// checked against an in-memory filesystem.
//
// Plans are executed through synthfs; NewSynthOS and NewSynthMemory return
// the synthfs filesystems for that.
package filesystem
