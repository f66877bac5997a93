// Package types defines the core types and interfaces used throughout heimweh.
// This includes the Link manifest entry produced by walking a castle, the
// result structures returned by commands, and the FS interface consumed by
// the materializer.
package types
