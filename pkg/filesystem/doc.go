// Package filesystem provides filesystem implementations for sdksplat.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem used for real placements, and an afero-backed
// filesystem for tests that do not depend on symlink semantics.
package filesystem
