// Package types holds the shared vocabulary of sdksplat: architectures,
// variants, artifact kinds, payload descriptors and the small interfaces
// (FS, Progress) the placement engine depends on.
package types
