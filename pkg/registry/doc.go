// Package registry provides the deduplication registry shared by all
// concurrent SDK header placements of a run.
//
// Files are identified by a 64-bit xxhash of their ASCII case-folded name.
// Claim is an atomic check-and-insert: of all callers claiming the same
// name, exactly one holds the pending Ticket at a time. The winner confirms
// it once the file is on disk or releases it when writing failed, letting
// a later copy of the same name win instead. Once every placement has
// finished, Freeze hands the confirmed entries to the finalize pass as an
// immutable Snapshot.
//
// Hash collisions between different names are resolved by comparing the
// stored case-folded name, so a collision never suppresses a write.
package registry
