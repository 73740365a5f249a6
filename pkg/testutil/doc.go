// Package testutil provides utilities for testing sdksplat components.
//
// Key components:
//   - StageFiles / StagePayload: write inline fixture trees to a temp dir
//   - SnapshotDir: scan a fixture into a filetree.Tree
//   - Assert* helpers for symlinks and placed files
//   - ListTree: a sorted, type-annotated listing of an output tree
//
// Placement tests run against the real filesystem in t.TempDir() because
// symlink semantics matter. All test data should be defined inline.
package testutil
