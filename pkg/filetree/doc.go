// Package filetree holds read-only snapshots of staged directory trees.
//
// A Tree is an arena: every directory is a node addressed by index, holding
// its file entries and an ordered list of child directories. Dir is a cheap
// value handle into the arena, so many goroutines can walk disjoint (or
// overlapping) subtrees of the same snapshot without sharing mutable state.
//
// Trees are produced either with a Builder or by scanning a directory on an
// afero filesystem with Scan.
package filetree
