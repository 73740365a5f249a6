// Package core runs a complete placement.
//
// A run prepares the output roots, snapshots and places every staged
// payload in parallel, then repairs SDK header casing once all headers are
// in place:
//
//	Prepare → (Scan → Splat) per payload → Finalize
//
// A payload that fails does not stop its siblings. Every failure is
// reported in the Result and in the joined error returned by Run.
package core
