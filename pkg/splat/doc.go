// Package splat places staged CRT and SDK payloads into a normalized
// output tree.
//
// A run has three phases:
//
//   - Prepare resets the crt and sdk output roots.
//   - Splat resolves a payload into one or more mappings (staged subtree to
//     destination directory) and walks them in parallel, filtering debug
//     artifacts, deduplicating SDK headers through a shared registry and
//     repairing file name casing with symlinks.
//   - Finalize runs once after every SDK header payload has been placed. It
//     scans the placed headers for include directives and links every
//     referenced spelling to the file that was actually written.
//
// # Output layout
//
//	crt/include
//	crt/lib[/spectre][/onecore]/<arch>
//	sdk/include
//	sdk/include/ucrt
//	sdk/lib/um/<arch>
//	sdk/lib/ucrt/<arch>
//
// Architecture directories use the normalized names (x86_64, aarch64)
// unless the vendor notation (x64, arm64) is preserved.
package splat
