// Package manifest reads the list of staged payloads a run places.
//
// A manifest is TOML or YAML, picked by file extension:
//
//	[[payload]]
//	filename = "Microsoft.VC.14.38.CRT.x64.Desktop.base.vsix"
//	kind = "crt-libs"
//	variant = "desktop"
//	arch = "x64"
//
//	payloads:
//	  - filename: Win11SDK_WindowsKits_Headers
//	    kind: sdk-headers
package manifest
