package splat

// Config holds the run-wide placement options.
type Config struct {
	// IncludeDebugLibs keeps debug CRT libraries (msvcrtd.lib, ...).
	IncludeDebugLibs bool
	// IncludeDebugSymbols keeps .pdb files.
	IncludeDebugSymbols bool
	// DisableSymlinks skips every casing repair. The output is then not
	// usable on case-sensitive filesystems without further work.
	DisableSymlinks bool
	// PreserveMSArchNotation uses x64/arm64 instead of x86_64/aarch64 in
	// destination paths.
	PreserveMSArchNotation bool
	// Output is the directory receiving the crt and sdk roots.
	Output string
	// Copy copies files out of the staging tree instead of moving them.
	Copy bool
	// Concurrency bounds the number of mappings placed at once. Zero
	// means unbounded.
	Concurrency int
}
