package cli

// Command descriptions
const (
	MsgRootShort = "Place unpacked MSVC CRT and Windows SDK payloads into a cross-compilation tree"
	MsgRootLong  = `sdksplat takes payloads already unpacked into a staging directory and
splats them into a layout usable for cross-compiling to Windows: a crt/
tree and an sdk/ tree with case-insensitive include and library lookups
repaired through symlinks.`

	MsgSplatShort = "Place the payloads listed in a manifest"
	MsgSplatLong  = `Splat reads the payload manifest, places every payload from the staging
directory into the output directory and repairs SDK header includes.

Settings come from, in increasing priority: built-in defaults, the config
file, SDKSPLAT_* environment variables and command line flags.`
	MsgSplatExample = `  # Place the payloads listed in payloads.toml
  sdksplat splat payloads.toml

  # Both architectures, copying instead of moving
  sdksplat splat -m payloads.yaml --arch x86_64,aarch64 --copy

  # Machine readable summary
  sdksplat splat payloads.toml --format json`

	MsgVersionShort = "Print version information"
	MsgVersionLong  = "Print detailed version information including commit hash and build date"

	MsgConfigShort = "Print a commented default configuration file"
	MsgConfigLong  = `Print the built-in defaults as a commented TOML file, suitable for
saving to the user config path.`

	MsgCompletionShort = "Generate shell completion script"
)

// Flag usage
const (
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig       = "Config file (default $XDG_CONFIG_HOME/sdksplat/config.toml)"
	MsgFlagManifest     = "Payload manifest (.toml, .yaml or .yml)"
	MsgFlagStaging      = "Directory holding the unpacked payloads"
	MsgFlagOutput       = "Directory receiving the crt/ and sdk/ trees"
	MsgFlagArch         = "Target architectures (x86, x86_64, aarch, aarch64)"
	MsgFlagVariant      = "CRT variants (desktop, onecore, store, spectre)"
	MsgFlagCopy         = "Copy files instead of moving them out of staging"
	MsgFlagDebugLibs    = "Include debug CRT libraries"
	MsgFlagDebugSymbols = "Include .pdb files"
	MsgFlagNoSymlinks   = "Do not create any symlinks"
	MsgFlagMSArch       = "Name library directories x86/x64/arm/arm64"
	MsgFlagConcurrency  = "Payloads placed at once (0 uses every CPU)"
	MsgFlagFormat       = "Output format (auto, term, text, json)"
	MsgFlagConfigPath   = "Print the config file path instead of the defaults"
)

// Output
const (
	MsgVersionFormat = "sdksplat version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"
)
