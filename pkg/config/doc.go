// Package config loads sdksplat settings.
//
// Values are layered: the embedded defaults, then the user config file
// ($XDG_CONFIG_HOME/sdksplat/config.toml unless a path is given), then
// SDKSPLAT_* environment variables, then explicit overrides from the
// command line.
package config
