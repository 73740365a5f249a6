package config

import (
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/arthur-debert/sdksplat/pkg/errors"
	"github.com/arthur-debert/sdksplat/pkg/splat"
	"github.com/arthur-debert/sdksplat/pkg/types"
)

// Config is the fully layered sdksplat configuration.
type Config struct {
	Output   string `koanf:"output"`
	Staging  string `koanf:"staging"`
	Manifest string `koanf:"manifest"`

	Copy                   bool `koanf:"copy"`
	IncludeDebugLibs       bool `koanf:"include_debug_libs"`
	IncludeDebugSymbols    bool `koanf:"include_debug_symbols"`
	DisableSymlinks        bool `koanf:"disable_symlinks"`
	PreserveMSArchNotation bool `koanf:"preserve_ms_arch_notation"`

	Arch        []string `koanf:"arch"`
	Variant     []string `koanf:"variant"`
	Concurrency int      `koanf:"concurrency"`
}

// SplatConfig returns the placement options.
func (c *Config) SplatConfig() splat.Config {
	return splat.Config{
		IncludeDebugLibs:       c.IncludeDebugLibs,
		IncludeDebugSymbols:    c.IncludeDebugSymbols,
		DisableSymlinks:        c.DisableSymlinks,
		PreserveMSArchNotation: c.PreserveMSArchNotation,
		Output:                 c.Output,
		Copy:                   c.Copy,
		Concurrency:            c.Concurrency,
	}
}

// Arches parses the configured architecture names.
func (c *Config) Arches() (types.ArchSet, error) {
	set, err := types.ParseArchSet(c.Arch)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrInvalidInput, "invalid arch").
			WithDetail("field", "arch")
	}
	if set == 0 {
		return 0, errors.New(errors.ErrMissingField, "no architecture selected").
			WithDetail("field", "arch")
	}
	return set, nil
}

// Variants parses the configured variant names. Spectre alone selects
// nothing to place, so at least one other variant is required.
func (c *Config) Variants() (types.VariantSet, error) {
	set, err := types.ParseVariantSet(c.Variant)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrInvalidInput, "invalid variant").
			WithDetail("field", "variant")
	}
	if set&^types.NewVariantSet(types.VariantSpectre) == 0 {
		return 0, errors.New(errors.ErrMissingField, "no variant selected").
			WithDetail("field", "variant")
	}
	return set, nil
}

// Validate checks everything a run needs.
func (c *Config) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"output", c.Output},
		{"staging", c.Staging},
		{"manifest", c.Manifest},
	} {
		if strings.TrimSpace(f.value) == "" {
			return errors.Newf(errors.ErrMissingField, "%s must be set", f.name).
				WithDetail("field", f.name)
		}
	}

	if c.Concurrency < 0 {
		return errors.Newf(errors.ErrInvalidInput, "concurrency must not be negative, got %d", c.Concurrency).
			WithDetail("field", "concurrency")
	}

	if _, err := c.Arches(); err != nil {
		return err
	}
	_, err := c.Variants()
	return err
}

// trimSliceHookFunc trims list items and drops empty ones, so that
// SDKSPLAT_ARCH="x86, aarch64" decodes as expected.
func trimSliceHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.Slice || t.Elem().Kind() != reflect.String {
			return data, nil
		}
		items, ok := data.([]string)
		if !ok {
			return data, nil
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out, nil
	}
}
