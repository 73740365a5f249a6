package manifest

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/sdksplat/pkg/errors"
	"github.com/arthur-debert/sdksplat/pkg/logging"
	"github.com/arthur-debert/sdksplat/pkg/types"
)

// Format is a manifest encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// File is the manifest document.
type File struct {
	Payloads []Entry `toml:"payload" yaml:"payloads"`
}

// Entry is one payload as written in a manifest.
type Entry struct {
	Filename string `toml:"filename" yaml:"filename"`
	Kind     string `toml:"kind" yaml:"kind"`
	Variant  string `toml:"variant,omitempty" yaml:"variant,omitempty"`
	Arch     string `toml:"arch,omitempty" yaml:"arch,omitempty"`
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unsupported manifest extension for %s", path).
			WithDetail("path", path)
	}
}

// Load reads and validates the manifest at path.
func Load(fs types.FS, path string) ([]types.PayloadDescriptor, error) {
	logger := logging.GetLogger("manifest")

	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "cannot read manifest %s", path).
			WithDetail("path", path)
	}

	payloads, err := Parse(data, format)
	if err != nil {
		if se, ok := err.(*errors.SplatError); ok {
			se.WithDetail("path", path)
		}
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Int("payloads", len(payloads)).
		Msg("Loaded manifest")
	return payloads, nil
}

// Parse decodes and validates a manifest. Unknown keys are rejected.
func Parse(data []byte, format Format) ([]types.PayloadDescriptor, error) {
	var f File

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestLoad, "failed to parse TOML manifest")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, errors.ErrManifestLoad, "failed to parse YAML manifest")
		}
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown manifest format %q", format)
	}

	return f.Descriptors()
}

// Descriptors validates every entry.
func (f File) Descriptors() ([]types.PayloadDescriptor, error) {
	if len(f.Payloads) == 0 {
		return nil, errors.New(errors.ErrManifestInvalid, "manifest lists no payloads")
	}

	seen := make(map[string]int, len(f.Payloads))
	out := make([]types.PayloadDescriptor, 0, len(f.Payloads))

	for i, e := range f.Payloads {
		d, err := e.Descriptor()
		if err != nil {
			if se, ok := err.(*errors.SplatError); ok {
				se.WithDetail("entry", i)
			}
			return nil, err
		}
		if prev, dup := seen[d.Filename]; dup {
			return nil, errors.Newf(errors.ErrManifestInvalid,
				"payload %s listed twice (entries %d and %d)", d.Filename, prev, i).
				WithDetail("entry", i)
		}
		seen[d.Filename] = i
		out = append(out, d)
	}

	return out, nil
}

// Descriptor converts a single entry.
func (e Entry) Descriptor() (types.PayloadDescriptor, error) {
	name := strings.TrimSpace(e.Filename)
	if name == "" {
		return types.PayloadDescriptor{}, errors.New(errors.ErrManifestInvalid, "payload has no filename")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return types.PayloadDescriptor{}, errors.Newf(errors.ErrManifestInvalid,
			"payload filename %q must be a single path component", name)
	}

	kind, err := types.ParseArtifactKind(e.Kind)
	if err != nil {
		return types.PayloadDescriptor{}, errors.Wrapf(err, errors.ErrManifestInvalid, "payload %s", name)
	}

	d := types.PayloadDescriptor{Filename: name, Kind: kind}

	if strings.TrimSpace(e.Variant) != "" {
		v, err := types.ParseVariant(e.Variant)
		if err != nil {
			return types.PayloadDescriptor{}, errors.Wrapf(err, errors.ErrManifestInvalid, "payload %s", name)
		}
		if v == types.VariantSpectre {
			return types.PayloadDescriptor{}, errors.Newf(errors.ErrManifestInvalid,
				"payload %s: spectre is a modifier, not a payload variant", name)
		}
		d.Variant = types.VariantPtr(v)
	}

	if strings.TrimSpace(e.Arch) != "" {
		a, err := types.ParseArch(e.Arch)
		if err != nil {
			return types.PayloadDescriptor{}, errors.Wrapf(err, errors.ErrManifestInvalid, "payload %s", name)
		}
		d.TargetArch = types.ArchPtr(a)
	}

	return d, nil
}
