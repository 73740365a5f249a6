package manifest_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sdksplat/pkg/errors"
	"github.com/arthur-debert/sdksplat/pkg/filesystem"
	"github.com/arthur-debert/sdksplat/pkg/manifest"
	"github.com/arthur-debert/sdksplat/pkg/types"
)

const tomlManifest = `
[[payload]]
filename = "crt.headers"
kind = "crt-headers"

[[payload]]
filename = "crt.x64.desktop"
kind = "crt-libs"
variant = "desktop"
arch = "x64"

[[payload]]
filename = "sdk.libs.arm64"
kind = "sdk_libs"
arch = "aarch64"
`

const yamlManifest = `
payloads:
  - filename: crt.headers
    kind: crt-headers
  - filename: crt.x64.desktop
    kind: crt-libs
    variant: desktop
    arch: x64
  - filename: sdk.libs.arm64
    kind: sdk-libs
    arch: arm64
`

func expectedPayloads() []types.PayloadDescriptor {
	return []types.PayloadDescriptor{
		{Filename: "crt.headers", Kind: types.KindCrtHeaders},
		{
			Filename:   "crt.x64.desktop",
			Kind:       types.KindCrtLibs,
			Variant:    types.VariantPtr(types.VariantDesktop),
			TargetArch: types.ArchPtr(types.ArchX86_64),
		},
		{
			Filename:   "sdk.libs.arm64",
			Kind:       types.KindSdkLibs,
			TargetArch: types.ArchPtr(types.ArchAarch64),
		},
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		path    string
		content string
	}{
		{"/manifests/payloads.toml", tomlManifest},
		{"/manifests/payloads.yaml", yamlManifest},
		{"/manifests/payloads.YML", yamlManifest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			mem := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(mem, tt.path, []byte(tt.content), 0644))

			payloads, err := manifest.Load(filesystem.NewAferoFS(mem), tt.path)
			require.NoError(t, err)
			assert.Equal(t, expectedPayloads(), payloads)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	mem := afero.NewMemMapFs()
	fs := filesystem.NewAferoFS(mem)

	t.Run("missing_file", func(t *testing.T) {
		_, err := manifest.Load(fs, "/nope.toml")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrManifestLoad))
		assert.Equal(t, "/nope.toml", errors.GetErrorDetails(err)["path"])
	})

	t.Run("unknown_extension", func(t *testing.T) {
		_, err := manifest.Load(fs, "/payloads.json")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("invalid_entry_names_path", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(mem, "/bad.toml", []byte("[[payload]]\nfilename = \"x\"\nkind = \"dia\"\n"), 0644))

		_, err := manifest.Load(fs, "/bad.toml")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrManifestInvalid))
		details := errors.GetErrorDetails(err)
		assert.Equal(t, "/bad.toml", details["path"])
		assert.Equal(t, 0, details["entry"])
	})
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name    string
		format  manifest.Format
		content string
		code    errors.ErrorCode
	}{
		{"empty toml", manifest.FormatTOML, "", errors.ErrManifestInvalid},
		{"empty yaml", manifest.FormatYAML, "", errors.ErrManifestInvalid},
		{"syntax", manifest.FormatTOML, "[[payload]\n", errors.ErrManifestLoad},
		{"unknown toml key", manifest.FormatTOML, "[[payload]]\nfilename = \"a\"\nkind = \"ucrt\"\nsize = 3\n", errors.ErrManifestLoad},
		{"unknown yaml key", manifest.FormatYAML, "payloads:\n  - filename: a\n    kind: ucrt\n    size: 3\n", errors.ErrManifestLoad},
		{"no filename", manifest.FormatYAML, "payloads:\n  - kind: ucrt\n", errors.ErrManifestInvalid},
		{"nested filename", manifest.FormatYAML, "payloads:\n  - filename: a/b\n    kind: ucrt\n", errors.ErrManifestInvalid},
		{"parent filename", manifest.FormatYAML, "payloads:\n  - filename: ..\n    kind: ucrt\n", errors.ErrManifestInvalid},
		{"bad variant", manifest.FormatYAML, "payloads:\n  - filename: a\n    kind: crt-libs\n    variant: xbox\n", errors.ErrManifestInvalid},
		{"spectre variant", manifest.FormatYAML, "payloads:\n  - filename: a\n    kind: crt-libs\n    variant: spectre\n", errors.ErrManifestInvalid},
		{"bad arch", manifest.FormatYAML, "payloads:\n  - filename: a\n    kind: sdk-libs\n    arch: mips\n", errors.ErrManifestInvalid},
		{"duplicate", manifest.FormatYAML, "payloads:\n  - filename: a\n    kind: ucrt\n  - filename: a\n    kind: ucrt\n", errors.ErrManifestInvalid},
		{"unknown format", manifest.Format("ini"), "", errors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manifest.Parse([]byte(tt.content), tt.format)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestParseLeavesRequiredFieldsToResolver(t *testing.T) {
	// CRT libs without a variant are accepted here; placement reports the
	// missing field for that payload only.
	payloads, err := manifest.Parse([]byte("payloads:\n  - filename: a\n    kind: crt-libs\n"), manifest.FormatYAML)
	require.NoError(t, err)
	require.Len(t, payloads, 1)
	assert.Nil(t, payloads[0].Variant)
	assert.Nil(t, payloads[0].TargetArch)
}
