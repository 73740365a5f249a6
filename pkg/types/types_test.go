// pkg/types/types_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test architecture, variant and kind parsing and sets

package types_test

import (
	"testing"

	"github.com/arthur-debert/sdksplat/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchNotation(t *testing.T) {
	tests := []struct {
		arch      types.Arch
		canonical string
		ms        string
	}{
		{types.ArchX86, "x86", "x86"},
		{types.ArchX86_64, "x86_64", "x64"},
		{types.ArchAarch, "aarch", "arm"},
		{types.ArchAarch64, "aarch64", "arm64"},
	}

	for _, tt := range tests {
		t.Run(tt.canonical, func(t *testing.T) {
			assert.Equal(t, tt.canonical, tt.arch.String())
			assert.Equal(t, tt.ms, tt.arch.MSString())
			assert.Equal(t, tt.canonical, tt.arch.PathToken(false))
			assert.Equal(t, tt.ms, tt.arch.PathToken(true))

			for _, name := range []string{tt.canonical, tt.ms} {
				parsed, err := types.ParseArch(name)
				require.NoError(t, err)
				assert.Equal(t, tt.arch, parsed)
			}
		})
	}
}

func TestParseArch(t *testing.T) {
	parsed, err := types.ParseArch(" AMD64 ")
	require.NoError(t, err)
	assert.Equal(t, types.ArchX86_64, parsed)

	_, err = types.ParseArch("mips")
	assert.Error(t, err)
}

func TestArchSet(t *testing.T) {
	set, err := types.ParseArchSet([]string{"arm64", "x86", "", "x86"})
	require.NoError(t, err)

	assert.True(t, set.Has(types.ArchX86))
	assert.True(t, set.Has(types.ArchAarch64))
	assert.False(t, set.Has(types.ArchX86_64))
	assert.Equal(t, []types.Arch{types.ArchX86, types.ArchAarch64}, set.Arches())
	assert.Equal(t, types.NewArchSet(types.ArchAarch64, types.ArchX86), set)

	_, err = types.ParseArchSet([]string{"x86", "sparc"})
	assert.Error(t, err)

	assert.Empty(t, types.ArchSet(0).Arches())
}

func TestVariantSet(t *testing.T) {
	set, err := types.ParseVariantSet([]string{"Desktop", "spectre"})
	require.NoError(t, err)

	assert.True(t, set.Has(types.VariantDesktop))
	assert.True(t, set.Has(types.VariantSpectre))
	assert.False(t, set.Has(types.VariantStore))
	assert.Equal(t, []types.Variant{types.VariantDesktop, types.VariantSpectre}, set.Variants())

	_, err = types.ParseVariantSet([]string{"mobile"})
	assert.Error(t, err)
}

func TestVariantString(t *testing.T) {
	for _, v := range types.AllVariants {
		parsed, err := types.ParseVariant(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}
}

func TestParseArtifactKind(t *testing.T) {
	tests := []struct {
		input string
		want  types.ArtifactKind
	}{
		{"crt-headers", types.KindCrtHeaders},
		{"crt_libs", types.KindCrtLibs},
		{"SdkHeaders", types.KindSdkHeaders},
		{"sdk libs", types.KindSdkLibs},
		{"sdk-store-libs", types.KindSdkStoreLibs},
		{"UCRT", types.KindUcrt},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := types.ParseArtifactKind(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := types.ParseArtifactKind("dia-sdk")
	assert.Error(t, err)
}

func TestArtifactKindText(t *testing.T) {
	text, err := types.KindSdkStoreLibs.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "sdk-store-libs", string(text))

	var kind types.ArtifactKind
	require.NoError(t, kind.UnmarshalText([]byte("crt_headers")))
	assert.Equal(t, types.KindCrtHeaders, kind)

	assert.Error(t, kind.UnmarshalText([]byte("nope")))
}

func TestPayloadPointers(t *testing.T) {
	p := types.PayloadDescriptor{
		Filename:   "Microsoft.VC.14.38.CRT.x64.Desktop.base.vsix",
		Kind:       types.KindCrtLibs,
		Variant:    types.VariantPtr(types.VariantDesktop),
		TargetArch: types.ArchPtr(types.ArchX86_64),
	}

	assert.Equal(t, types.VariantDesktop, *p.Variant)
	assert.Equal(t, types.ArchX86_64, *p.TargetArch)
}
