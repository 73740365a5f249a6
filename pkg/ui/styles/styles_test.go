package styles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sdksplat/pkg/ui/styles"
)

func TestEmbeddedStyles(t *testing.T) {
	for _, name := range []string{"Header", "Success", "Error", "Warning", "Muted", "Kind", "Status", "Label", "Value", "Indent"} {
		assert.True(t, styles.Has(name), "missing style %s", name)
	}
	assert.False(t, styles.Has("Nope"))
}

func TestRenderUnknownStyleKeepsText(t *testing.T) {
	assert.Equal(t, "plain", styles.Render("Nope", "plain"))
}

func TestStatusStyleWidth(t *testing.T) {
	assert.Equal(t, 8, styles.GetStyle("Status").GetWidth())
}

func TestLoadStylesFromDataRejects(t *testing.T) {
	assert.Error(t, styles.LoadStylesFromData([]byte("colors: [")))
	assert.Error(t, styles.LoadStylesFromData([]byte("styles:\n  Bad:\n    foreground: purple\n")))

	// The registry is untouched by failed loads
	require.True(t, styles.Has("Header"))
}
