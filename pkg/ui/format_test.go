package ui_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sdksplat/pkg/ui"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   ui.Format
		expected string
	}{
		{ui.FormatAuto, "auto"},
		{ui.FormatTerminal, "term"},
		{ui.FormatText, "text"},
		{ui.FormatJSON, "json"},
		{ui.Format(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{"auto", "auto", ui.FormatAuto, false},
		{"empty string is auto", "", ui.FormatAuto, false},
		{"term", "term", ui.FormatTerminal, false},
		{"terminal", "terminal", ui.FormatTerminal, false},
		{"text", "text", ui.FormatText, false},
		{"plain", "plain", ui.FormatText, false},
		{"mixed case json", "Json", ui.FormatJSON, false},
		{"invalid", "yaml", ui.FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "unknown format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	t.Run("buffer is not a terminal", func(t *testing.T) {
		assert.False(t, ui.IsTerminal(&bytes.Buffer{}))
		assert.Equal(t, ui.FormatText, ui.DetectFormat(&bytes.Buffer{}))
	})

	t.Run("regular file is not a terminal", func(t *testing.T) {
		f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		assert.False(t, ui.IsTerminal(f))
		assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
	})

	t.Run("NO_COLOR forces text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, ui.FormatText, ui.DetectFormat(os.Stdout))
	})

	t.Run("explicit formats are kept", func(t *testing.T) {
		assert.Equal(t, ui.FormatJSON, ui.FormatJSON.Resolve(&bytes.Buffer{}))
		assert.Equal(t, ui.FormatText, ui.FormatAuto.Resolve(&bytes.Buffer{}))
	})
}
