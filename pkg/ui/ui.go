// Package ui renders run summaries as styled terminal output, plain text
// or JSON.
package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/sdksplat/pkg/ui/display"
	"github.com/arthur-debert/sdksplat/pkg/ui/json"
	"github.com/arthur-debert/sdksplat/pkg/ui/terminal"
	"github.com/arthur-debert/sdksplat/pkg/ui/text"
)

// Renderer is implemented by every output format.
type Renderer interface {
	RenderSummary(summary *display.Summary) error
	RenderError(err error) error
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer writing to output. FormatAuto is resolved
// against output first.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format.Resolve(output) {
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
