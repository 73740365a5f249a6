// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/sdksplat/pkg/ui/display"
)

// Renderer provides plain text output
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderSummary renders one line per payload followed by the totals
func (r *Renderer) RenderSummary(s *display.Summary) error {
	if _, err := fmt.Fprintln(r.output, s.Headline()); err != nil {
		return err
	}

	for _, p := range s.Payloads {
		status := "ok"
		line := p.Filename
		if !p.OK {
			status = "FAILED"
			line = fmt.Sprintf("%s: %s", p.Filename, p.Error)
		}
		if _, err := fmt.Fprintf(r.output, "  %-8s%-16s%s\n", status, p.Kind, line); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(r.output, "files: %d  skipped: %d  symlinks: %d  surveyed: %s  includes repaired: %s\n",
		s.Stats.Files, s.Stats.Skipped, s.Stats.Symlinks, display.FormatBytes(s.Stats.Bytes), yesNo(s.Finalized))
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
