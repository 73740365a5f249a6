// Package terminal provides styled terminal output
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/sdksplat/pkg/ui/display"
	"github.com/arthur-debert/sdksplat/pkg/ui/styles"
)

// Renderer renders summaries with lipgloss styles
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderSummary renders the headline, a row per payload and the totals
func (r *Renderer) RenderSummary(s *display.Summary) error {
	var b strings.Builder

	header := "Header"
	if s.Failed > 0 {
		header = "Warning"
	}
	b.WriteString(styles.Render(header, s.Headline()))
	b.WriteString("\n")

	rows := make([]string, 0, len(s.Payloads))
	for _, p := range s.Payloads {
		status := styles.GetStyle("Status").Inherit(styles.GetStyle("Success")).Render("ok")
		detail := p.Filename
		if !p.OK {
			status = styles.GetStyle("Status").Inherit(styles.GetStyle("Error")).Render("failed")
			detail = p.Filename + " " + styles.Render("Muted", p.Error)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			status,
			styles.Render("Kind", p.Kind),
			detail,
		))
	}
	b.WriteString(styles.GetStyle("Indent").Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	b.WriteString("\n\n")

	b.WriteString(stat("files", fmt.Sprint(s.Stats.Files)))
	b.WriteString(stat("skipped", fmt.Sprint(s.Stats.Skipped)))
	b.WriteString(stat("symlinks", fmt.Sprint(s.Stats.Symlinks)))
	b.WriteString(stat("surveyed", display.FormatBytes(s.Stats.Bytes)))
	if s.Finalized {
		b.WriteString(styles.Render("Success", "includes repaired"))
	} else {
		b.WriteString(styles.Render("Muted", "includes not repaired"))
	}
	b.WriteString("\n")

	_, err := io.WriteString(r.output, b.String())
	return err
}

func stat(label, value string) string {
	return styles.Render("Label", label+" ") + styles.Render("Value", value) + "  "
}

// RenderError renders an error in the error style
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, styles.Render("Error", "Error: ")+err.Error())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
