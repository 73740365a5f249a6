// Package display holds the presentation model shared by every renderer.
package display

import (
	"fmt"
	"time"

	"github.com/arthur-debert/sdksplat/pkg/core"
	"github.com/arthur-debert/sdksplat/pkg/errors"
	"github.com/arthur-debert/sdksplat/pkg/splat"
)

// PayloadSummary is the outcome of one payload.
type PayloadSummary struct {
	Filename string `json:"filename"`
	Kind     string `json:"kind"`
	Variant  string `json:"variant,omitempty"`
	Arch     string `json:"arch,omitempty"`
	OK       bool   `json:"ok"`
	Code     string `json:"code,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Summary describes a finished run.
type Summary struct {
	Output     string           `json:"output"`
	CrtRoot    string           `json:"crtRoot"`
	SdkRoot    string           `json:"sdkRoot"`
	Payloads   []PayloadSummary `json:"payloads"`
	Failed     int              `json:"failed"`
	Finalized  bool             `json:"finalized"`
	Stats      splat.Stats      `json:"stats"`
	DurationMS int64            `json:"durationMs"`
	Timestamp  time.Time        `json:"timestamp"`
}

// NewSummary converts a run result. output is the configured output
// directory.
func NewSummary(output string, result *core.Result, timestamp time.Time) *Summary {
	s := &Summary{
		Output:     output,
		CrtRoot:    result.Roots.Crt,
		SdkRoot:    result.Roots.Sdk,
		Payloads:   make([]PayloadSummary, 0, len(result.Payloads)),
		Failed:     result.Failed(),
		Finalized:  result.Finalized,
		Stats:      result.Stats,
		DurationMS: result.Duration.Milliseconds(),
		Timestamp:  timestamp,
	}

	for _, p := range result.Payloads {
		ps := PayloadSummary{
			Filename: p.Payload.Filename,
			Kind:     p.Payload.Kind.String(),
			OK:       p.Err == nil,
		}
		if p.Payload.Variant != nil {
			ps.Variant = p.Payload.Variant.String()
		}
		if p.Payload.TargetArch != nil {
			ps.Arch = p.Payload.TargetArch.String()
		}
		if p.Err != nil {
			ps.Code = string(errors.GetErrorCode(p.Err))
			ps.Error = p.Err.Error()
		}
		s.Payloads = append(s.Payloads, ps)
	}

	return s
}

// Headline is the one-line outcome of the run.
func (s *Summary) Headline() string {
	if s.Failed == 0 {
		return fmt.Sprintf("Splatted %d payloads into %s", len(s.Payloads), s.Output)
	}
	return fmt.Sprintf("Splatted %d of %d payloads into %s, %d failed",
		len(s.Payloads)-s.Failed, len(s.Payloads), s.Output, s.Failed)
}

// FormatBytes renders n with a binary unit.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
