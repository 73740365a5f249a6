package progress

import (
	"io"
	"sync"

	"github.com/arthur-debert/sdksplat/pkg/types"
	"github.com/pterm/pterm"
)

// Bars draws a pterm progress bar per unit of work, all multiplexed on one
// live area of the terminal.
type Bars struct {
	multi   *pterm.MultiPrinter
	started bool
	mu      sync.Mutex
}

// NewBars returns a factory of terminal bars drawn on w. Stop must be
// called once all bars are finished.
func NewBars(w io.Writer) *Bars {
	return &Bars{multi: pterm.DefaultMultiPrinter.WithWriter(w)}
}

// New creates a bar titled name.
func (b *Bars) New(name string) types.Progress {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		_, _ = b.multi.Start()
		b.started = true
	}

	return &bar{
		name:   name,
		writer: b.multi.NewWriter(),
	}
}

// Stop ends the live area.
func (b *Bars) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		_, _ = b.multi.Stop()
		b.started = false
	}
}

type bar struct {
	mu      sync.Mutex
	name    string
	writer  io.Writer
	printer *pterm.ProgressbarPrinter
	length  uint64
}

// ensure lazily starts the printer so SetLength can precede it.
func (b *bar) ensure() *pterm.ProgressbarPrinter {
	if b.printer == nil {
		p, _ := pterm.DefaultProgressbar.
			WithTotal(barTotal(b.length)).
			WithTitle(b.name).
			WithShowCount(false).
			WithRemoveWhenDone(false).
			WithWriter(b.writer).
			Start()
		b.printer = p
	}
	return b.printer
}

func (b *bar) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.printer != nil {
		b.printer.Current = 0
	}
}

func (b *bar) SetLength(n uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.length = n
	if b.printer != nil {
		b.printer.Total = barTotal(n)
	}
}

func (b *bar) Inc(n uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.ensure().Add(int(n))
}

func (b *bar) SetMessage(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.ensure().UpdateTitle(msg + " " + b.name)
}

func (b *bar) Finish(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := b.ensure()
	p.UpdateTitle(msg + " " + b.name)
	if p.Current < p.Total {
		p.Add(p.Total - p.Current)
	}
	_, _ = p.Stop()
}

// barTotal keeps the total positive; pterm divides by it.
func barTotal(n uint64) int {
	return max(int(n), 1)
}
