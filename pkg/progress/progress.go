package progress

import (
	"sync"
	"sync/atomic"

	"github.com/arthur-debert/sdksplat/pkg/logging"
	"github.com/arthur-debert/sdksplat/pkg/types"
	"github.com/rs/zerolog"
)

// Factory creates one progress sink per unit of work.
type Factory interface {
	New(name string) types.Progress
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(name string) types.Progress

// New calls f.
func (f FactoryFunc) New(name string) types.Progress { return f(name) }

type nop struct{}

func (nop) Reset()            {}
func (nop) SetLength(uint64)  {}
func (nop) Inc(uint64)        {}
func (nop) SetMessage(string) {}
func (nop) Finish(string)     {}

// Nop discards all progress.
func Nop() types.Progress { return nop{} }

// NopFactory hands out Nop sinks.
var NopFactory Factory = FactoryFunc(func(string) types.Progress { return Nop() })

// Counter records progress in memory.
type Counter struct {
	length   atomic.Uint64
	position atomic.Uint64

	mu       sync.Mutex
	message  string
	finished bool
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter { return &Counter{} }

func (c *Counter) Reset() {
	c.position.Store(0)
	c.mu.Lock()
	c.finished = false
	c.mu.Unlock()
}

func (c *Counter) SetLength(n uint64) { c.length.Store(n) }

func (c *Counter) Inc(n uint64) { c.position.Add(n) }

func (c *Counter) SetMessage(msg string) {
	c.mu.Lock()
	c.message = msg
	c.mu.Unlock()
}

func (c *Counter) Finish(msg string) {
	c.mu.Lock()
	c.message = msg
	c.finished = true
	c.mu.Unlock()
}

// Length is the last value passed to SetLength.
func (c *Counter) Length() uint64 { return c.length.Load() }

// Position is the sum of Inc calls since the last Reset.
func (c *Counter) Position() uint64 { return c.position.Load() }

// Message is the last message set.
func (c *Counter) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// Finished reports whether Finish was called since the last Reset.
func (c *Counter) Finished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finished
}

// Logger reports progress milestones through zerolog instead of drawing.
type Logger struct {
	Counter
	name   string
	logger zerolog.Logger
}

// NewLogger returns a Logger for the named unit of work.
func NewLogger(name string) *Logger {
	return &Logger{name: name, logger: logging.GetLogger("progress")}
}

// LoggerFactory hands out Logger sinks.
var LoggerFactory Factory = FactoryFunc(func(name string) types.Progress { return NewLogger(name) })

func (l *Logger) SetMessage(msg string) {
	l.Counter.SetMessage(msg)
	l.logger.Info().
		Str("item", l.name).
		Uint64("bytes", l.Length()).
		Msg(msg)
}

func (l *Logger) Finish(msg string) {
	l.Counter.Finish(msg)
	l.logger.Info().
		Str("item", l.name).
		Uint64("processed", l.Position()).
		Uint64("bytes", l.Length()).
		Msg(msg)
}
