package progress

import (
	"bytes"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	c := NewCounter()

	c.SetLength(100)
	c.SetMessage("📦 splatting")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc(10)
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(100), c.Length())
	assert.Equal(t, uint64(100), c.Position())
	assert.Equal(t, "📦 splatting", c.Message())
	assert.False(t, c.Finished())

	c.Finish("📦 splatted")
	assert.True(t, c.Finished())
	assert.Equal(t, "📦 splatted", c.Message())

	c.Reset()
	assert.Equal(t, uint64(0), c.Position())
	assert.Equal(t, uint64(100), c.Length(), "reset keeps the length")
	assert.False(t, c.Finished())
}

func TestNop(t *testing.T) {
	p := NopFactory.New("anything")
	assert.NotPanics(t, func() {
		p.Reset()
		p.SetLength(10)
		p.Inc(5)
		p.SetMessage("msg")
		p.Finish("done")
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prevLevel) })
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	l := NewLogger("Win11SDK_10.0.22621_sdk_headers")
	l.logger = zerolog.New(&buf)

	l.SetLength(42)
	l.SetMessage("splatting")
	l.Inc(42)
	l.Finish("splatted")

	out := buf.String()
	assert.Contains(t, out, `"item":"Win11SDK_10.0.22621_sdk_headers"`)
	assert.Contains(t, out, `"message":"splatting"`)
	assert.Contains(t, out, `"processed":42`)
	assert.True(t, l.Finished())
}
