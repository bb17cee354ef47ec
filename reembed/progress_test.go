package reembed

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker(t *testing.T) {
	t.Run("reports at interval", func(t *testing.T) {
		var out bytes.Buffer
		p := NewProgressTracker(&out, 10, 5)
		p.Start()

		p.Update(3)
		assert.Empty(t, out.String())

		p.Update(5)
		assert.Contains(t, out.String(), "5/10")
	})

	t.Run("increment accumulates", func(t *testing.T) {
		var out bytes.Buffer
		p := NewProgressTracker(&out, 10, 2)
		p.Start()

		p.Increment(1)
		p.Increment(1)
		assert.Contains(t, out.String(), "2/10")
	})

	t.Run("finish reports full progress", func(t *testing.T) {
		var out bytes.Buffer
		p := NewProgressTracker(&out, 10, 100)
		p.Start()
		p.Update(4)
		p.Finish()
		assert.Contains(t, out.String(), "10/10")
		assert.Contains(t, out.String(), "100.0%")
	})

	t.Run("progress capped at total", func(t *testing.T) {
		var out bytes.Buffer
		p := NewProgressTracker(&out, 10, 1)
		p.Start()
		p.Update(15)
		assert.Contains(t, out.String(), "10/10")
	})

	t.Run("updates before start ignored", func(t *testing.T) {
		var out bytes.Buffer
		p := NewProgressTracker(&out, 10, 1)
		p.Update(5)
		p.Increment(5)
		assert.Empty(t, out.String())
		assert.Zero(t, p.Elapsed())
	})
}
