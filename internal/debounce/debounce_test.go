package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBurstCollapsesToLastCallback(t *testing.T) {
	d := New(30 * time.Millisecond)

	var fired atomic.Int32
	var last atomic.Int32
	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Trigger(func() {
			fired.Add(1)
			last.Store(n)
		})
	}

	assert.Eventually(t, func() bool {
		return fired.Load() == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(5), last.Load())

	// No late second firing.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestZeroDelayFiresSynchronously(t *testing.T) {
	d := New(0)
	var fired bool
	d.Trigger(func() { fired = true })
	assert.True(t, fired)
}

func TestStopCancelsPending(t *testing.T) {
	d := New(20 * time.Millisecond)
	var fired atomic.Bool
	d.Trigger(func() { fired.Store(true) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.False(t, fired.Load())
}

func TestFlushFiresImmediately(t *testing.T) {
	d := New(time.Hour)
	var fired bool
	d.Trigger(func() { fired = true })
	d.Flush()
	assert.True(t, fired)

	// Flush with nothing pending is a no-op.
	d.Flush()
}

func TestTriggerAfterStop(t *testing.T) {
	d := New(10 * time.Millisecond)
	d.Trigger(func() {})
	d.Stop()

	var fired atomic.Bool
	d.Trigger(func() { fired.Store(true) })
	assert.Eventually(t, func() bool { return fired.Load() }, time.Second, 5*time.Millisecond)
}
