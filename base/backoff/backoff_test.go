package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExponential(t *testing.T) {
	b := NewExponential(time.Millisecond, 4*time.Millisecond)
	ctx := context.Background()

	expected := []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond, 4 * time.Millisecond}
	for i, want := range expected {
		assert.Equal(t, want, b.NextDuration, "attempt %d", i)
		assert.NoError(t, b.Backoff(ctx))
	}
	assert.Equal(t, 4, b.Attempts())
	assert.Equal(t, 4*time.Millisecond, b.LastDuration)

	b.Reset()
	assert.Equal(t, 0, b.Attempts())
	assert.Equal(t, time.Millisecond, b.NextDuration)
}

func TestConstant(t *testing.T) {
	b := NewConstant(time.Millisecond)
	assert.NoError(t, b.Backoff(context.Background()))
	assert.Equal(t, time.Millisecond, b.NextDuration)
}

func TestJitterStaysWithinRatio(t *testing.T) {
	for i := 0; i < 20; i++ {
		b := NewExponential(10*time.Millisecond, 0).WithJitter(0.5)
		assert.GreaterOrEqual(t, b.NextDuration, 10*time.Millisecond)
		assert.LessOrEqual(t, b.NextDuration, 15*time.Millisecond)
	}
}

func TestCancelled(t *testing.T) {
	b := NewExponential(time.Hour, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, context.Canceled, b.Backoff(ctx))
	assert.Equal(t, 0, b.Attempts())
}
