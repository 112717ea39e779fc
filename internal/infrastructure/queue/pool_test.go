package queue

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RunsJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPool(2, zerolog.Nop())
	p.Start(ctx)

	var n atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Do(ctx, func() { n.Add(1) }))
	}
	assert.Equal(t, int32(10), n.Load())
}

func TestPool_DoReturnsWhenContextCancelled(t *testing.T) {
	// No workers started: the job can never run.
	p := NewPool(1, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	for i := 0; i < channelBuffer; i++ {
		p.jobs <- job{ctx: ctx, fn: func() {}, done: make(chan struct{})}
	}

	err := p.Do(ctx, func() { t.Fatal("must not run") })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPool_RecoversFromPanic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPool(1, zerolog.Nop())
	p.Start(ctx)

	require.NoError(t, p.Do(ctx, func() { panic("boom") }))

	ran := false
	require.NoError(t, p.Do(ctx, func() { ran = true }))
	assert.True(t, ran)
}

func TestPool_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPool(3, zerolog.Nop())
	p.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		p.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("workers did not stop")
	}
}
