package queue

import (
	"context"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
)

const channelBuffer = 256

// Pool runs CPU-bound work (password hashing) on a fixed set of workers so a
// burst of logins queues up instead of competing for every core at once.
type Pool struct {
	jobs    chan job
	workers int
	log     zerolog.Logger
	wg      sync.WaitGroup
}

type job struct {
	ctx  context.Context
	fn   func()
	done chan struct{}
}

// NewPool creates a Pool with numWorkers workers.
// If numWorkers <= 0, runtime.NumCPU() is used.
func NewPool(numWorkers int, log zerolog.Logger) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Pool{
		jobs:    make(chan job, channelBuffer),
		workers: numWorkers,
		log:     log,
	}
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.runWorker(ctx, i)
	}
	p.log.Debug().Int("workers", p.workers).Msg("hash pool started")
}

// Wait blocks until every worker has returned.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Do queues fn and blocks until it has run or ctx is done. When ctx ends
// first, Do returns ctx.Err() and any result fn produces must be discarded.
func (p *Pool) Do(ctx context.Context, fn func()) error {
	j := job{ctx: ctx, fn: fn, done: make(chan struct{})}

	select {
	case p.jobs <- j:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) runWorker(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.jobs:
			if j.ctx.Err() != nil {
				// Caller already gave up.
				continue
			}
			p.run(id, j)
		}
	}
}

func (p *Pool) run(id int, j job) {
	defer close(j.done)
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Int("worker_id", id).Msg("hash job panicked")
		}
	}()
	j.fn()
}
