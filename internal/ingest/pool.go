package ingest

import (
	"context"
	"sync"
)

type task func(ctx context.Context) error

// workerPool fans tasks out over a fixed set of goroutines. Submit all
// tasks, close the pool, then drain the result channel to wait for
// completion.
type workerPool struct {
	workers int
	tasks   chan task
	wg      sync.WaitGroup
}

func newWorkerPool(workers, buffer int) *workerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &workerPool{
		workers: workers,
		tasks:   make(chan task, buffer),
	}
}

func (p *workerPool) submit(t task) {
	if t == nil {
		return
	}
	p.tasks <- t
}

func (p *workerPool) close() {
	close(p.tasks)
}

func (p *workerPool) run(ctx context.Context) <-chan error {
	out := make(chan error, p.workers*64)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					err := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- err:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}
