package worker

import (
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
)

// Pool runs submitted jobs on a fixed set of goroutines. Panicking jobs are reported to sentry and
// do not take their worker down with them.
type Pool struct {
	jobs chan func()
	wg   sync.WaitGroup
	once sync.Once
}

// NewPool starts a pool with n workers. A non-positive n starts one worker per CPU.
func NewPool(n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	p := &Pool{jobs: make(chan func(), n)}
	for i := 0; i < n; i++ {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	for f := range p.jobs {
		p.run(f)
	}
}

func (p *Pool) run(f func()) {
	defer p.wg.Done()
	defer sentry.Recover()
	f()
}

// Submit queues a job, blocking while every worker is busy and the queue is full.
func (p *Pool) Submit(f func()) {
	p.wg.Add(1)
	p.jobs <- f
}

// Wait blocks until every submitted job has finished.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Close stops the workers once the queued jobs are done. Submitting after Close panics.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.jobs)
	})
}
