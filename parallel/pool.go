package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Job is a unit of work. A non-nil error counts the job as failed; logging
// it is left to the job.
type Job func() error

// Pool runs jobs on a fixed number of workers. With a single worker jobs
// run inline on the caller's goroutine.
type Pool struct {
	wg     sync.WaitGroup
	work   chan Job
	close  func()
	done   atomic.Uint64
	failed atomic.Uint64
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{close: func() {}}
	if numWorkers > 1 {
		pool.work = make(chan Job, numWorkers)
		for range numWorkers {
			pool.wg.Go(func() {
				for job := range pool.work {
					pool.run(job)
				}
			})
		}
		pool.close = sync.OnceFunc(func() { close(pool.work) })
	}

	return pool
}

func (p *Pool) run(job Job) {
	if err := job(); err != nil {
		p.failed.Add(1)
		return
	}
	p.done.Add(1)
}

// Do queues job, blocking while every worker is busy.
func (p *Pool) Do(job Job) {
	if p.work == nil {
		p.run(job)
		return
	}
	p.work <- job
}

// Wait stops accepting jobs, waits for the queued ones and returns how many
// succeeded and failed. The pool cannot be reused afterwards.
func (p *Pool) Wait() (done, failed uint64) {
	p.close()
	p.wg.Wait()
	return p.done.Load(), p.failed.Load()
}
