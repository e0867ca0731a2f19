// Package worker runs document analyses concurrently while keeping
// output order deterministic: every job carries a sequence number and
// Wait returns results sorted by it, so concurrency never changes what
// gets serialized.
package worker

import (
	"context"
	"sort"
	"sync"
)

// Job is one unit of work.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of a job. Seq must return the sequence number
// the job was submitted with.
type Result interface {
	Err() error
	Seq() int
}

// Pool fans jobs out to a fixed number of workers. Results accumulate
// in a collector rather than a bounded channel, so callers may submit
// any number of jobs before draining.
type Pool struct {
	workers   int
	jobs      chan Job
	collector *resultCollector
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers:   workers,
		jobs:      make(chan Job, workers*2),
		collector: newResultCollector(),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.collector.add(job.Execute(p.ctx))
		}
	}
}

// Submit enqueues a job. Submissions after Shutdown are dropped.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobs <- job:
	}
}

// Wait blocks until all submitted jobs complete and returns their
// results ordered by sequence number. Arrival order depends on
// scheduling; submission order is the contract.
func (p *Pool) Wait() []Result {
	close(p.jobs)
	p.wg.Wait()

	results := p.collector.results()
	sort.SliceStable(results, func(i, j int) bool { return results[i].Seq() < results[j].Seq() })
	return results
}

// Shutdown cancels outstanding work. Jobs already executing finish;
// queued jobs are abandoned.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// resultCollector accumulates results as workers produce them.
type resultCollector struct {
	mu   sync.Mutex
	done []Result
}

func newResultCollector() *resultCollector {
	return &resultCollector{}
}

func (c *resultCollector) add(r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done = append(c.done, r)
}

func (c *resultCollector) results() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}
