package parallel

import (
	"runtime"
	"sync"
)

// Pool runs submitted closures on a fixed set of goroutines. A pool of size 1
// runs everything inline on the caller's goroutine.
type Pool struct {
	size    int
	work    chan func()
	workers sync.WaitGroup
	tasks   sync.WaitGroup
	close   func()
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		size:  numWorkers,
		close: func() {},
	}

	if numWorkers > 1 {
		pool.work = make(chan func(), numWorkers)

		for range numWorkers {
			pool.workers.Go(func() {
				for f := range pool.work {
					f()
					pool.tasks.Done()
				}
			})
		}

		pool.close = sync.OnceFunc(func() {
			close(pool.work)
			pool.workers.Wait()
		})
	}

	return pool
}

// Size reports the number of workers; a nil pool has size 1.
func (p *Pool) Size() int {
	if p == nil {
		return 1
	}
	return p.size
}

// Do schedules f. It must not be called from inside a task running on the
// same pool.
func (p *Pool) Do(f func()) {
	if p.Size() == 1 {
		f()
		return
	}
	p.tasks.Add(1)
	p.work <- f
}

// Wait blocks until every task scheduled so far has returned. The pool stays
// usable afterwards.
func (p *Pool) Wait() {
	if p.Size() == 1 {
		return
	}
	p.tasks.Wait()
}

// Close waits for the workers to drain the queue and stops them.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.close()
}

// Parts is an upper bound on the number of ranges Split uses for n items.
func (p *Pool) Parts(n int) int {
	return max(1, min(p.Size(), n))
}

// Split partitions [0, n) into at most Size contiguous ranges, runs fn on each
// and waits for those ranges only. The worker argument is the range ordinal, so fn
// can index per-worker scratch space with it.
func (p *Pool) Split(n int, fn func(worker, lo, hi int)) int {
	if n <= 0 {
		return 0
	}
	parts := p.Parts(n)
	if parts == 1 {
		fn(0, 0, n)
		return 1
	}

	var wg sync.WaitGroup
	chunk := (n + parts - 1) / parts
	used := 0
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		worker := used
		wg.Add(1)
		p.Do(func() {
			defer wg.Done()
			fn(worker, lo, hi)
		})
		used++
	}
	wg.Wait()

	return used
}
