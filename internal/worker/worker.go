package worker

import "sync"

// Task is a unit of background work, e.g. a best-effort write that the
// request should not block on.
type Task func()

// Pool runs submitted tasks on a fixed set of goroutines.
type Pool interface {
	Submit(Task)
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{tasks: make(chan Task)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for task := range p.tasks {
				if task != nil {
					task()
				}
			}
		}()
	}
	return p
}

type pool struct {
	tasks chan Task
	wg    sync.WaitGroup
}

func (p *pool) Submit(t Task) {
	p.tasks <- t
}

// Stop drains the queue and waits for in-flight tasks.
func (p *pool) Stop() {
	close(p.tasks)
	p.wg.Wait()
}
