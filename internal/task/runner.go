package task

import (
	"context"
	"sync"

	"worldmap/server/logging"
)

// Runner owns long-running background jobs keyed by name. At most one job
// per name runs at a time; starting an already-running name is refused
// rather than restarting it.
type Runner struct {
	mu   sync.Mutex
	jobs map[string]*job
	log  logging.Publisher
}

type job struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRunner(pub logging.Publisher) *Runner {
	if pub == nil {
		pub = logging.NopPublisher
	}
	return &Runner{jobs: make(map[string]*job), log: pub}
}

func (r *Runner) Running(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, running := r.jobs[name]
	return running
}

// Start launches fn under the given name. Returns false when a job with
// that name is already running.
func (r *Runner) Start(name string, fn func(ctx context.Context)) bool {
	r.mu.Lock()
	if _, running := r.jobs[name]; running {
		r.mu.Unlock()
		return false
	}
	ctx, cancel := context.WithCancel(context.Background())
	j := &job{cancel: cancel, done: make(chan struct{})}
	r.jobs[name] = j
	r.mu.Unlock()

	r.log.Publish(ctx, logging.Event{
		Type: "task_started", Severity: logging.SeverityInfo,
		Category: logging.CategoryTask, Message: name,
	})

	go func() {
		defer func() {
			r.mu.Lock()
			delete(r.jobs, name)
			r.mu.Unlock()
			close(j.done)
			r.log.Publish(context.Background(), logging.Event{
				Type: "task_finished", Severity: logging.SeverityInfo,
				Category: logging.CategoryTask, Message: name,
			})
		}()
		fn(ctx)
	}()
	return true
}

// Stop cancels a running job. Returns false when nothing ran under the
// name. Does not wait for the job to unwind.
func (r *Runner) Stop(name string) bool {
	r.mu.Lock()
	j, running := r.jobs[name]
	r.mu.Unlock()
	if !running {
		return false
	}
	j.cancel()
	return true
}

// Wait blocks until the named job finishes. No-op when nothing is running.
func (r *Runner) Wait(name string) {
	r.mu.Lock()
	j, running := r.jobs[name]
	r.mu.Unlock()
	if running {
		<-j.done
	}
}
