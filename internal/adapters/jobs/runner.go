package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/fairway/pkg/logger"
)

// runnerShutdownTimeout bounds how long Shutdown waits for the loop.
const runnerShutdownTimeout = 30 * time.Second

// Runner consumes the queue and executes jobs one at a time. Background
// work here is deliberately serial: syncs touch the same flat-file stores.
type Runner struct {
	queue Queue

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewRunner creates a runner for the given queue.
func NewRunner(queue Queue, opts ...RunnerOption) *Runner {
	r := &Runner{
		queue:    queue,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("jobs"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start launches the runner loop.
func (r *Runner) Start(ctx context.Context) {
	go r.run(ctx)
}

func (r *Runner) run(ctx context.Context) {
	defer close(r.done)

	jobChan := r.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.shutdown:
			return
		case j, ok := <-jobChan:
			if !ok {
				return
			}
			r.execute(ctx, j)
		}
	}
}

func (r *Runner) execute(ctx context.Context, j Job) {
	start := time.Now()
	r.logger.Info(ctx, "job started",
		logger.String("job", j.Name),
		logger.String("id", j.ID),
	)

	if err := j.Run(ctx); err != nil {
		r.logger.Error(ctx, "job failed",
			logger.String("job", j.Name),
			logger.String("id", j.ID),
			logger.Error(err),
		)
		return
	}

	r.logger.Info(ctx, "job finished",
		logger.String("job", j.Name),
		logger.String("id", j.ID),
		logger.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)
}

// Shutdown gracefully stops the runner.
func (r *Runner) Shutdown(ctx context.Context) error {
	if err := r.queue.Close(); err != nil {
		r.logger.Error(ctx, "error closing queue", logger.Error(err))
	}

	close(r.shutdown)

	select {
	case <-r.done:
		return nil
	case <-time.After(runnerShutdownTimeout):
		return fmt.Errorf("runner shutdown: %w", ErrShutdownTimeout)
	}
}
