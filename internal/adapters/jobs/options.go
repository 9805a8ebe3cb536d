package jobs

import "github.com/okian/fairway/pkg/logger"

// Option applies a configuration option to the InMemoryQueue.
type Option func(*InMemoryQueue)

// WithCapacity sets the maximum capacity of the queue.
func WithCapacity(capacity int) Option {
	return func(q *InMemoryQueue) {
		if capacity > 0 {
			q.capacity = capacity
		}
	}
}

// RunnerOption applies a configuration option to the Runner.
type RunnerOption func(*Runner)

// WithRunnerLogger sets a custom logger for the runner.
func WithRunnerLogger(l logger.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}
