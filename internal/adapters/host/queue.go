package host

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/alchemyrand/internal/core/command"
	"github.com/example/alchemyrand/internal/ports/secondary"
)

// Runner executes a dequeued command.
type Runner interface {
	Run(ctx context.Context, cmd command.Command) error
}

// TaskQueue is a FIFO stand-in for the host's main-thread task queue.
type TaskQueue struct {
	mu      sync.Mutex
	pending []command.Command
}

// NewTaskQueue creates an empty queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{}
}

// Enqueue appends a command.
func (q *TaskQueue) Enqueue(cmd command.Command) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, cmd)
}

// Len returns the number of pending commands.
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain runs every pending command once, in submission order. Commands
// enqueued while draining run at the next Drain. It returns the number of
// commands run and stops at the first error.
func (q *TaskQueue) Drain(ctx context.Context, runner Runner) (int, error) {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for i, cmd := range batch {
		if err := ctx.Err(); err != nil {
			q.requeue(batch[i:])
			return i, err
		}
		if err := runner.Run(ctx, cmd); err != nil {
			q.requeue(batch[i+1:])
			return i + 1, fmt.Errorf("failed to run %s: %w", cmd.CommandType(), err)
		}
	}
	return len(batch), nil
}

// requeue puts unrun commands back in front of anything enqueued since.
func (q *TaskQueue) requeue(cmds []command.Command) {
	if len(cmds) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(append([]command.Command(nil), cmds...), q.pending...)
}

// Ensure TaskQueue implements the interface
var _ secondary.TaskQueue = (*TaskQueue)(nil)
