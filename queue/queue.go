package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pbanos/twig/internal/ctxlock"
)

// Queue represents a queue where tasks to develop
// tree nodes can be pushed and pulled. The idea
// is a worker will use the Pull method to obtain
// a task. It will start processing it and will then
// either complete it or drop it halfway.
//
// All its methods have a context.Context as first
// parameter that implementations may use to allow
// timeouts and cancellations on the Queue operations.
type Queue interface {
	// Push takes a task and stores it in the queue or
	// returns an error. The task will count as pending.
	Push(context.Context, *Task) error
	// Pull returns a task or an error. The pulled task
	// will be counted as running from then on.
	// If there are no tasks to pull, implementations
	// should not return an error, but 2 nil values.
	Pull(context.Context) (*Task, error)
	// Drop takes the ID for a tasks an makes it available
	// for pulling from the Queue again. The dropped task
	// should be counted by implementations as pending
	// again, unless it has been previously completed.
	// Workers should use this to return to the queue
	// tasks they have not completed.
	Drop(context.Context, string) error
	// Complete takes the ID for a task. Implementations
	// should remove the task from the running state.
	Complete(context.Context, string) error
	// Count returns the number of
	// pending and running tasks in the queue
	// or an error
	Count(context.Context) (int, int, error)
	// Stop stops the queue. Implementations should use
	// the call to free resources. Pushing or pulling
	// on a stopped queue returns ErrStopped.
	Stop(context.Context) error
}

// ErrStopped is returned when operating on a stopped queue.
var ErrStopped = errors.New("queue stopped")

type memQueue struct {
	pendingTasks []*Task
	head         int
	pending      int
	runningTasks map[string]*Task
	stopped      bool
	lock         *sync.RWMutex
}

// New returns a queue backed only by the process memory
func New() Queue {
	return &memQueue{
		runningTasks: make(map[string]*Task),
		lock:         &sync.RWMutex{},
	}
}

// WaitFor takes a context, a queue and a polling interval
// and waits for all its tasks to have been processed, that
// is, for the given queue's Count method to return 0, 0, nil.
// It will return a non-nil error if the given context
// times out or is cancelled, or if the queue's Count
// operation returns an error.
func WaitFor(ctx context.Context, q Queue, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		pending, running, err := q.Count(ctx)
		if err != nil {
			return err
		}
		if pending+running == 0 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

func (mq *memQueue) Push(ctx context.Context, t *Task) error {
	return ctxlock.Do(ctx, mq.lock, func(ctx context.Context) error {
		if mq.stopped {
			return ErrStopped
		}
		mq.push(t)
		return nil
	})
}

func (mq *memQueue) Pull(ctx context.Context) (*Task, error) {
	var task *Task
	err := ctxlock.Do(ctx, mq.lock, func(ctx context.Context) error {
		if mq.stopped {
			return ErrStopped
		}
		if mq.pending == 0 {
			return nil
		}
		mq.pending--
		task = mq.pendingTasks[mq.head]
		mq.pendingTasks[mq.head] = nil
		mq.head = (mq.head + 1) % len(mq.pendingTasks)
		mq.runningTasks[task.ID()] = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (mq *memQueue) Drop(ctx context.Context, id string) error {
	return ctxlock.Do(ctx, mq.lock, func(ctx context.Context) error {
		t, ok := mq.runningTasks[id]
		if !ok {
			return nil
		}
		delete(mq.runningTasks, id)
		mq.push(t)
		return nil
	})
}

func (mq *memQueue) Complete(ctx context.Context, id string) error {
	return ctxlock.Do(ctx, mq.lock, func(ctx context.Context) error {
		delete(mq.runningTasks, id)
		return nil
	})
}

func (mq *memQueue) Count(ctx context.Context) (int, int, error) {
	var pending, running int
	err := ctxlock.Do(ctx, mq.lock.RLocker(), func(ctx context.Context) error {
		pending = mq.pending
		running = len(mq.runningTasks)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return pending, running, nil
}

func (mq *memQueue) Stop(ctx context.Context) error {
	return ctxlock.Do(ctx, mq.lock, func(ctx context.Context) error {
		mq.stopped = true
		return nil
	})
}

func (mq *memQueue) String() string {
	return fmt.Sprintf("{Queue pending: %d (%v head:%d)}", mq.pending, mq.pendingTasks, mq.head)
}

func (mq *memQueue) push(t *Task) {
	if mq.pending == len(mq.pendingTasks) {
		mq.reorder()
		mq.pendingTasks = append(mq.pendingTasks, t)
	} else {
		mq.pendingTasks[(mq.head+mq.pending)%len(mq.pendingTasks)] = t
	}
	mq.pending++
}

// reorder rotates a full ring so that its head is at
// position 0 and appending keeps FIFO order.
func (mq *memQueue) reorder() {
	if mq.head == 0 {
		return
	}
	mq.pendingTasks = append(mq.pendingTasks[mq.head:], mq.pendingTasks[0:mq.head]...)
	mq.head = 0
}
