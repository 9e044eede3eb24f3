/*
Package twig grows binary decision trees over two-attribute numeric
data with integer labels, splitting on the attribute and threshold
that minimize label entropy.

Trees can be grown synchronously with tree.Build or by a pool of
workers developing nodes from a queue with a Grower. Both produce
structurally equal trees for the same input.
*/
package twig

import (
	"context"
	"time"

	"github.com/pbanos/twig/dataset"
	"github.com/pbanos/twig/queue"
	"github.com/pbanos/twig/tree"
	"go.uber.org/zap"
)

const defaultEmptyQueueSleep = 10 * time.Millisecond

// Grower grows trees with a pool of workers that develop
// nodes concurrently. The zero value is a Grower with a
// single worker that does not log.
type Grower struct {
	// Workers is the number of goroutines developing
	// nodes. Values below 1 mean 1.
	Workers int
	// EmptyQueueSleep is how long a worker waits before
	// retrying when there are no tasks to pull but others
	// are still running. Zero means 10ms.
	EmptyQueueSleep time.Duration
	// Logger receives debug entries for every developed
	// node. Nil means no logging.
	Logger *zap.Logger
}

/*
Grow takes a context, a dataset and a minimum dataset size and grows
a tree from it as tree.Build does, but developing nodes with the
Grower's workers. It pushes a task for the root node to a new queue
and has every worker run Work on it until no tasks are left.

Grow returns the same input errors as tree.Build, or the error of
the first worker that failed, including context cancellation.
*/
func (g *Grower) Grow(ctx context.Context, ds dataset.Dataset, minSize int) (*tree.Tree, error) {
	if err := tree.CheckInput(ds, minSize); err != nil {
		return nil, err
	}
	logger := g.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := g.Workers
	if workers < 1 {
		workers = 1
	}
	sleep := g.EmptyQueueSleep
	if sleep <= 0 {
		sleep = defaultEmptyQueueSleep
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	q := queue.New()
	defer q.Stop(context.Background())
	t := &tree.Tree{MinSize: minSize}
	err := q.Push(ctx, &queue.Task{Path: "root", Slot: &t.Root, Dataset: ds})
	if err != nil {
		return nil, err
	}
	logger.Debug("growing tree", zap.Int("points", len(ds)), zap.Int("minSize", minSize), zap.Int("workers", workers))
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func(wl *zap.Logger) {
			errs <- Work(ctx, q, minSize, sleep, wl)
		}(logger.With(zap.Int("worker", i)))
	}
	var result error
	for i := 0; i < workers; i++ {
		if err := <-errs; err != nil && result == nil {
			result = err
			cancel()
		}
	}
	if result != nil {
		return nil, result
	}
	logger.Debug("tree grown", zap.Int("depth", t.Depth()), zap.Int("leaves", t.Leaves()))
	return t, nil
}

// Work takes a context, a queue, a minimum dataset size,
// an emptyQueueSleep duration and a logger and enters a loop
// in which it:
//   - pulls a task from the queue
//   - develops its node with tree.BranchOut and sets it on
//     the task's slot
//   - pushes tasks for the children of the node, if it is a split
//   - marks the task as completed on the queue
//
// If at some point no task can be pulled from the queue and
// the sum of tasks running and pending on the queue is 0, the
// worker ends returning nil. If no task can be pulled but the
// sum is not 0, then the worker will sleep for the given
// emptyQueueSleep duration and then retry.
//
// Work will return a non-nil error if the given context
// times out or is cancelled, if BranchOut returns a non-nil
// error or if an operation with the given queue returns a
// non-nil error.
func Work(ctx context.Context, q queue.Queue, minSize int, emptyQueueSleep time.Duration, logger *zap.Logger) error {
	for {
		task, err := q.Pull(ctx)
		if err != nil {
			return err
		}
		if task == nil {
			p, r, err := q.Count(ctx)
			if err != nil {
				return err
			}
			if p+r == 0 {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(emptyQueueSleep):
			}
			continue
		}
		err = workTask(ctx, task, q, minSize, logger)
		if err != nil {
			return err
		}
		err = ctx.Err()
		if err != nil {
			return err
		}
	}
}

func workTask(ctx context.Context, task *queue.Task, q queue.Queue, minSize int, logger *zap.Logger) (e error) {
	defer func() {
		if e != nil {
			q.Drop(context.Background(), task.ID())
		}
	}()
	n, left, right, err := tree.BranchOut(task.Dataset, minSize)
	if err != nil {
		return err
	}
	*task.Slot = n
	logger.Debug("developed node", zap.String("task", task.ID()), zap.Int("points", len(task.Dataset)), zap.Stringer("node", n))
	if split, ok := n.(*tree.Split); ok {
		subtasks := []*queue.Task{
			{Path: task.Path + ".l", Slot: &split.Left, Dataset: left},
			{Path: task.Path + ".r", Slot: &split.Right, Dataset: right},
		}
		for _, st := range subtasks {
			err = q.Push(ctx, st)
			if err != nil {
				return err
			}
		}
	}
	return q.Complete(ctx, task.ID())
}
