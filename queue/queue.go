package queue

import (
	"context"
	"fmt"
	"sync"
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
	// Push takes a task, assigns it an ID and stores
	// it in the queue or returns an error. The task
	// will count as pending.
	Push(context.Context, *Task) error
	// Pull returns a task or an error. The pulled task
	// will be counted as running from then on.
	// If there are no tasks to pull, implementations
	// should not return an error, but 2 nil values.
	Pull(context.Context) (*Task, error)
	// Drop takes the ID for a task and makes it available
	// for pulling from the Queue again. The dropped task
	// should be counted by implementations as pending
	// again, unless it has been previously completed.
	Drop(context.Context, string) error
	// Complete takes the ID for a task. Implementations
	// should remove the task from the running state.
	Complete(context.Context, string) error
	// Count returns the number of
	// pending and running tasks in the queue
	// or an error
	Count(context.Context) (int, int, error)
}

type memQueue struct {
	pendingTasks []*Task
	head         int
	tail         int
	pending      int
	runningTasks map[string]*Task
	nextID       uint64
	lock         sync.Mutex
}

// New returns a FIFO queue backed only by the process memory
func New() Queue {
	return &memQueue{
		runningTasks: make(map[string]*Task),
	}
}

func (mq *memQueue) Push(ctx context.Context, t *Task) error {
	return mq.withLock(ctx, func() {
		mq.nextID++
		t.id = fmt.Sprintf("%d", mq.nextID)
		mq.push(t)
	})
}

func (mq *memQueue) Pull(ctx context.Context) (*Task, error) {
	var task *Task
	err := mq.withLock(ctx, func() {
		if mq.pending == 0 {
			return
		}
		mq.pending--
		task = mq.pendingTasks[mq.head]
		mq.pendingTasks[mq.head] = nil
		mq.head = (mq.head + 1) % len(mq.pendingTasks)
		mq.runningTasks[task.ID()] = task
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (mq *memQueue) Drop(ctx context.Context, id string) error {
	return mq.withLock(ctx, func() {
		t, ok := mq.runningTasks[id]
		if !ok {
			return
		}
		delete(mq.runningTasks, id)
		mq.push(t)
	})
}

func (mq *memQueue) Complete(ctx context.Context, id string) error {
	return mq.withLock(ctx, func() {
		delete(mq.runningTasks, id)
	})
}

func (mq *memQueue) Count(ctx context.Context) (int, int, error) {
	var pending, running int
	err := mq.withLock(ctx, func() {
		pending = mq.pending
		running = len(mq.runningTasks)
	})
	if err != nil {
		return 0, 0, err
	}
	return pending, running, nil
}

func (mq *memQueue) String() string {
	return fmt.Sprintf("{Queue pending: %d (head:%d tail:%d) running: %d}", mq.pending, mq.head, mq.tail, len(mq.runningTasks))
}

func (mq *memQueue) push(t *Task) {
	if mq.pending == len(mq.pendingTasks) {
		mq.reorder()
		mq.pendingTasks = append(mq.pendingTasks, t)
		mq.tail = 0
	} else {
		mq.pendingTasks[mq.tail] = t
		mq.tail = (mq.tail + 1) % len(mq.pendingTasks)
	}
	mq.pending++
}

// reorder rotates the full ring buffer so that its head is at index 0
func (mq *memQueue) reorder() {
	if mq.head == 0 {
		return
	}
	mq.pendingTasks = append(mq.pendingTasks[mq.head:], mq.pendingTasks[0:mq.head]...)
	mq.head = 0
}

func (mq *memQueue) withLock(ctx context.Context, f func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mq.lock.Lock()
	defer mq.lock.Unlock()
	f()
	return nil
}
