// Package workerpool provides a fixed-size pool of goroutines that outlives
// individual loads. Results come back through typed futures so callers can
// collect them in whatever order they need.
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/vk/jpsloader/internal/ctxlog"
)

// ErrClosed is returned by futures submitted after Close.
var ErrClosed = errors.New("worker pool is closed")

// PanicError carries a panic recovered inside a task.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// Pool runs submitted tasks on a fixed number of workers.
type Pool struct {
	tasks     chan func()
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	size      int
}

// New starts a pool with size workers. A size of zero or less uses one
// worker per CPU. ctx only provides the logger; the pool runs until Close.
func New(ctx context.Context, size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	p := &Pool{
		tasks: make(chan func()),
		done:  make(chan struct{}),
		size:  size,
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting worker pool.", "workers", size)
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker(ctx, i+1)
	}
	return p
}

// Size reports the number of workers.
func (p *Pool) Size() int { return p.size }

// Close stops the workers and waits for running tasks to return. Submitting
// after Close fails the future with ErrClosed.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
}

// worker is the processing loop for a single worker.
func (p *Pool) worker(ctx context.Context, workerID int) {
	defer p.wg.Done()
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for {
		select {
		case <-p.done:
			logger.Debug("Worker finished.", "workerID", workerID)
			return
		case task := <-p.tasks:
			task()
		}
	}
}

// Future is the pending result of a submitted task.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func (f *Future[T]) complete(val T, err error) {
	f.val = val
	f.err = err
	close(f.done)
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Wait blocks until the task finishes or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Submit hands fn to the pool. Submit blocks while every worker is busy,
// unless ctx ends first. A task whose ctx is already done when a worker picks
// it up is skipped and its future fails with the context error.
func Submit[T any](p *Pool, ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	task := func() {
		var zero T
		if err := ctx.Err(); err != nil {
			f.complete(zero, err)
			return
		}
		defer func() {
			if r := recover(); r != nil {
				ctxlog.FromContext(ctx).Error("Task panicked.", "panic", r)
				f.complete(zero, &PanicError{Value: r, Stack: debug.Stack()})
			}
		}()
		val, err := fn(ctx)
		f.complete(val, err)
	}

	select {
	case p.tasks <- task:
	case <-ctx.Done():
		var zero T
		f.complete(zero, ctx.Err())
	case <-p.done:
		var zero T
		f.complete(zero, ErrClosed)
	}
	return f
}
