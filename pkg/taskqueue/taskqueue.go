// Copyright 2025 EduPuzzle Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package taskqueue runs asynchronous tasks strictly in arrival order.
// Producers enqueue a task together with a completion signal; a single
// worker goroutine dequeues and runs tasks one at a time, handing each
// result back to its original caller.
package taskqueue

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed reports a task submitted after Close.
var ErrClosed = errors.New("task queue closed")

// Task is a unit of deferred work.
type Task func(context.Context) error

type item struct {
	task Task
	done chan error
}

// Queue is a FIFO task runner backed by one worker goroutine.
type Queue struct {
	items   chan item
	drained chan struct{}

	mu     sync.Mutex
	closed bool
}

// New creates a queue with the given buffer depth and starts its worker.
// The context is passed to every task; cancelling it does not stop the
// worker, but tasks are expected to honor it.
func New(ctx context.Context, depth int) *Queue {
	if depth < 0 {
		depth = 0
	}
	q := &Queue{
		items:   make(chan item, depth),
		drained: make(chan struct{}),
	}
	go q.run(ctx)
	return q
}

func (q *Queue) run(ctx context.Context) {
	defer close(q.drained)
	for it := range q.items {
		it.done <- it.task(ctx)
	}
}

// Do enqueues task and blocks until the worker has run it, returning the
// task's error. Tasks run in the order Do submissions reach the queue.
// If ctx is cancelled before the task completes, Do returns early with
// ctx.Err(); an already-enqueued task still runs in its turn.
func (q *Queue) Do(ctx context.Context, task Task) error {
	it := item{task: task, done: make(chan error, 1)}
	if err := q.enqueue(ctx, it); err != nil {
		return err
	}
	select {
	case err := <-it.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) enqueue(ctx context.Context, it item) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	select {
	case q.items <- it:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting tasks, lets the worker drain what is already
// queued, and waits for it to exit. Close is idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.items)
	}
	q.mu.Unlock()
	<-q.drained
}
