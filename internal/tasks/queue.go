// queue.go
//
// A catalog read service for application listings, collections and statistics
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of appcatalog.
// appcatalog is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// appcatalog is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with appcatalog.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package tasks runs detached background work on a fixed pool of workers.
package tasks

import (
	"context"
	"sync"

	"github.com/localnerve/appcatalog/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Task is a unit of background work. The context is the queue's, never a request's.
type Task func(ctx context.Context)

type job struct {
	name string
	run  Task
}

// Queue is a bounded channel drained by a fixed number of workers. Submit never blocks.
type Queue struct {
	jobs   chan job
	ctx    context.Context
	cancel context.CancelFunc
	log    logrus.FieldLogger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewQueue starts workers goroutines reading from a queue of the given size
func NewQueue(workers, size int, log logrus.FieldLogger) *Queue {
	if workers < 1 {
		workers = 1
	}
	if size < 0 {
		size = 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		jobs:   make(chan job, size),
		ctx:    ctx,
		cancel: cancel,
		log:    log.WithField("component", "tasks"),
	}

	q.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go q.worker()
	}
	return q
}

// Submit enqueues a task. It reports false when the task was dropped.
func (q *Queue) Submit(name string, task Task) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.TasksDropped.Inc()
		return false
	}

	select {
	case q.jobs <- job{name: name, run: task}:
		return true
	default:
		metrics.TasksDropped.Inc()
		q.log.WithField("task", name).Warn("Task queue full, dropping task")
		return false
	}
}

// Shutdown stops accepting work and waits for the workers until ctx is done.
// Queued tasks that have not started are abandoned.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		q.cancel()
		close(q.jobs)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for j := range q.jobs {
		if q.ctx.Err() != nil {
			continue
		}
		q.run(j)
	}
}

func (q *Queue) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			q.log.WithFields(logrus.Fields{"task": j.name, "panic": r}).Error("Background task panicked")
		}
	}()
	j.run(q.ctx)
}
