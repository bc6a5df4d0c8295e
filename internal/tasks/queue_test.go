// queue_test.go
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

package tasks

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/localnerve/appcatalog/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRunsTasks(t *testing.T) {
	q := NewQueue(2, 10, logging.Discard())

	var count atomic.Int32
	for i := 0; i < 5; i++ {
		require.True(t, q.Submit("count", func(ctx context.Context) { count.Add(1) }))
	}

	assert.Eventually(t, func() bool { return count.Load() == 5 }, time.Second, 5*time.Millisecond)
	require.NoError(t, q.Shutdown(context.Background()))
}

func TestQueueDropsWhenFull(t *testing.T) {
	q := NewQueue(1, 1, logging.Discard())
	block := make(chan struct{})
	started := make(chan struct{})

	require.True(t, q.Submit("block", func(ctx context.Context) {
		close(started)
		<-block
	}))
	<-started
	require.True(t, q.Submit("queued", func(ctx context.Context) {}))
	assert.False(t, q.Submit("dropped", func(ctx context.Context) {}))

	close(block)
	require.NoError(t, q.Shutdown(context.Background()))
}

func TestQueueSurvivesPanics(t *testing.T) {
	q := NewQueue(1, 4, logging.Discard())
	done := make(chan struct{})

	q.Submit("panic", func(ctx context.Context) { panic("boom") })
	q.Submit("after", func(ctx context.Context) { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not survive a panicking task")
	}
	require.NoError(t, q.Shutdown(context.Background()))
}

func TestSubmitAfterShutdown(t *testing.T) {
	q := NewQueue(1, 1, logging.Discard())
	require.NoError(t, q.Shutdown(context.Background()))
	assert.False(t, q.Submit("late", func(ctx context.Context) {}))
	// idempotent
	require.NoError(t, q.Shutdown(context.Background()))
}
