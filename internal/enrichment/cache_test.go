// cache_test.go
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

package enrichment

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/appcatalog/internal/logging"
	"github.com/localnerve/appcatalog/internal/repometa"
	"github.com/localnerve/appcatalog/internal/store"
	"github.com/localnerve/appcatalog/internal/tasks"
	"github.com/localnerve/appcatalog/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appID = "org.example.App"

type fixture struct {
	cache *Cache
	store *store.RedisStore
	api   *testsupport.RepoAPI
	queue *tasks.Queue
}

func newFixture(t *testing.T, dates map[string]string) *fixture {
	t.Helper()
	s, _ := testsupport.NewStore(t)
	api := testsupport.NewRepoAPI(t, dates)
	log := logging.Discard()
	queue := tasks.NewQueue(2, 16, log)
	t.Cleanup(func() { _ = queue.Shutdown(context.Background()) })

	client := repometa.NewClient(repometa.Options{BaseURL: api.URL}, log)
	return &fixture{
		cache: New(s, client, queue, time.Second, log),
		store: s,
		api:   api,
		queue: queue,
	}
}

func TestPeek(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	v, err := f.cache.Peek(ctx, appID)
	require.NoError(t, err)
	assert.Nil(t, v)

	testsupport.MustSet(t, f.store, store.CreatedAtKey(appID), "2019-01-01T00:00:00Z")
	v, err = f.cache.Peek(ctx, appID)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "2019-01-01T00:00:00Z", *v)
	assert.Equal(t, int64(0), f.api.Total())
}

func TestGetOrScheduleFetchesOnce(t *testing.T) {
	f := newFixture(t, map[string]string{appID: "2019-01-01T00:00:00Z"})
	ctx := context.Background()
	release := f.api.Hold()

	v, err := f.cache.GetOrSchedule(ctx, appID)
	require.NoError(t, err)
	assert.Nil(t, v)

	// wait for the request to reach the api so the second call sees it in flight
	require.Eventually(t, func() bool { return f.api.Hits(appID) == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, f.cache.Pending(appID))

	v, err = f.cache.GetOrSchedule(ctx, appID)
	require.NoError(t, err)
	assert.Nil(t, v)

	release()
	require.Eventually(t, func() bool { return !f.cache.Pending(appID) }, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, f.api.Hits(appID))
	v, err = f.cache.GetOrSchedule(ctx, appID)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "2019-01-01T00:00:00Z", *v)
	assert.Equal(t, 1, f.api.Hits(appID))
}

func TestGetOrScheduleFailureIsNotCached(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	v, err := f.cache.GetOrSchedule(ctx, appID)
	require.NoError(t, err)
	assert.Nil(t, v)
	require.Eventually(t, func() bool { return f.api.Hits(appID) == 1 && !f.cache.Pending(appID) }, time.Second, 5*time.Millisecond)

	_, err = f.store.Get(ctx, store.CreatedAtKey(appID))
	assert.ErrorIs(t, err, store.ErrNotFound)

	// no negative cache: the next miss schedules again
	_, err = f.cache.GetOrSchedule(ctx, appID)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return f.api.Hits(appID) == 2 }, time.Second, 5*time.Millisecond)
}

func TestGetOrFetchBlocks(t *testing.T) {
	f := newFixture(t, map[string]string{appID: "2019-01-01T00:00:00Z"})
	ctx := context.Background()

	v, err := f.cache.GetOrFetch(ctx, appID)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "2019-01-01T00:00:00Z", *v)

	stored, err := f.store.Get(ctx, store.CreatedAtKey(appID))
	require.NoError(t, err)
	assert.Equal(t, "2019-01-01T00:00:00Z", stored)

	v, err = f.cache.GetOrFetch(ctx, "org.unknown")
	require.NoError(t, err)
	assert.Nil(t, v)
}

type stubQueue struct{ accept bool }

func (s stubQueue) Submit(string, tasks.Task) bool { return s.accept }

func TestDroppedSubmitClearsInflight(t *testing.T) {
	s, _ := testsupport.NewStore(t)
	api := testsupport.NewRepoAPI(t, nil)
	c := New(s, repometa.NewClient(repometa.Options{BaseURL: api.URL}, logging.Discard()), stubQueue{}, time.Second, logging.Discard())

	_, err := c.GetOrSchedule(context.Background(), appID)
	require.NoError(t, err)
	assert.False(t, c.Pending(appID))
}
