// cache.go
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

// Package enrichment caches fields that come from the repository-metadata API rather than the
// appstream ingest. Entries are written once and never refreshed.
package enrichment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/localnerve/appcatalog/internal/metrics"
	"github.com/localnerve/appcatalog/internal/store"
	"github.com/localnerve/appcatalog/internal/tasks"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"
)

// Fetcher looks up the repository creation date of an app
type Fetcher interface {
	CreatedAt(ctx context.Context, id string) (string, error)
}

// Submitter accepts detached background work
type Submitter interface {
	Submit(name string, task tasks.Task) bool
}

// KV is the slice of the store the cache needs
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Cache resolves created_at:<id>, scheduling or performing the lookup on a miss
type Cache struct {
	store    KV
	fetcher  Fetcher
	queue    Submitter
	timeout  time.Duration
	inflight *xsync.MapOf[string, struct{}]
	log      logrus.FieldLogger
}

// New creates a cache. timeout bounds every lookup, blocking or not.
func New(kv KV, fetcher Fetcher, queue Submitter, timeout time.Duration, log logrus.FieldLogger) *Cache {
	return &Cache{
		store:    kv,
		fetcher:  fetcher,
		queue:    queue,
		timeout:  timeout,
		inflight: xsync.NewMapOf[string, struct{}](),
		log:      log.WithField("component", "enrichment"),
	}
}

// Peek reads the cached value without ever fetching. A miss is (nil, nil).
func (c *Cache) Peek(ctx context.Context, id string) (*string, error) {
	value, err := c.store.Get(ctx, store.CreatedAtKey(id))
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// GetOrSchedule returns the cached value, or nil after scheduling one background lookup.
// Only one lookup per id is in flight at a time; failed lookups are dropped.
func (c *Cache) GetOrSchedule(ctx context.Context, id string) (*string, error) {
	value, err := c.Peek(ctx, id)
	if value != nil || err != nil {
		return value, err
	}
	c.schedule(id)
	return nil, nil
}

// GetOrFetch returns the cached value or performs the lookup inline. A failed lookup is (nil, nil).
func (c *Cache) GetOrFetch(ctx context.Context, id string) (*string, error) {
	value, err := c.Peek(ctx, id)
	if value != nil || err != nil {
		return value, err
	}
	return c.fetchAndStore(ctx, id), nil
}

// Pending reports whether a background lookup for id is in flight
func (c *Cache) Pending(id string) bool {
	_, ok := c.inflight.Load(id)
	return ok
}

func (c *Cache) schedule(id string) {
	// the task outlives the request, which may own the bytes behind id
	id = strings.Clone(id)
	if _, loaded := c.inflight.LoadOrStore(id, struct{}{}); loaded {
		return
	}

	submitted := c.queue.Submit("enrich:"+id, func(ctx context.Context) {
		defer c.inflight.Delete(id)
		c.fetchAndStore(ctx, id)
	})
	if !submitted {
		c.inflight.Delete(id)
	}
}

func (c *Cache) fetchAndStore(ctx context.Context, id string) *string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	log := c.log.WithField("app_id", id)

	value, err := c.fetcher.CreatedAt(ctx, id)
	if err != nil {
		metrics.EnrichmentFetches.WithLabelValues("unavailable").Inc()
		log.WithError(err).Debug("Repository metadata unavailable")
		return nil
	}

	if err := c.store.Set(ctx, store.CreatedAtKey(id), value); err != nil {
		metrics.EnrichmentFetches.WithLabelValues("store_error").Inc()
		log.WithError(err).Warn("Failed to cache repository creation date")
		return &value
	}

	metrics.EnrichmentFetches.WithLabelValues("stored").Inc()
	return &value
}
