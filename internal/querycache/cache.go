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

// Package querycache memoizes aggregate endpoint results until the next bulk invalidation.
package querycache

import (
	"context"
	"strings"
	"time"

	"github.com/localnerve/appcatalog/internal/metrics"
	"github.com/viccon/sturdyc"
)

const (
	maxShards          = 64
	minShardCapacity   = 1000
	evictionPercentage = 10
	// entries are dropped by InvalidateAll, not by age
	retention = 10 * 365 * 24 * time.Hour
)

// Cache memoizes results keyed by endpoint and argument tuple
type Cache[T any] struct {
	client *sturdyc.Client[T]
}

// New creates a cache holding up to capacity entries
func New[T any](capacity int) *Cache[T] {
	if capacity < 1 {
		capacity = 1
	}
	// capacity is split evenly across shards
	shards := capacity / minShardCapacity
	if shards < 1 {
		shards = 1
	}
	if shards > maxShards {
		shards = maxShards
	}
	return &Cache[T]{
		client: sturdyc.New[T](capacity, shards, retention, evictionPercentage),
	}
}

// GetOrCompute returns the memoized value for (endpoint, args) or computes and stores it.
// Concurrent misses on the same key share one computation. Errors are not cached.
func (c *Cache[T]) GetOrCompute(ctx context.Context, endpoint string, args []string, compute func(context.Context) (T, error)) (T, error) {
	key := Key(endpoint, args...)
	if value, ok := c.client.Get(key); ok {
		metrics.QueryCacheRequests.WithLabelValues(endpoint, "hit").Inc()
		return value, nil
	}

	metrics.QueryCacheRequests.WithLabelValues(endpoint, "miss").Inc()
	return c.client.GetOrFetch(ctx, key, compute)
}

// InvalidateAll drops every entry
func (c *Cache[T]) InvalidateAll() {
	for _, key := range c.client.ScanKeys() {
		c.client.Delete(key)
	}
}

// Len is the number of memoized entries
func (c *Cache[T]) Len() int {
	return c.client.Size()
}

// Key joins an endpoint name and its arguments
func Key(endpoint string, args ...string) string {
	return endpoint + "|" + strings.Join(args, "|")
}
