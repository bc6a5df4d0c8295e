// metrics.go
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

// Package metrics registers the catalog's Prometheus collectors on the default registry,
// which fiberprometheus serves at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EnrichmentFetches counts repository metadata lookups by outcome (stored, unavailable, store_error)
	EnrichmentFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "appcatalog_enrichment_fetches_total",
		Help: "Repository metadata lookups by outcome.",
	}, []string{"outcome"})

	// QueryCacheRequests counts memoized endpoint reads by result (hit, miss)
	QueryCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "appcatalog_query_cache_requests_total",
		Help: "Memoized endpoint reads by endpoint and result.",
	}, []string{"endpoint", "result"})

	RefreshRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "appcatalog_refresh_runs_total",
		Help: "Catalog refresh runs by outcome.",
	}, []string{"outcome"})

	TasksDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appcatalog_tasks_dropped_total",
		Help: "Background tasks dropped because the queue was full or closed.",
	})
)
