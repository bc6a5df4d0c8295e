// catalog.go
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

package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/localnerve/appcatalog/internal/index"
	"github.com/localnerve/appcatalog/internal/models"
	"github.com/localnerve/appcatalog/internal/querycache"
	"github.com/localnerve/appcatalog/internal/ranking"
	"github.com/localnerve/appcatalog/internal/search"
	"github.com/localnerve/appcatalog/internal/stats"
	"github.com/localnerve/appcatalog/internal/store"
	"github.com/localnerve/appcatalog/internal/views"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when a record or facet does not exist
var ErrNotFound = errors.New("not found")

// DefaultListLimit applies to collection and popularity listings without an explicit limit
const DefaultListLimit = 100

// Memoized endpoint names
const (
	EndpointCategory        = "category"
	EndpointRecentlyUpdated = "recently-updated"
	EndpointRecentlyAdded   = "recently-added"
)

// ListingCache memoizes listing endpoints
type ListingCache = querycache.Cache[[]views.Listing]

// CatalogService serves the native catalog endpoints
type CatalogService struct {
	store    store.Reader
	resolver *index.Resolver
	stats    stats.Provider
	searcher search.Searcher
	memo     *ListingCache
	log      logrus.FieldLogger
}

// NewCatalogService wires the native read path
func NewCatalogService(s store.Reader, resolver *index.Resolver, statsProvider stats.Provider, searcher search.Searcher, memo *ListingCache, log logrus.FieldLogger) *CatalogService {
	return &CatalogService{
		store:    s,
		resolver: resolver,
		stats:    statsProvider,
		searcher: searcher,
		memo:     memo,
		log:      log.WithField("component", "catalog"),
	}
}

// Category lists a category by installs, optionally paginated. page and perPage are the raw query
// values; supplying only one fails with ranking.ErrBadPagination before anything is read.
func (s *CatalogService) Category(ctx context.Context, category, page, perPage string) ([]views.Listing, error) {
	p, err := ranking.ParsePagination(page, perPage)
	if err != nil {
		return nil, err
	}

	args := append([]string{category}, p.CacheArgs()...)
	return s.memo.GetOrCompute(ctx, EndpointCategory, args, func(ctx context.Context) ([]views.Listing, error) {
		ids, err := s.resolver.Category(ctx, category)
		if err != nil {
			return nil, err
		}
		sorted, err := s.sortByInstalls(ctx, ids)
		if err != nil {
			return nil, err
		}
		return s.Listings(ctx, ranking.Page(sorted, p))
	})
}

func (s *CatalogService) Developer(ctx context.Context, developer string) ([]views.Listing, error) {
	return s.rankedFacet(ctx, s.resolver.Developer, developer)
}

func (s *CatalogService) ProjectGroup(ctx context.Context, group string) ([]views.Listing, error) {
	return s.rankedFacet(ctx, s.resolver.ProjectGroup, group)
}

// RecentlyUpdated lists up to limit apps, most recently updated first
func (s *CatalogService) RecentlyUpdated(ctx context.Context, limit int) ([]views.Listing, error) {
	return s.recent(ctx, EndpointRecentlyUpdated, s.resolver.RecentlyUpdated, limit)
}

// RecentlyAdded lists up to limit apps, newest first
func (s *CatalogService) RecentlyAdded(ctx context.Context, limit int) ([]views.Listing, error) {
	return s.recent(ctx, EndpointRecentlyAdded, s.resolver.RecentlyAdded, limit)
}

// Popular lists the most installed apps. days <= 0 selects the overall ranking; limit <= 0 keeps all.
func (s *CatalogService) Popular(ctx context.Context, days, limit int) ([]views.Listing, error) {
	ids, err := s.stats.Popular(ctx, days)
	if err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return s.Listings(ctx, ids)
}

func (s *CatalogService) Picks(ctx context.Context, pick string) ([]views.Listing, error) {
	ids, err := s.resolver.Picks(ctx, pick)
	if errors.Is(err, index.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.Listings(ctx, ids)
}

func (s *CatalogService) Search(ctx context.Context, query string) ([]views.Listing, error) {
	return s.searcher.Search(ctx, query)
}

func (s *CatalogService) Developers(ctx context.Context) ([]string, error) {
	return s.resolver.Developers(ctx)
}

func (s *CatalogService) ProjectGroups(ctx context.Context) ([]string, error) {
	return s.resolver.ProjectGroups(ctx)
}

// AppIDs lists every app id in the catalog
func (s *CatalogService) AppIDs(ctx context.Context) ([]string, error) {
	return s.resolver.All(ctx)
}

// Appstream returns the stored record of an app as-is
func (s *CatalogService) Appstream(ctx context.Context, id string) (json.RawMessage, error) {
	return s.raw(ctx, store.AppKey(id))
}

func (s *CatalogService) Summary(ctx context.Context, id string) (json.RawMessage, error) {
	return s.raw(ctx, store.SummaryKey(id))
}

func (s *CatalogService) Exceptions(ctx context.Context, id string) (json.RawMessage, error) {
	return s.raw(ctx, store.ExceptionsKey(id))
}

// Stats returns the catalog-wide statistics document
func (s *CatalogService) Stats(ctx context.Context) (json.RawMessage, error) {
	return s.raw(ctx, store.StatsKey)
}

// AppStats returns an app's install statistics. Unless all is set, installs_per_day is cut to the
// trailing days entries, and an app without per-day data is reported as not found.
func (s *CatalogService) AppStats(ctx context.Context, id string, all bool, days int) (*models.AppStats, error) {
	doc, err := s.stats.AppStats(ctx, id)
	if errors.Is(err, stats.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if all {
		return doc, nil
	}
	if len(doc.InstallsPerDay) == 0 {
		return nil, ErrNotFound
	}
	doc.InstallsPerDay = doc.InstallsPerDay.Last(days)
	return doc, nil
}

// Listings projects ids in order, skipping ids without a record
func (s *CatalogService) Listings(ctx context.Context, ids []string) ([]views.Listing, error) {
	apps, err := loadApps(ctx, s.store, ids, s.log)
	if err != nil {
		return nil, err
	}

	out := make([]views.Listing, 0, len(ids))
	for i, id := range ids {
		if l := views.ProjectListing(id, apps[i]); l != nil {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (s *CatalogService) rankedFacet(ctx context.Context, resolve func(context.Context, string) ([]string, error), name string) ([]views.Listing, error) {
	ids, err := resolve(ctx, name)
	if errors.Is(err, index.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	sorted, err := s.sortByInstalls(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.Listings(ctx, sorted)
}

func (s *CatalogService) recent(ctx context.Context, endpoint string, resolve func(context.Context, int) ([]string, error), limit int) ([]views.Listing, error) {
	limit = ranking.ClampLimit(limit, s.resolver.MaxLimit())
	return s.memo.GetOrCompute(ctx, endpoint, []string{strconv.Itoa(limit)}, func(ctx context.Context) ([]views.Listing, error) {
		ids, err := resolve(ctx, limit)
		if err != nil {
			return nil, err
		}
		return s.Listings(ctx, ids)
	})
}

func (s *CatalogService) sortByInstalls(ctx context.Context, ids []string) ([]string, error) {
	installs, err := s.stats.Installs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return ranking.SortByInstalls(ids, installs), nil
}

func (s *CatalogService) raw(ctx context.Context, key string) (json.RawMessage, error) {
	value, err := store.GetRawJSON(ctx, s.store, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	return value, err
}

// loadApps fetches and decodes records in one round trip. Missing or malformed records are nil.
func loadApps(ctx context.Context, r store.Reader, ids []string, log logrus.FieldLogger) ([]*models.App, error) {
	apps := make([]*models.App, len(ids))
	if len(ids) == 0 {
		return apps, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = store.AppKey(id)
	}
	docs, err := r.MGet(ctx, keys...)
	if err != nil {
		return nil, err
	}

	for i, doc := range docs {
		if doc == nil {
			continue
		}
		var app models.App
		if err := json.Unmarshal([]byte(*doc), &app); err != nil {
			log.WithError(err).WithField("app_id", ids[i]).Warn("Skipping malformed app record")
			continue
		}
		apps[i] = &app
	}
	return apps, nil
}
