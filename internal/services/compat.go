// compat.go
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
	"errors"

	"github.com/localnerve/appcatalog/internal/enrichment"
	"github.com/localnerve/appcatalog/internal/index"
	"github.com/localnerve/appcatalog/internal/models"
	"github.com/localnerve/appcatalog/internal/ranking"
	"github.com/localnerve/appcatalog/internal/search"
	"github.com/localnerve/appcatalog/internal/store"
	"github.com/localnerve/appcatalog/internal/views"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// CompatRecentlyUpdatedMax bounds the legacy recently-updated listing
const CompatRecentlyUpdatedMax = 50

// CompatService serves the legacy schema from the same indices and enrichment cache as the
// native endpoints. Lists resolve inStoreSinceDate inline; the single app view schedules it.
type CompatService struct {
	store       store.Reader
	resolver    *index.Resolver
	enrich      *enrichment.Cache
	searcher    search.Searcher
	parallelism int
	log         logrus.FieldLogger
}

// NewCompatService wires the legacy read path. parallelism bounds concurrent enrichment lookups per list.
func NewCompatService(s store.Reader, resolver *index.Resolver, enrich *enrichment.Cache, searcher search.Searcher, parallelism int, log logrus.FieldLogger) *CompatService {
	if parallelism < 1 {
		parallelism = 1
	}
	return &CompatService{
		store:       s,
		resolver:    resolver,
		enrich:      enrich,
		searcher:    searcher,
		parallelism: parallelism,
		log:         log.WithField("component", "compat"),
	}
}

// Apps lists every app in id order
func (s *CompatService) Apps(ctx context.Context) ([]views.CompatShortApp, error) {
	ids, err := s.resolver.All(ctx)
	if err != nil {
		return nil, err
	}
	return s.shortApps(ctx, ids)
}

func (s *CompatService) Category(ctx context.Context, category string) ([]views.CompatShortApp, error) {
	ids, err := s.resolver.Category(ctx, category)
	if err != nil {
		return nil, err
	}
	return s.shortApps(ctx, ids)
}

// RecentlyUpdated lists up to limit apps; limit is silently capped at CompatRecentlyUpdatedMax
func (s *CompatService) RecentlyUpdated(ctx context.Context, limit int) ([]views.CompatShortApp, error) {
	ids, err := s.resolver.RecentlyUpdated(ctx, ranking.ClampLimit(limit, CompatRecentlyUpdatedMax))
	if err != nil {
		return nil, err
	}
	return s.shortApps(ctx, ids)
}

// Search never consults the enrichment cache
func (s *CompatService) Search(ctx context.Context, query string) ([]views.CompatShortApp, error) {
	results, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]views.CompatShortApp, len(results))
	for i, l := range results {
		out[i] = views.ProjectCompatSearch(l)
	}
	return out, nil
}

// App returns the full legacy view. A cold enrichment entry reads as null and is fetched in the background.
func (s *CompatService) App(ctx context.Context, id string) (*views.CompatApp, error) {
	var app models.App
	err := store.GetJSON(ctx, s.store, store.AppKey(id), &app)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	since, err := s.enrich.GetOrSchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	return views.ProjectCompat(id, &app, since), nil
}

// shortApps projects ids in order, skipping missing records and blocking on enrichment lookups
func (s *CompatService) shortApps(ctx context.Context, ids []string) ([]views.CompatShortApp, error) {
	apps, err := loadApps(ctx, s.store, ids, s.log)
	if err != nil {
		return nil, err
	}

	projected := make([]*views.CompatShortApp, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, id := range ids {
		if apps[i] == nil {
			continue
		}
		g.Go(func() error {
			since, err := s.enrich.GetOrFetch(gctx, id)
			if err != nil {
				return err
			}
			projected[i] = views.ProjectCompatShort(id, apps[i], since)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]views.CompatShortApp, 0, len(ids))
	for _, p := range projected {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}
