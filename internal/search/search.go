// search.go
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

// Package search answers free-text queries over the catalog. Ranking quality is not a concern
// of the default implementation.
package search

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/localnerve/appcatalog/internal/index"
	"github.com/localnerve/appcatalog/internal/models"
	"github.com/localnerve/appcatalog/internal/store"
	"github.com/localnerve/appcatalog/internal/views"
)

// Searcher finds apps matching a query
type Searcher interface {
	Search(ctx context.Context, query string) ([]views.Listing, error)
}

const batchSize = 200

// StoreSearcher matches the query as a case-insensitive substring of id, name or summary,
// returning hits in id order
type StoreSearcher struct {
	store    store.Reader
	resolver *index.Resolver
}

func NewStoreSearcher(s store.Reader, resolver *index.Resolver) *StoreSearcher {
	return &StoreSearcher{store: s, resolver: resolver}
}

func (s *StoreSearcher) Search(ctx context.Context, query string) ([]views.Listing, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	results := []views.Listing{}
	if needle == "" {
		return results, nil
	}

	ids, err := s.resolver.All(ctx)
	if err != nil {
		return nil, err
	}

	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		keys := make([]string, len(batch))
		for i, id := range batch {
			keys[i] = store.AppKey(id)
		}
		docs, err := s.store.MGet(ctx, keys...)
		if err != nil {
			return nil, err
		}

		for i, doc := range docs {
			if doc == nil {
				continue
			}
			var app models.App
			if err := json.Unmarshal([]byte(*doc), &app); err != nil {
				continue
			}
			if matches(needle, batch[i], &app) {
				results = append(results, *views.ProjectListing(batch[i], &app))
			}
		}
	}
	return results, nil
}

func matches(needle, id string, app *models.App) bool {
	if strings.Contains(strings.ToLower(id), needle) {
		return true
	}
	for _, field := range []*string{app.Name, app.Summary} {
		if field != nil && strings.Contains(strings.ToLower(*field), needle) {
			return true
		}
	}
	return false
}
