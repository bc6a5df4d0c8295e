// resolver.go
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

// Package index resolves catalog facets (category, developer, recency, ...) into ordered
// sequences of application ids.
package index

import (
	"context"
	"errors"
	"sort"

	"github.com/localnerve/appcatalog/internal/ranking"
	"github.com/localnerve/appcatalog/internal/store"
)

// ErrNotFound is returned for developer, project group and picks facets with no members
var ErrNotFound = errors.New("facet not found")

// Resolver maps facets onto the store's set and sorted-set indices
type Resolver struct {
	store    store.Reader
	maxLimit int
}

// NewResolver creates a resolver. maxLimit bounds recency facets.
func NewResolver(s store.Reader, maxLimit int) *Resolver {
	return &Resolver{store: s, maxLimit: maxLimit}
}

// MaxLimit is the server side bound for recency facets
func (r *Resolver) MaxLimit() int {
	return r.maxLimit
}

// Category returns the apps tagged with a category, sorted by id. Unknown categories are empty.
func (r *Resolver) Category(ctx context.Context, category string) ([]string, error) {
	return r.sortedMembers(ctx, store.CategoryKey(category))
}

// Developer returns a developer's apps sorted by id, or ErrNotFound
func (r *Resolver) Developer(ctx context.Context, developer string) ([]string, error) {
	return r.nonEmpty(r.sortedMembers(ctx, store.DeveloperKey(developer)))
}

// ProjectGroup returns a project group's apps sorted by id, or ErrNotFound
func (r *Resolver) ProjectGroup(ctx context.Context, group string) ([]string, error) {
	return r.nonEmpty(r.sortedMembers(ctx, store.ProjectGroupKey(group)))
}

// All returns every known app id, sorted
func (r *Resolver) All(ctx context.Context) ([]string, error) {
	return r.sortedMembers(ctx, store.AppsIndex)
}

func (r *Resolver) Developers(ctx context.Context) ([]string, error) {
	return r.sortedMembers(ctx, store.DevelopersIndex)
}

func (r *Resolver) ProjectGroups(ctx context.Context) ([]string, error) {
	return r.sortedMembers(ctx, store.ProjectGroupsIndex)
}

// Picks returns a curated list in its stored order, or ErrNotFound
func (r *Resolver) Picks(ctx context.Context, pick string) ([]string, error) {
	var ids []string
	err := store.GetJSON(ctx, r.store, store.PicksKey(pick), &ids)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.nonEmpty(ids, nil)
}

// RecentlyUpdated returns up to limit ids, most recently updated first
func (r *Resolver) RecentlyUpdated(ctx context.Context, limit int) ([]string, error) {
	return r.Scored(ctx, store.RecentlyUpdatedZSet, limit)
}

// RecentlyAdded returns up to limit ids, newest first
func (r *Resolver) RecentlyAdded(ctx context.Context, limit int) ([]string, error) {
	return r.Scored(ctx, store.NewAppsZSet, limit)
}

// Scored returns up to limit members of a sorted set by descending score, ties by id ascending.
// limit is clamped to the resolver maximum.
func (r *Resolver) Scored(ctx context.Context, key string, limit int) ([]string, error) {
	limit = ranking.ClampLimit(limit, r.maxLimit)
	if limit == 0 {
		return []string{}, nil
	}

	top, err := r.store.TopScored(ctx, key, limit)
	if err != nil {
		return nil, err
	}

	// A full window may cut through a run of equal scores; the backend orders that run its own
	// way, so pull the whole run and order it here.
	if len(top) == limit {
		boundary := top[len(top)-1].Score
		tied, err := r.store.MembersWithScore(ctx, key, boundary)
		if err != nil {
			return nil, err
		}
		above := top[:0:0]
		for _, m := range top {
			if m.Score > boundary {
				above = append(above, m)
			}
		}
		for _, id := range tied {
			above = append(above, store.ScoredMember{Member: id, Score: boundary})
		}
		top = above
	}

	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Score != top[j].Score {
			return top[i].Score > top[j].Score
		}
		return top[i].Member < top[j].Member
	})
	if len(top) > limit {
		top = top[:limit]
	}

	ids := make([]string, len(top))
	for i, m := range top {
		ids[i] = m.Member
	}
	return ids, nil
}

func (r *Resolver) sortedMembers(ctx context.Context, key string) ([]string, error) {
	members, err := r.store.Members(ctx, key)
	if err != nil {
		return nil, err
	}
	sort.Strings(members)
	return members, nil
}

func (r *Resolver) nonEmpty(ids []string, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrNotFound
	}
	return ids, nil
}
