// ingest.go
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

package refresh

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/localnerve/appcatalog/internal/models"
	"github.com/localnerve/appcatalog/internal/store"
	"github.com/sirupsen/logrus"
)

// IndexIngester treats apps:index as the loaded catalog. It rebuilds the facet indices from the
// stored records and diffs the catalog against apps:known to find new apps. apps:known itself is
// only committed by the Refresher once the whole run has succeeded.
type IndexIngester struct {
	store store.Store
	log   logrus.FieldLogger
}

func NewIndexIngester(s store.Store, log logrus.FieldLogger) *IndexIngester {
	return &IndexIngester{store: s, log: log.WithField("component", "ingest")}
}

func (i *IndexIngester) Ingest(ctx context.Context) ([]string, []string, error) {
	allIDs, err := i.store.Members(ctx, store.AppsIndex)
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(allIDs)

	known, err := i.store.Members(ctx, store.AppsKnown)
	if err != nil {
		return nil, nil, err
	}
	seen := make(map[string]struct{}, len(known))
	for _, id := range known {
		seen[id] = struct{}{}
	}
	newIDs := []string{}
	for _, id := range allIDs {
		if _, ok := seen[id]; !ok {
			newIDs = append(newIDs, id)
		}
	}

	if err := i.rebuildFacets(ctx, allIDs); err != nil {
		return nil, nil, err
	}

	return newIDs, allIDs, nil
}

type facets struct {
	categories    map[string][]string
	developers    map[string][]string
	projectGroups map[string][]string
	updated       []store.ScoredMember
}

func (i *IndexIngester) rebuildFacets(ctx context.Context, ids []string) error {
	f := facets{
		categories:    map[string][]string{},
		developers:    map[string][]string{},
		projectGroups: map[string][]string{},
	}

	keys := make([]string, len(ids))
	for n, id := range ids {
		keys[n] = store.AppKey(id)
	}
	docs, err := i.store.MGet(ctx, keys...)
	if err != nil {
		return err
	}

	for n, doc := range docs {
		if doc == nil {
			continue
		}
		id := ids[n]
		var app models.App
		if err := json.Unmarshal([]byte(*doc), &app); err != nil {
			i.log.WithError(err).WithField("app_id", id).Warn("Skipping malformed record")
			continue
		}
		for _, category := range app.Categories.Slice() {
			f.categories[category] = append(f.categories[category], id)
		}
		if app.DeveloperName != nil && *app.DeveloperName != "" {
			f.developers[*app.DeveloperName] = append(f.developers[*app.DeveloperName], id)
		}
		if app.ProjectGroup != nil && *app.ProjectGroup != "" {
			f.projectGroups[*app.ProjectGroup] = append(f.projectGroups[*app.ProjectGroup], id)
		}
		if len(app.Releases) > 0 && app.Releases[0].Timestamp != nil {
			f.updated = append(f.updated, store.ScoredMember{Member: id, Score: float64(app.Releases[0].Timestamp.Int64())})
		}
	}

	for category, members := range f.categories {
		if err := i.store.ReplaceMembers(ctx, store.CategoryKey(category), members...); err != nil {
			return fmt.Errorf("category %s: %w", category, err)
		}
	}
	if err := i.replaceNamed(ctx, store.DevelopersIndex, store.DeveloperKey, f.developers); err != nil {
		return err
	}
	if err := i.replaceNamed(ctx, store.ProjectGroupsIndex, store.ProjectGroupKey, f.projectGroups); err != nil {
		return err
	}
	return i.store.AddScored(ctx, store.RecentlyUpdatedZSet, f.updated...)
}

// replaceNamed rewrites every named set, empties sets whose name disappeared, then swaps the name index
func (i *IndexIngester) replaceNamed(ctx context.Context, indexKey string, key func(string) string, groups map[string][]string) error {
	previous, err := i.store.Members(ctx, indexKey)
	if err != nil {
		return err
	}
	for _, name := range previous {
		if _, ok := groups[name]; !ok {
			if err := i.store.ReplaceMembers(ctx, key(name)); err != nil {
				return err
			}
		}
	}

	names := make([]string, 0, len(groups))
	for name, members := range groups {
		if err := i.store.ReplaceMembers(ctx, key(name), members...); err != nil {
			return err
		}
		names = append(names, name)
	}
	return i.store.ReplaceMembers(ctx, indexKey, names...)
}
