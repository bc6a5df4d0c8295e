// embed.go
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

// Package data embeds the demo catalog used to seed development stores.
package data

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/localnerve/appcatalog/internal/store"
)

//go:embed catalog.json
var CatalogJSON []byte

// Catalog is the raw content of the demo catalog, keyed by app id
type Catalog struct {
	Apps       map[string]json.RawMessage `json:"apps"`
	Summaries  map[string]json.RawMessage `json:"summaries"`
	AppStats   map[string]json.RawMessage `json:"app_stats"`
	Exceptions map[string]json.RawMessage `json:"exceptions"`
	Picks      map[string][]string        `json:"picks"`
}

// LoadCatalog parses the embedded catalog
func LoadCatalog() (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(CatalogJSON, &c); err != nil {
		return nil, fmt.Errorf("failed to parse embedded catalog: %w", err)
	}
	return &c, nil
}

// IDs returns the app ids in sorted order
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.Apps))
	for id := range c.Apps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Seed writes the catalog the way an ingest would leave it: records, apps:index and the per-app
// documents. Derived indices are left to a refresh run.
func (c *Catalog) Seed(ctx context.Context, w store.Writer) error {
	ids := c.IDs()
	for _, id := range ids {
		if err := w.Set(ctx, store.AppKey(id), string(c.Apps[id])); err != nil {
			return err
		}
	}
	if err := w.AddMembers(ctx, store.AppsIndex, ids...); err != nil {
		return err
	}

	docs := []struct {
		key  func(string) string
		docs map[string]json.RawMessage
	}{
		{store.SummaryKey, c.Summaries},
		{store.AppStatsKey, c.AppStats},
		{store.ExceptionsKey, c.Exceptions},
	}
	for _, d := range docs {
		for id, doc := range d.docs {
			if err := w.Set(ctx, d.key(id), string(doc)); err != nil {
				return err
			}
		}
	}

	for name, picks := range c.Picks {
		if err := store.SetJSON(ctx, w, store.PicksKey(name), picks); err != nil {
			return err
		}
	}
	return nil
}
