// updaters.go
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
	"errors"

	"github.com/localnerve/appcatalog/internal/models"
	"github.com/localnerve/appcatalog/internal/store"
	"github.com/localnerve/appcatalog/internal/types"
)

// UpdaterFunc adapts a function to Updater
type UpdaterFunc struct {
	StepName string
	Fn       func(ctx context.Context, allIDs []string) error
}

func (u UpdaterFunc) Name() string { return u.StepName }

func (u UpdaterFunc) Update(ctx context.Context, allIDs []string) error {
	if u.Fn == nil {
		return nil
	}
	return u.Fn(ctx, allIDs)
}

// Noop is a step whose data is maintained outside this service
func Noop(name string) Updater {
	return UpdaterFunc{StepName: name}
}

// SummaryUpdater writes summary:<id> for apps that have none, stamped with the latest release time
type SummaryUpdater struct {
	store store.Store
}

func NewSummaryUpdater(s store.Store) *SummaryUpdater {
	return &SummaryUpdater{store: s}
}

func (u *SummaryUpdater) Name() string { return "summary" }

func (u *SummaryUpdater) Update(ctx context.Context, allIDs []string) error {
	for _, id := range allIDs {
		_, err := u.store.Get(ctx, store.SummaryKey(id))
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		var app models.App
		err = store.GetJSON(ctx, u.store, store.AppKey(id), &app)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		summary := models.Summary{}
		if len(app.Releases) > 0 && app.Releases[0].Timestamp != nil {
			summary.Timestamp = *app.Releases[0].Timestamp
		}
		if err := store.SetJSON(ctx, u.store, store.SummaryKey(id), summary); err != nil {
			return err
		}
	}
	return nil
}

// PicksUpdater removes ids that left the catalog from the curated picks lists
type PicksUpdater struct {
	store store.Store
	picks []string
}

// NewPicksUpdater maintains the named picks lists
func NewPicksUpdater(s store.Store, picks ...string) *PicksUpdater {
	return &PicksUpdater{store: s, picks: picks}
}

func (u *PicksUpdater) Name() string { return "picks" }

func (u *PicksUpdater) Update(ctx context.Context, allIDs []string) error {
	current := make(map[string]struct{}, len(allIDs))
	for _, id := range allIDs {
		current[id] = struct{}{}
	}

	for _, pick := range u.picks {
		var ids types.FlexList[string]
		err := store.GetJSON(ctx, u.store, store.PicksKey(pick), &ids)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		kept := make([]string, 0, len(ids))
		for _, id := range ids {
			if _, ok := current[id]; ok {
				kept = append(kept, id)
			}
		}
		if len(kept) == len(ids) {
			continue
		}
		data, _ := json.Marshal(kept)
		if err := u.store.Set(ctx, store.PicksKey(pick), string(data)); err != nil {
			return err
		}
	}
	return nil
}
