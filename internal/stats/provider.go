// provider.go
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

// Package stats reads install statistics and popularity rankings. Computing them from download
// logs happens elsewhere; the store-backed provider only aggregates what is already stored.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/localnerve/appcatalog/internal/models"
	"github.com/localnerve/appcatalog/internal/store"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when an app has no statistics
var ErrNotFound = errors.New("stats not found")

// Provider supplies install counts and popularity rankings
type Provider interface {
	// Installs returns the recent install count per id; ids without statistics are absent
	Installs(ctx context.Context, ids []string) (map[string]int64, error)
	// Popular returns ids by descending popularity; days <= 0 selects the overall ranking
	Popular(ctx context.Context, days int) ([]string, error)
	AppStats(ctx context.Context, id string) (*models.AppStats, error)
}

// Summary is the document stored under the stats key
type Summary struct {
	InstallsTotal     int64 `json:"installs_total"`
	InstallsLastMonth int64 `json:"installs_last_month"`
	NumberOfApps      int   `json:"number_of_apps"`
	UpdatedAt         int64 `json:"updated_at"`
}

// StoreProvider serves statistics from app_stats:<id> documents and the popular_zset rankings
type StoreProvider struct {
	store store.Store
	log   logrus.FieldLogger
}

func NewStoreProvider(s store.Store, log logrus.FieldLogger) *StoreProvider {
	return &StoreProvider{store: s, log: log.WithField("component", "stats")}
}

func (p *StoreProvider) Installs(ctx context.Context, ids []string) (map[string]int64, error) {
	docs, err := p.load(ctx, ids)
	if err != nil {
		return nil, err
	}
	installs := make(map[string]int64, len(docs))
	for id, doc := range docs {
		installs[id] = doc.InstallsLastMonth
	}
	return installs, nil
}

func (p *StoreProvider) Popular(ctx context.Context, days int) ([]string, error) {
	key := store.PopularZSet
	if days > 0 {
		key = store.PopularDaysZSet(days)
	}

	ranked, err := p.store.TopScored(ctx, key, 0)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Member < ranked[j].Member
	})

	ids := make([]string, len(ranked))
	for i, m := range ranked {
		ids[i] = m.Member
	}
	return ids, nil
}

func (p *StoreProvider) AppStats(ctx context.Context, id string) (*models.AppStats, error) {
	var doc models.AppStats
	err := store.GetJSON(ctx, p.store, store.AppStatsKey(id), &doc)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Name identifies the provider as a refresh step
func (p *StoreProvider) Name() string {
	return "stats"
}

// Update recomputes the overall popularity ranking and the stats summary for the given ids
func (p *StoreProvider) Update(ctx context.Context, ids []string) error {
	docs, err := p.load(ctx, ids)
	if err != nil {
		return err
	}

	summary := Summary{NumberOfApps: len(ids), UpdatedAt: time.Now().Unix()}
	ranking := make([]store.ScoredMember, 0, len(docs))
	for id, doc := range docs {
		summary.InstallsTotal += doc.InstallsTotal
		summary.InstallsLastMonth += doc.InstallsLastMonth
		ranking = append(ranking, store.ScoredMember{Member: id, Score: float64(doc.InstallsLastMonth)})
	}

	if err := p.store.AddScored(ctx, store.PopularZSet, ranking...); err != nil {
		return fmt.Errorf("failed to update popularity ranking: %w", err)
	}
	if err := store.SetJSON(ctx, p.store, store.StatsKey, summary); err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{"apps": len(ids), "with_stats": len(docs)}).Info("Statistics updated")
	return nil
}

func (p *StoreProvider) load(ctx context.Context, ids []string) (map[string]models.AppStats, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = store.AppStatsKey(id)
	}
	values, err := p.store.MGet(ctx, keys...)
	if err != nil {
		return nil, err
	}

	docs := make(map[string]models.AppStats, len(ids))
	for i, v := range values {
		if v == nil {
			continue
		}
		var doc models.AppStats
		if err := json.Unmarshal([]byte(*v), &doc); err != nil {
			p.log.WithError(err).WithField("app_id", ids[i]).Warn("Skipping malformed app stats")
			continue
		}
		docs[ids[i]] = doc
	}
	return docs, nil
}
