// refresh.go
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

// Package refresh rebuilds derived catalog state after new data has been loaded into the store.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/appcatalog/internal/metrics"
	"github.com/localnerve/appcatalog/internal/models"
	"github.com/localnerve/appcatalog/internal/store"
	"github.com/sirupsen/logrus"
)

// Ingester loads the current catalog and reports which ids are new since the previous run
type Ingester interface {
	Ingest(ctx context.Context) (newIDs, allIDs []string, err error)
}

// Updater recomputes one aggregate (summary, picks, stats, exceptions)
type Updater interface {
	Name() string
	Update(ctx context.Context, allIDs []string) error
}

// Invalidator drops memoized results
type Invalidator interface {
	InvalidateAll()
}

// Result describes a completed run
type Result struct {
	RunID     string        `json:"run_id"`
	NewApps   int           `json:"new_apps"`
	TotalApps int           `json:"total_apps"`
	Duration  time.Duration `json:"duration_ns"`
}

// Refresher runs the refresh pipeline. Runs never overlap.
type Refresher struct {
	store        store.Store
	ingester     Ingester
	updaters     []Updater
	invalidators []Invalidator
	log          logrus.FieldLogger

	mu sync.Mutex
}

// New creates a refresher. Updaters run in the given order.
func New(s store.Store, ingester Ingester, updaters []Updater, invalidators []Invalidator, log logrus.FieldLogger) *Refresher {
	return &Refresher{
		store:        s,
		ingester:     ingester,
		updaters:     updaters,
		invalidators: invalidators,
		log:          log.WithField("component", "refresh"),
	}
}

// Run re-ingests, recomputes the aggregates, records new apps in new_apps_zset, commits apps:known
// and finally invalidates memoized results. Any failure aborts the run before apps:known is
// committed, so the next run reports the same new apps again.
func (r *Refresher) Run(ctx context.Context) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	runID := uuid.NewString()
	log := r.log.WithField("run_id", runID)
	log.Info("Refresh started")

	result, err := r.run(ctx, runID, log)
	if err != nil {
		metrics.RefreshRuns.WithLabelValues("failure").Inc()
		log.WithError(err).Error("Refresh failed")
		return nil, err
	}

	result.Duration = time.Since(start)
	metrics.RefreshRuns.WithLabelValues("success").Inc()
	log.WithFields(logrus.Fields{
		"new_apps":   result.NewApps,
		"total_apps": result.TotalApps,
		"duration":   result.Duration.String(),
	}).Info("Refresh finished")
	return result, nil
}

func (r *Refresher) run(ctx context.Context, runID string, log logrus.FieldLogger) (*Result, error) {
	newIDs, allIDs, err := r.ingester.Ingest(ctx)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	for _, u := range r.updaters {
		if err := u.Update(ctx, allIDs); err != nil {
			return nil, fmt.Errorf("%s update: %w", u.Name(), err)
		}
		log.WithField("step", u.Name()).Debug("Refresh step done")
	}

	if err := r.recordNewApps(ctx, newIDs); err != nil {
		return nil, err
	}
	if err := r.store.ReplaceMembers(ctx, store.AppsKnown, allIDs...); err != nil {
		return nil, fmt.Errorf("known apps: %w", err)
	}

	for _, inv := range r.invalidators {
		inv.InvalidateAll()
	}

	return &Result{RunID: runID, NewApps: len(newIDs), TotalApps: len(allIDs)}, nil
}

// recordNewApps scores new apps by their summary timestamp. Apps without a summary are skipped.
func (r *Refresher) recordNewApps(ctx context.Context, newIDs []string) error {
	if len(newIDs) == 0 {
		return nil
	}

	members := make([]store.ScoredMember, 0, len(newIDs))
	for _, id := range newIDs {
		var summary models.Summary
		err := store.GetJSON(ctx, r.store, store.SummaryKey(id), &summary)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("new apps: %w", err)
		}
		members = append(members, store.ScoredMember{Member: id, Score: float64(summary.Timestamp.Int64())})
	}

	if err := r.store.AddScored(ctx, store.NewAppsZSet, members...); err != nil {
		return fmt.Errorf("new apps: %w", err)
	}
	return nil
}
