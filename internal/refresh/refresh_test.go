// refresh_test.go
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
	"errors"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/localnerve/appcatalog/internal/logging"
	"github.com/localnerve/appcatalog/internal/store"
	"github.com/localnerve/appcatalog/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingInvalidator struct{ calls atomic.Int32 }

func (c *countingInvalidator) InvalidateAll() { c.calls.Add(1) }

func members(t *testing.T, s store.Store, key string) []string {
	t.Helper()
	m, err := s.Members(context.Background(), key)
	require.NoError(t, err)
	sort.Strings(m)
	return m
}

func newRefresher(t *testing.T, s store.Store, inv Invalidator, extra ...Updater) *Refresher {
	t.Helper()
	log := logging.Discard()
	updaters := append([]Updater{NewSummaryUpdater(s), NewPicksUpdater(s, "games"), Noop("exceptions")}, extra...)
	return New(s, NewIndexIngester(s, log), updaters, []Invalidator{inv}, log)
}

func TestRunRebuildsIndicesAndNewApps(t *testing.T) {
	s, _ := testsupport.NewStore(t)
	testsupport.SeedApp(t, s, "org.a", testsupport.FullApp("org.a", "A"))
	testsupport.SeedApp(t, s, "org.b", testsupport.MinimalApp("org.b", "B"))
	testsupport.MustSet(t, s, store.SummaryKey("org.b"), `{"timestamp":1700000000}`)
	testsupport.MustSet(t, s, store.PicksKey("games"), `["org.a","org.gone"]`)
	testsupport.MustAddMembers(t, s, store.DevelopersIndex, "Old Developer")
	testsupport.MustAddMembers(t, s, store.DeveloperKey("Old Developer"), "org.old")

	inv := &countingInvalidator{}
	r := newRefresher(t, s, inv)
	ctx := context.Background()

	result, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.NewApps)
	assert.Equal(t, 2, result.TotalApps)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, int32(1), inv.calls.Load())

	assert.Equal(t, []string{"org.a"}, members(t, s, store.CategoryKey("Audio")))
	assert.Equal(t, []string{"Example Developers"}, members(t, s, store.DevelopersIndex))
	assert.Empty(t, members(t, s, store.DeveloperKey("Old Developer")))
	assert.Equal(t, []string{"org.a", "org.b"}, members(t, s, store.AppsKnown))

	added, err := s.TopScored(ctx, store.NewAppsZSet, 0)
	require.NoError(t, err)
	assert.Equal(t, []store.ScoredMember{
		{Member: "org.b", Score: 1700000000},
		{Member: "org.a", Score: 1600000000},
	}, added)

	updated, err := s.TopScored(ctx, store.RecentlyUpdatedZSet, 0)
	require.NoError(t, err)
	assert.Equal(t, []store.ScoredMember{{Member: "org.a", Score: 1600000000}}, updated)

	picks, err := s.Get(ctx, store.PicksKey("games"))
	require.NoError(t, err)
	assert.JSONEq(t, `["org.a"]`, picks)

	// second run finds nothing new
	testsupport.SeedApp(t, s, "org.c", testsupport.MinimalApp("org.c", "C"))
	result, err = r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.NewApps)
	assert.Equal(t, int32(2), inv.calls.Load())
}

func TestFailedStepSkipsInvalidation(t *testing.T) {
	s, _ := testsupport.NewStore(t)
	testsupport.SeedApp(t, s, "org.a", testsupport.MinimalApp("org.a", "A"))

	inv := &countingInvalidator{}
	boom := errors.New("boom")
	r := newRefresher(t, s, inv, UpdaterFunc{StepName: "stats", Fn: func(context.Context, []string) error { return boom }})

	ctx := context.Background()
	_, err := r.Run(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(0), inv.calls.Load())
	assert.Empty(t, members(t, s, store.AppsKnown))

	// the retry still sees org.a as new
	result, err := newRefresher(t, s, inv).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.NewApps)
	assert.Equal(t, []string{"org.a"}, members(t, s, store.AppsKnown))
	assert.Equal(t, int32(1), inv.calls.Load())
}

func TestRunFailsWhenStoreIsDown(t *testing.T) {
	s, mr := testsupport.NewStore(t)
	mr.Close()

	inv := &countingInvalidator{}
	_, err := newRefresher(t, s, inv).Run(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(0), inv.calls.Load())
}

func TestRunsAreExclusive(t *testing.T) {
	s, _ := testsupport.NewStore(t)
	var active, overlap atomic.Int32
	step := UpdaterFunc{StepName: "probe", Fn: func(context.Context, []string) error {
		if active.Add(1) > 1 {
			overlap.Add(1)
		}
		defer active.Add(-1)
		return nil
	}}
	r := newRefresher(t, s, &countingInvalidator{}, step)

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			_, _ = r.Run(context.Background())
			done <- struct{}{}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
	assert.Equal(t, int32(0), overlap.Load())
}
