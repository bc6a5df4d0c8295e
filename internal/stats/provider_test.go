// provider_test.go
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

package stats

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/localnerve/appcatalog/internal/logging"
	"github.com/localnerve/appcatalog/internal/store"
	"github.com/localnerve/appcatalog/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) (*StoreProvider, *store.RedisStore) {
	t.Helper()
	s, _ := testsupport.NewStore(t)
	testsupport.MustSet(t, s, store.AppStatsKey("org.a"), `{"installs_total":100,"installs_last_month":10,"installs_per_day":{"2024-01-01":4,"2024-01-02":6}}`)
	testsupport.MustSet(t, s, store.AppStatsKey("org.b"), `{"installs_total":50,"installs_last_month":30}`)
	testsupport.MustSet(t, s, store.AppStatsKey("org.bad"), `not json`)
	return NewStoreProvider(s, logging.Discard()), s
}

func TestInstalls(t *testing.T) {
	p, _ := seed(t)
	installs, err := p.Installs(context.Background(), []string{"org.a", "org.b", "org.c", "org.bad"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"org.a": 10, "org.b": 30}, installs)
}

func TestAppStats(t *testing.T) {
	p, _ := seed(t)
	doc, err := p.AppStats(context.Background(), "org.a")
	require.NoError(t, err)
	assert.Equal(t, int64(100), doc.InstallsTotal)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, doc.InstallsPerDay.Keys())

	_, err = p.AppStats(context.Background(), "org.c")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAndPopular(t *testing.T) {
	p, s := seed(t)
	ctx := context.Background()

	require.NoError(t, p.Update(ctx, []string{"org.a", "org.b", "org.c"}))

	popular, err := p.Popular(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"org.b", "org.a"}, popular)

	raw, err := s.Get(ctx, store.StatsKey)
	require.NoError(t, err)
	var summary Summary
	require.NoError(t, json.Unmarshal([]byte(raw), &summary))
	assert.Equal(t, int64(150), summary.InstallsTotal)
	assert.Equal(t, int64(40), summary.InstallsLastMonth)
	assert.Equal(t, 3, summary.NumberOfApps)
}

func TestPopularDays(t *testing.T) {
	p, s := seed(t)
	testsupport.MustAddScored(t, s, store.PopularDaysZSet(7), map[string]float64{"org.x": 5, "org.w": 5, "org.y": 9})

	popular, err := p.Popular(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"org.y", "org.w", "org.x"}, popular)
}
