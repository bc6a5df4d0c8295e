// resolver_test.go
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

package index

import (
	"context"
	"testing"

	"github.com/localnerve/appcatalog/internal/store"
	"github.com/localnerve/appcatalog/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryIsLexicographic(t *testing.T) {
	s, _ := testsupport.NewStore(t)
	testsupport.MustAddMembers(t, s, store.CategoryKey("audio"), "org.b", "org.a")
	r := NewResolver(s, 250)

	for i := 0; i < 3; i++ {
		ids, err := r.Category(context.Background(), "audio")
		require.NoError(t, err)
		assert.Equal(t, []string{"org.a", "org.b"}, ids)
	}
}

func TestEmptyFacets(t *testing.T) {
	s, _ := testsupport.NewStore(t)
	r := NewResolver(s, 250)
	ctx := context.Background()

	ids, err := r.Category(ctx, "nothing")
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = r.RecentlyAdded(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = r.Developer(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.ProjectGroup(ctx, "none")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Picks(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeveloperAndIndexes(t *testing.T) {
	s, _ := testsupport.NewStore(t)
	testsupport.MustAddMembers(t, s, store.DeveloperKey("GNOME"), "org.gnome.b", "org.gnome.a")
	testsupport.MustAddMembers(t, s, store.DevelopersIndex, "KDE", "GNOME")
	testsupport.MustAddMembers(t, s, store.AppsIndex, "org.z", "org.gnome.a", "org.gnome.b")
	testsupport.MustSet(t, s, store.PicksKey("games"), `["org.z","org.gnome.a"]`)
	r := NewResolver(s, 250)
	ctx := context.Background()

	ids, err := r.Developer(ctx, "GNOME")
	require.NoError(t, err)
	assert.Equal(t, []string{"org.gnome.a", "org.gnome.b"}, ids)

	names, err := r.Developers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"GNOME", "KDE"}, names)

	all, err := r.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"org.gnome.a", "org.gnome.b", "org.z"}, all)

	picks, err := r.Picks(ctx, "games")
	require.NoError(t, err)
	assert.Equal(t, []string{"org.z", "org.gnome.a"}, picks)
}

func TestRecencyOrderAndTies(t *testing.T) {
	s, _ := testsupport.NewStore(t)
	testsupport.MustAddScored(t, s, store.RecentlyUpdatedZSet, map[string]float64{
		"org.a": 10, "org.d": 20, "org.c": 20, "org.b": 20, "org.e": 5, "org.f": 30,
	})
	r := NewResolver(s, 250)
	ctx := context.Background()

	ids, err := r.RecentlyUpdated(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"org.f", "org.b", "org.c"}, ids)

	ids, err = r.RecentlyUpdated(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"org.f", "org.b", "org.c", "org.d", "org.a", "org.e"}, ids)

	ids, err = r.RecentlyUpdated(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRecencyClamp(t *testing.T) {
	s, _ := testsupport.NewStore(t)
	testsupport.MustAddScored(t, s, store.NewAppsZSet, map[string]float64{
		"org.a": 1, "org.b": 2, "org.c": 3, "org.d": 4,
	})
	r := NewResolver(s, 2)

	ids, err := r.RecentlyAdded(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, []string{"org.d", "org.c"}, ids)
	assert.Equal(t, 2, r.MaxLimit())
}
