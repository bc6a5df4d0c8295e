// search_test.go
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

package search

import (
	"context"
	"testing"

	"github.com/localnerve/appcatalog/internal/index"
	"github.com/localnerve/appcatalog/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSearcher(t *testing.T) {
	s, _ := testsupport.NewStore(t)
	testsupport.SeedApp(t, s, "org.gnome.Maps", testsupport.MinimalApp("org.gnome.Maps", "Maps"))
	testsupport.SeedApp(t, s, "org.kde.marble", testsupport.MinimalApp("org.kde.marble", "Marble"))
	testsupport.SeedApp(t, s, "org.audacity.Audacity", testsupport.MinimalApp("org.audacity.Audacity", "Audacity"))
	testsupport.MustAddMembers(t, s, "apps:index", "org.missing")

	searcher := NewStoreSearcher(s, index.NewResolver(s, 250))
	ctx := context.Background()

	results, err := searcher.Search(ctx, "MAPS")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "org.gnome.Maps", results[0].ID)

	results, err = searcher.Search(ctx, "org.")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "org.audacity.Audacity", results[0].ID)
	assert.Equal(t, "org.kde.marble", results[2].ID)

	results, err = searcher.Search(ctx, "audacity summary")
	require.NoError(t, err)
	require.Len(t, results, 1)

	results, err = searcher.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, results)
}
