// ranking_test.go
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

package ranking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	p, err := ParsePagination("", "")
	require.NoError(t, err)
	assert.False(t, p.Enabled)

	p, err = ParsePagination("2", "10")
	require.NoError(t, err)
	assert.Equal(t, Pagination{Page: 2, PerPage: 10, Enabled: true}, p)

	for _, tc := range [][2]string{{"1", ""}, {"", "5"}, {"one", "5"}, {"1", "five"}} {
		_, err := ParsePagination(tc[0], tc[1])
		assert.ErrorIs(t, err, ErrBadPagination, "page=%q per_page=%q", tc[0], tc[1])
	}
}

func TestPage(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}

	assert.Equal(t, ids, Page(ids, Pagination{}))
	assert.Equal(t, []string{"a", "b"}, Page(ids, Pagination{Page: 1, PerPage: 2, Enabled: true}))
	assert.Equal(t, []string{"e"}, Page(ids, Pagination{Page: 3, PerPage: 2, Enabled: true}))
	assert.Empty(t, Page(ids, Pagination{Page: 4, PerPage: 2, Enabled: true}))
	assert.Empty(t, Page(ids, Pagination{Page: 0, PerPage: 2, Enabled: true}))
	assert.Empty(t, Page(ids, Pagination{Page: 1, PerPage: 0, Enabled: true}))
}

func TestPageWithHugeValues(t *testing.T) {
	ids := []string{"a", "b", "c"}

	p, err := ParsePagination("3", "9223372036854775807")
	require.NoError(t, err)
	assert.Empty(t, Page(ids, p))

	p, err = ParsePagination("1", "9223372036854775807")
	require.NoError(t, err)
	assert.Equal(t, ids, Page(ids, p))

	p, err = ParsePagination("9223372036854775807", "2")
	require.NoError(t, err)
	assert.Empty(t, Page(ids, p))
}

func TestPagesConcatenateToWhole(t *testing.T) {
	ids := make([]string, 23)
	for i := range ids {
		ids[i] = fmt.Sprintf("org.app%02d", i)
	}

	for perPage := 1; perPage <= 25; perPage++ {
		var all []string
		for page := 1; ; page++ {
			chunk := Page(ids, Pagination{Page: page, PerPage: perPage, Enabled: true})
			if len(chunk) == 0 {
				break
			}
			all = append(all, chunk...)
		}
		assert.Equal(t, ids, all, "per_page=%d", perPage)
	}
}

func TestSortByInstalls(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	installs := map[string]int64{"c": 10, "e": 50, "a": 10}

	sorted := SortByInstalls(ids, installs)
	assert.Equal(t, []string{"e", "a", "c", "b", "d"}, sorted)
	// input untouched
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids)

	assert.Equal(t, ids, SortByInstalls(ids, nil))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 50, ClampLimit(500, 50))
	assert.Equal(t, 10, ClampLimit(10, 50))
	assert.Equal(t, 0, ClampLimit(-3, 50))
}

func TestCategoryScenario(t *testing.T) {
	p, err := ParsePagination("1", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"org.a"}, Page(SortByInstalls([]string{"org.a", "org.b"}, nil), p))
}
