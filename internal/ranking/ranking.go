// ranking.go
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

// Package ranking orders resolved identifier sequences by popularity and slices them into pages.
package ranking

import (
	"errors"
	"sort"
	"strconv"
)

// ErrBadPagination is returned when only one of page / per_page is supplied, or either is not an integer
var ErrBadPagination = errors.New("page and per_page must be supplied together")

// Pagination is a parsed page / per_page pair. The zero value disables paging.
type Pagination struct {
	Page    int
	PerPage int
	Enabled bool
}

// ParsePagination validates the raw query values. Both empty yields a disabled Pagination.
func ParsePagination(page, perPage string) (Pagination, error) {
	if page == "" && perPage == "" {
		return Pagination{}, nil
	}
	if page == "" || perPage == "" {
		return Pagination{}, ErrBadPagination
	}

	p, err := strconv.Atoi(page)
	if err != nil {
		return Pagination{}, ErrBadPagination
	}
	pp, err := strconv.Atoi(perPage)
	if err != nil {
		return Pagination{}, ErrBadPagination
	}

	return Pagination{Page: p, PerPage: pp, Enabled: true}, nil
}

// CacheArgs renders the pagination for a query cache key
func (p Pagination) CacheArgs() []string {
	if !p.Enabled {
		return []string{"", ""}
	}
	return []string{strconv.Itoa(p.Page), strconv.Itoa(p.PerPage)}
}

// Page returns the half-open slice [per_page*(page-1), per_page*page) of ids.
// Out of range pages are empty.
func Page(ids []string, p Pagination) []string {
	if !p.Enabled {
		return ids
	}
	if p.Page < 1 || p.PerPage < 1 {
		return []string{}
	}

	// counted by division so huge page sizes cannot overflow
	pages := len(ids) / p.PerPage
	if len(ids)%p.PerPage != 0 {
		pages++
	}
	if p.Page > pages {
		return []string{}
	}
	start := p.PerPage * (p.Page - 1)
	end := start + min(p.PerPage, len(ids)-start)
	return ids[start:end]
}

// SortByInstalls orders ids by descending install count. Ids missing from installs keep their
// relative order and sort after every ranked id.
func SortByInstalls(ids []string, installs map[string]int64) []string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)

	sort.SliceStable(sorted, func(i, j int) bool {
		ci, iok := installs[sorted[i]]
		cj, jok := installs[sorted[j]]
		switch {
		case iok && jok:
			return ci > cj
		case iok:
			return true
		default:
			return false
		}
	})
	return sorted
}

// ClampLimit bounds limit to [0, max]
func ClampLimit(limit, max int) int {
	if limit < 0 {
		return 0
	}
	if limit > max {
		return max
	}
	return limit
}
