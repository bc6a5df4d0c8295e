// keys.go
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

package store

import "strconv"

// Index and document keys of the catalog layout
const (
	AppsIndex           = "apps:index"
	AppsKnown           = "apps:known"
	DevelopersIndex     = "developers:index"
	ProjectGroupsIndex  = "projectgroups:index"
	NewAppsZSet         = "new_apps_zset"
	RecentlyUpdatedZSet = "recently_updated_zset"
	PopularZSet         = "popular_zset"
	StatsKey            = "stats"
)

func AppKey(id string) string { return "apps:" + id }

func SummaryKey(id string) string { return "summary:" + id }

// CreatedAtKey holds the enrichment value (YYYY-MM-DD) for an app
func CreatedAtKey(id string) string { return "created_at:" + id }

func ExceptionsKey(id string) string { return "exc:" + id }

func AppStatsKey(id string) string { return "app_stats:" + id }

func CategoryKey(name string) string { return "categories:" + name }

func DeveloperKey(name string) string { return "developers:" + name }

func ProjectGroupKey(name string) string { return "projectgroups:" + name }

func PicksKey(name string) string { return "picks:" + name }

// PopularDaysZSet is the popularity ranking over the trailing number of days
func PopularDaysZSet(days int) string {
	return PopularZSet + ":" + strconv.Itoa(days)
}
