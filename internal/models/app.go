// app.go
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

package models

import (
	"github.com/localnerve/appcatalog/internal/types"
)

// App is the application record stored under apps:<id>
type App struct {
	ID             string                 `json:"id,omitempty"`
	Name           *string                `json:"name"`
	Summary        *string                `json:"summary"`
	Description    *string                `json:"description"`
	Icon           *string                `json:"icon"`
	ProjectLicense *string                `json:"project_license"`
	URLs           map[string]string      `json:"urls,omitempty"`
	DeveloperName  *string                `json:"developer_name"`
	ProjectGroup   *string                `json:"project_group,omitempty"`
	Categories     types.FlexList[string] `json:"categories,omitempty"`
	Releases       []Release              `json:"releases,omitempty"`
	Screenshots    []types.OrderedMap     `json:"screenshots,omitempty"`
}

// Release is one entry of an App's release history, newest first
type Release struct {
	Version     *string          `json:"version"`
	Description *string          `json:"description"`
	Timestamp   *types.FlexInt64 `json:"timestamp"`
}

// URL returns the url of the given kind (homepage, help, translate, bugtracker, donation) or nil
func (a *App) URL(kind string) *string {
	if v, ok := a.URLs[kind]; ok {
		return &v
	}
	return nil
}

// Summary is the document stored under summary:<id>. Only the fields the catalog reads are typed.
type Summary struct {
	Timestamp types.FlexInt64 `json:"timestamp"`
}

// AppStats is the per-app installs document stored under app_stats:<id>
type AppStats struct {
	InstallsTotal     int64            `json:"installs_total"`
	InstallsLastMonth int64            `json:"installs_last_month"`
	InstallsPerDay    types.OrderedMap `json:"installs_per_day,omitempty"`
}
