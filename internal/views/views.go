// views.go
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

// Package views projects stored application records into the native listing shape and the
// legacy compat shapes.
package views

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/localnerve/appcatalog/internal/models"
)

const (
	screenshotURL  = "https://dl.flathub.org/repo/screenshots/%s-stable/%s/%s"
	flatpakRefURL  = "https://dl.flathub.org/repo/appstream/%s.flatpakref"
	releaseDateFmt = "2006-01-02"
)

// Listing is the compact native view
type Listing struct {
	ID      string  `json:"id"`
	Name    *string `json:"name"`
	Summary *string `json:"summary"`
	Icon    *string `json:"icon"`
}

// CompatShortApp is a list entry of the legacy schema
type CompatShortApp struct {
	FlatpakAppID          string  `json:"flatpakAppId"`
	Name                  *string `json:"name"`
	Summary               *string `json:"summary"`
	IconDesktopURL        *string `json:"iconDesktopUrl"`
	IconMobileURL         *string `json:"iconMobileUrl"`
	CurrentReleaseVersion *string `json:"currentReleaseVersion"`
	CurrentReleaseDate    *string `json:"currentReleaseDate"`
	InStoreSinceDate      *string `json:"inStoreSinceDate"`
}

// CompatApp is the single-app legacy schema
type CompatApp struct {
	FlatpakAppID              string             `json:"flatpakAppId"`
	Name                      *string            `json:"name"`
	Summary                   *string            `json:"summary"`
	Description               *string            `json:"description"`
	DownloadFlatpakRefURL     string             `json:"downloadFlatpakRefUrl"`
	ProjectLicense            *string            `json:"projectLicense"`
	IconDesktopURL            *string            `json:"iconDesktopUrl"`
	IconMobileURL             *string            `json:"iconMobileUrl"`
	HomepageURL               *string            `json:"homepageUrl"`
	HelpURL                   *string            `json:"helpUrl"`
	TranslateURL              *string            `json:"translateUrl"`
	BugtrackerURL             *string            `json:"bugtrackerUrl"`
	DonationURL               *string            `json:"donationUrl"`
	DeveloperName             *string            `json:"developerName"`
	Categories                []CompatCategory   `json:"categories"`
	CurrentReleaseDescription *string            `json:"currentReleaseDescription"`
	CurrentReleaseVersion     *string            `json:"currentReleaseVersion"`
	CurrentReleaseDate        *string            `json:"currentReleaseDate"`
	InStoreSinceDate          *string            `json:"inStoreSinceDate"`
	Screenshots               []CompatScreenshot `json:"screenshots"`
}

type CompatCategory struct {
	Name string `json:"name"`
}

type CompatScreenshot struct {
	ImgDesktopURL string `json:"imgDesktopUrl"`
	ImgMobileURL  string `json:"imgMobileUrl"`
	ThumbURL      string `json:"thumbUrl"`
}

// ProjectListing returns nil when the record is missing
func ProjectListing(id string, app *models.App) *Listing {
	if app == nil {
		return nil
	}
	return &Listing{ID: id, Name: app.Name, Summary: app.Summary, Icon: app.Icon}
}

// ProjectCompatShort returns nil when the record is missing
func ProjectCompatShort(id string, app *models.App, inStoreSince *string) *CompatShortApp {
	if app == nil {
		return nil
	}
	version, _, date := currentRelease(app)
	return &CompatShortApp{
		FlatpakAppID:          id,
		Name:                  app.Name,
		Summary:               app.Summary,
		IconDesktopURL:        app.Icon,
		IconMobileURL:         app.Icon,
		CurrentReleaseVersion: version,
		CurrentReleaseDate:    date,
		InStoreSinceDate:      inStoreSince,
	}
}

// ProjectCompat returns nil when the record is missing
func ProjectCompat(id string, app *models.App, inStoreSince *string) *CompatApp {
	if app == nil {
		return nil
	}

	version, description, date := currentRelease(app)

	categories := make([]CompatCategory, 0, len(app.Categories))
	for _, name := range app.Categories.Slice() {
		categories = append(categories, CompatCategory{Name: name})
	}

	return &CompatApp{
		FlatpakAppID:              id,
		Name:                      app.Name,
		Summary:                   app.Summary,
		Description:               app.Description,
		DownloadFlatpakRefURL:     fmt.Sprintf(flatpakRefURL, id),
		ProjectLicense:            app.ProjectLicense,
		IconDesktopURL:            app.Icon,
		IconMobileURL:             app.Icon,
		HomepageURL:               app.URL("homepage"),
		HelpURL:                   app.URL("help"),
		TranslateURL:              app.URL("translate"),
		BugtrackerURL:             app.URL("bugtracker"),
		DonationURL:               app.URL("donation"),
		DeveloperName:             app.DeveloperName,
		Categories:                categories,
		CurrentReleaseDescription: description,
		CurrentReleaseVersion:     version,
		CurrentReleaseDate:        date,
		InStoreSinceDate:          inStoreSince,
		Screenshots:               Screenshots(id, app),
	}
}

// Search results carry listing fields only; enrichment and release fields are always null
func ProjectCompatSearch(l Listing) CompatShortApp {
	return CompatShortApp{
		FlatpakAppID:   l.ID,
		Name:           l.Name,
		Summary:        l.Summary,
		IconDesktopURL: l.Icon,
		IconMobileURL:  l.Icon,
	}
}

// currentRelease reads version, description and the UTC release date of releases[0]
func currentRelease(app *models.App) (version, description, date *string) {
	if len(app.Releases) == 0 {
		return nil, nil, nil
	}
	release := app.Releases[0]
	if release.Timestamp != nil && release.Timestamp.Int64() != 0 {
		d := FormatReleaseDate(release.Timestamp.Int64())
		date = &d
	}
	return release.Version, release.Description, date
}

// FormatReleaseDate renders a unix timestamp as YYYY-MM-DD in UTC
func FormatReleaseDate(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(releaseDateFmt)
}

// Screenshots derives desktop/mobile/thumb urls. The resolutions of the first screenshot pick
// the full (widest) and thumb (narrowest) sizes for every entry. Nil when there are none.
func Screenshots(id string, app *models.App) []CompatScreenshot {
	if len(app.Screenshots) == 0 {
		return nil
	}

	sizes := resolutionsByWidth(app.Screenshots[0].Keys())
	if len(sizes) == 0 {
		return nil
	}
	full, thumb := sizes[len(sizes)-1], sizes[0]

	out := make([]CompatScreenshot, 0, len(app.Screenshots))
	for _, shot := range app.Screenshots {
		source, ok := shot.FirstString()
		if !ok {
			continue
		}
		filename := source[strings.LastIndex(source, "/")+1:]
		fullURL := fmt.Sprintf(screenshotURL, id, full, filename)
		out = append(out, CompatScreenshot{
			ImgDesktopURL: fullURL,
			ImgMobileURL:  fullURL,
			ThumbURL:      fmt.Sprintf(screenshotURL, id, thumb, filename),
		})
	}
	return out
}

// resolutionsByWidth sorts "WxH" labels by width ascending. Labels without a numeric width are dropped.
func resolutionsByWidth(labels []string) []string {
	type sized struct {
		label string
		width int
	}
	parsed := make([]sized, 0, len(labels))
	for _, label := range labels {
		w, _, _ := strings.Cut(label, "x")
		width, err := strconv.Atoi(w)
		if err != nil {
			continue
		}
		parsed = append(parsed, sized{label, width})
	}
	sort.SliceStable(parsed, func(i, j int) bool { return parsed[i].width < parsed[j].width })

	out := make([]string, len(parsed))
	for i, p := range parsed {
		out[i] = p.label
	}
	return out
}
