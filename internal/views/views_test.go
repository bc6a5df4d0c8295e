// views_test.go
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

package views

import (
	"encoding/json"
	"testing"

	"github.com/localnerve/appcatalog/internal/models"
	"github.com/localnerve/appcatalog/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, doc string) *models.App {
	t.Helper()
	var app models.App
	require.NoError(t, json.Unmarshal([]byte(doc), &app))
	return &app
}

func TestMissingRecord(t *testing.T) {
	assert.Nil(t, ProjectListing("org.a", nil))
	assert.Nil(t, ProjectCompat("org.a", nil, nil))
	assert.Nil(t, ProjectCompatShort("org.a", nil, nil))
}

func TestProjectListing(t *testing.T) {
	app := decode(t, testsupport.MinimalApp("org.a", "A"))
	l := ProjectListing("org.a", app)
	require.NotNil(t, l)

	data, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"org.a","name":"A","summary":"A summary","icon":"https://dl.flathub.org/icons/org.a.png"}`, string(data))
}

func TestProjectCompatWithoutReleases(t *testing.T) {
	app := decode(t, testsupport.MinimalApp("org.a", "A"))
	c := ProjectCompat("org.a", app, nil)
	require.NotNil(t, c)

	assert.Nil(t, c.CurrentReleaseVersion)
	assert.Nil(t, c.CurrentReleaseDate)
	assert.Nil(t, c.CurrentReleaseDescription)
	assert.Nil(t, c.Screenshots)
	assert.Equal(t, "https://dl.flathub.org/repo/appstream/org.a.flatpakref", c.DownloadFlatpakRefURL)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "screenshots")
	assert.Nil(t, raw["screenshots"])
	assert.Equal(t, []interface{}{}, raw["categories"])
}

func TestProjectCompatFull(t *testing.T) {
	app := decode(t, testsupport.FullApp("org.a", "A"))
	since := "2019-05-01T10:00:00Z"
	c := ProjectCompat("org.a", app, &since)
	require.NotNil(t, c)

	assert.Equal(t, "2.0.1", *c.CurrentReleaseVersion)
	assert.Equal(t, "<p>Fixes</p>", *c.CurrentReleaseDescription)
	assert.Equal(t, "2020-09-13", *c.CurrentReleaseDate)
	assert.Equal(t, &since, c.InStoreSinceDate)
	assert.Equal(t, []CompatCategory{{Name: "Audio"}, {Name: "AudioVideo"}}, c.Categories)
	assert.Equal(t, "https://example.org/org.a", *c.HomepageURL)
	assert.Nil(t, c.HelpURL)
	assert.Equal(t, c.IconDesktopURL, c.IconMobileURL)

	require.Len(t, c.Screenshots, 2)
	assert.Equal(t, CompatScreenshot{
		ImgDesktopURL: "https://dl.flathub.org/repo/screenshots/org.a-stable/1248x702/one.png",
		ImgMobileURL:  "https://dl.flathub.org/repo/screenshots/org.a-stable/1248x702/one.png",
		ThumbURL:      "https://dl.flathub.org/repo/screenshots/org.a-stable/112x63/one.png",
	}, c.Screenshots[0])
	assert.Equal(t, "https://dl.flathub.org/repo/screenshots/org.a-stable/112x63/two.png", c.Screenshots[1].ThumbURL)
}

func TestScreenshotSizes(t *testing.T) {
	app := decode(t, `{"screenshots":[{"64x64":"a.png","128x128":"b.png"}]}`)
	shots := Screenshots("org.x", app)
	require.Len(t, shots, 1)
	// only the first value names the file
	assert.Equal(t, "https://dl.flathub.org/repo/screenshots/org.x-stable/128x128/a.png", shots[0].ImgDesktopURL)
	assert.Equal(t, "https://dl.flathub.org/repo/screenshots/org.x-stable/64x64/a.png", shots[0].ThumbURL)
}

func TestScreenshotsNumericWidthSort(t *testing.T) {
	assert.Equal(t, []string{"112x63", "624x351", "1248x702"}, resolutionsByWidth([]string{"624x351", "1248x702", "112x63"}))
	assert.Equal(t, []string{"64x64"}, resolutionsByWidth([]string{"source", "64x64"}))
}

func TestCategoriesAsSingleString(t *testing.T) {
	app := decode(t, `{"name":"A","categories":"Game"}`)
	c := ProjectCompat("org.a", app, nil)
	assert.Equal(t, []CompatCategory{{Name: "Game"}}, c.Categories)
}

func TestProjectCompatShort(t *testing.T) {
	app := decode(t, testsupport.FullApp("org.a", "A"))
	c := ProjectCompatShort("org.a", app, nil)
	require.NotNil(t, c)
	assert.Equal(t, "org.a", c.FlatpakAppID)
	assert.Equal(t, "2.0.1", *c.CurrentReleaseVersion)
	assert.Equal(t, "2020-09-13", *c.CurrentReleaseDate)
	assert.Nil(t, c.InStoreSinceDate)
}

func TestProjectCompatSearch(t *testing.T) {
	name := "A"
	c := ProjectCompatSearch(Listing{ID: "org.a", Name: &name})
	assert.Equal(t, "org.a", c.FlatpakAppID)
	assert.Nil(t, c.InStoreSinceDate)
	assert.Nil(t, c.CurrentReleaseDate)
}

func TestFormatReleaseDate(t *testing.T) {
	assert.Equal(t, "1970-01-01", FormatReleaseDate(0))
	assert.Equal(t, "2020-09-13", FormatReleaseDate(1600000000))
}
