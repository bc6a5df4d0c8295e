// testsupport.go
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

// Package testsupport holds fixtures shared by package tests: an in-process redis backed store,
// seeding helpers and a fake repository-metadata API.
package testsupport

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/localnerve/appcatalog/internal/store"
	"github.com/stretchr/testify/require"
)

// NewStore starts a miniredis server and returns a store bound to it
func NewStore(t *testing.T) (*store.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := store.NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

// MustSet writes a key or fails the test
func MustSet(t *testing.T, s store.Writer, key, value string) {
	t.Helper()
	require.NoError(t, s.Set(context.Background(), key, value))
}

// MustAddMembers adds set members or fails the test
func MustAddMembers(t *testing.T, s store.Writer, key string, members ...string) {
	t.Helper()
	require.NoError(t, s.AddMembers(context.Background(), key, members...))
}

// MustAddScored adds id/score pairs to a sorted set or fails the test
func MustAddScored(t *testing.T, s store.Writer, key string, scores map[string]float64) {
	t.Helper()
	members := make([]store.ScoredMember, 0, len(scores))
	for id, score := range scores {
		members = append(members, store.ScoredMember{Member: id, Score: score})
	}
	require.NoError(t, s.AddScored(context.Background(), key, members...))
}

// SeedApp stores an application record and registers it in apps:index
func SeedApp(t *testing.T, s store.Writer, id, doc string) {
	t.Helper()
	MustSet(t, s, store.AppKey(id), doc)
	MustAddMembers(t, s, store.AppsIndex, id)
}

// MinimalApp is a record with only listing fields
func MinimalApp(id, name string) string {
	return fmt.Sprintf(`{"id":%q,"name":%q,"summary":"%s summary","icon":"https://dl.flathub.org/icons/%s.png"}`,
		id, name, name, id)
}

// FullApp is a record exercising every projected field
func FullApp(id, name string) string {
	return fmt.Sprintf(`{
		"id": %[1]q,
		"name": %[2]q,
		"summary": "%[2]s summary",
		"description": "<p>%[2]s</p>",
		"icon": "https://dl.flathub.org/icons/%[1]s.png",
		"project_license": "GPL-3.0-or-later",
		"urls": {"homepage": "https://example.org/%[1]s", "bugtracker": "https://example.org/%[1]s/issues"},
		"developer_name": "Example Developers",
		"categories": ["Audio", "AudioVideo"],
		"releases": [
			{"version": "2.0.1", "description": "<p>Fixes</p>", "timestamp": "1600000000"},
			{"version": "2.0.0", "timestamp": 1500000000}
		],
		"screenshots": [
			{"624x351": "https://cdn.example.org/%[1]s/624x351/one.png", "1248x702": "https://cdn.example.org/%[1]s/1248x702/one.png", "112x63": "https://cdn.example.org/%[1]s/112x63/one.png"},
			{"624x351": "https://cdn.example.org/%[1]s/624x351/two.png"}
		]
	}`, id, name)
}

// RepoAPI is a fake repository-metadata API serving /repos/flathub/<id>
type RepoAPI struct {
	*httptest.Server

	mu      sync.Mutex
	dates   map[string]string
	hits    map[string]int
	total   atomic.Int64
	release chan struct{}
}

// NewRepoAPI serves created_at for the ids in dates and 404 for everything else
func NewRepoAPI(t *testing.T, dates map[string]string) *RepoAPI {
	t.Helper()
	api := &RepoAPI{dates: dates, hits: map[string]int{}}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Close)
	return api
}

// Hold makes requests block until the returned func is called
func (a *RepoAPI) Hold() func() {
	ch := make(chan struct{})
	a.mu.Lock()
	a.release = ch
	a.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Hits reports how many requests were made for id
func (a *RepoAPI) Hits(id string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hits[id]
}

// Total reports the number of requests received
func (a *RepoAPI) Total() int64 {
	return a.total.Load()
}

func (a *RepoAPI) serve(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/repos/flathub/")

	a.mu.Lock()
	a.hits[id]++
	date, ok := a.dates[id]
	release := a.release
	a.mu.Unlock()
	a.total.Add(1)

	if release != nil {
		<-release
	}

	if !ok {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"id":1,"name":%q,"created_at":%q}`, id, date)
}
