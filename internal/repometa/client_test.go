// client_test.go
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

package repometa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/localnerve/appcatalog/internal/logging"
	"github.com/localnerve/appcatalog/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatedAt(t *testing.T) {
	api := testsupport.NewRepoAPI(t, map[string]string{"org.a": "2018-04-05T10:11:12Z"})
	c := NewClient(Options{BaseURL: api.URL, Rate: 100, Burst: 10}, logging.Discard())

	date, err := c.CreatedAt(context.Background(), "org.a")
	require.NoError(t, err)
	assert.Equal(t, "2018-04-05T10:11:12Z", date)

	_, err = c.CreatedAt(context.Background(), "org.missing")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 1, api.Hits("org.missing"))
}

func TestCreatedAtMissingField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"created_at":null}`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL}, logging.Discard())
	_, err := c.CreatedAt(context.Background(), "org.a")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCreatedAtSendsToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"created_at":"2020-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Token: "secret"}, logging.Discard())
	_, err := c.CreatedAt(context.Background(), "org.a")
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", auth)
}

func TestCreatedAtNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewClient(Options{BaseURL: base, Timeout: time.Second}, logging.Discard())
	_, err := c.CreatedAt(context.Background(), "org.a")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCreatedAtRateLimitHonoursContext(t *testing.T) {
	api := testsupport.NewRepoAPI(t, map[string]string{"org.a": "2018-04-05T10:11:12Z"})
	c := NewClient(Options{BaseURL: api.URL, Rate: 0.001, Burst: 1}, logging.Discard())

	_, err := c.CreatedAt(context.Background(), "org.a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.CreatedAt(ctx, "org.a")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int64(1), api.Total())
}
