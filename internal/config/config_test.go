// config_test.go
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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV_FILE", "")
	unsetEnv(t, "PORT", "STORE_TYPE", "REPO_API_URL", "ENRICH_TIMEOUT", "COLLECTION_MAX_LIMIT", "CORS_ORIGINS")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "redis", cfg.StoreType)
	assert.Equal(t, "https://api.github.com", cfg.RepoAPIURL)
	assert.Equal(t, 5*time.Second, cfg.EnrichTimeout)
	assert.Equal(t, 250, cfg.CollectionMaxLimit)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := "PORT=9999\nSTORE_TYPE=sql\nDB_DATABASE=catalog.db\nENRICH_TIMEOUT=2\nCORS_ORIGINS=https://a.example https://b.example\nPICKS_LISTS=games creativity\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("ENV_FILE", path)
	// godotenv does not override variables that are already set
	unsetEnv(t, "PORT", "STORE_TYPE", "DB_DATABASE", "ENRICH_TIMEOUT", "CORS_ORIGINS", "PICKS_LISTS")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "sql", cfg.StoreType)
	assert.Equal(t, "catalog.db", cfg.DBDatabase)
	assert.Equal(t, 2*time.Second, cfg.EnrichTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, []string{"games", "creativity"}, cfg.PicksLists)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"unknown store", Config{StoreType: "mongo", RepoAPIURL: "x", EnrichWorkers: 1, QueryCacheCapacity: 1, CollectionMaxLimit: 1}},
		{"sql without database", Config{StoreType: "sql", RepoAPIURL: "x", EnrichWorkers: 1, QueryCacheCapacity: 1, CollectionMaxLimit: 1}},
		{"no workers", Config{StoreType: "redis", RedisURL: "redis://x", RepoAPIURL: "x", QueryCacheCapacity: 1, CollectionMaxLimit: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.cfg.Validate())
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "1500ms")
	assert.Equal(t, 1500*time.Millisecond, getEnvAsDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "3")
	assert.Equal(t, 3*time.Second, getEnvAsDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "soon")
	assert.Equal(t, time.Second, getEnvAsDuration("TEST_DURATION", time.Second))
}

// unsetEnv clears variables for the duration of the test
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
