// config.go
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
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port        string
	CORSOrigins []string

	// Store configuration
	StoreType        string // redis or sql
	RedisURL         string
	StoreWaitTimeout time.Duration

	// SQL store configuration
	DBType            string // mysql, postgres, sqlite, sqlite3, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Repository metadata API (enrichment source)
	RepoAPIURL   string
	RepoAPIToken string
	RepoAPIRate  float64
	RepoAPIBurst int

	// Enrichment executor
	EnrichTimeout   time.Duration
	EnrichWorkers   int
	EnrichQueueSize int

	// Query layer
	QueryCacheCapacity int
	CollectionMaxLimit int

	// Refresh
	RefreshSchedule string
	PicksLists      []string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load loads configuration from environment variables, after applying an optional .env file
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8000"),
		CORSOrigins:        strings.Fields(getEnv("CORS_ORIGINS", "*")),
		StoreType:          strings.ToLower(getEnv("STORE_TYPE", "redis")),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379/0"),
		StoreWaitTimeout:   getEnvAsDuration("STORE_WAIT_TIMEOUT", 60*time.Second),
		DBType:             getEnv("DB_TYPE", "sqlite"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "3306"),
		DBDatabase:         getEnv("DB_DATABASE", ""),
		DBUser:             getEnv("DB_USER", ""),
		DBPassword:         getEnv("DB_PASSWORD", ""),
		DBConnectionLimit:  getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		RepoAPIURL:         strings.TrimSuffix(getEnv("REPO_API_URL", "https://api.github.com"), "/"),
		RepoAPIToken:       getEnv("REPO_API_TOKEN", ""),
		RepoAPIRate:        getEnvAsFloat("REPO_API_RATE", 1),
		RepoAPIBurst:       getEnvAsInt("REPO_API_BURST", 5),
		EnrichTimeout:      getEnvAsDuration("ENRICH_TIMEOUT", 5*time.Second),
		EnrichWorkers:      getEnvAsInt("ENRICH_WORKERS", 4),
		EnrichQueueSize:    getEnvAsInt("ENRICH_QUEUE_SIZE", 256),
		QueryCacheCapacity: getEnvAsInt("QUERY_CACHE_CAPACITY", 100000),
		CollectionMaxLimit: getEnvAsInt("COLLECTION_MAX_LIMIT", 250),
		RefreshSchedule:    getEnv("REFRESH_SCHEDULE", ""),
		PicksLists:         strings.Fields(getEnv("PICKS_LISTS", "")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	switch c.StoreType {
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when STORE_TYPE=redis")
		}
	case "sql":
		if c.DBDatabase == "" {
			return fmt.Errorf("DB_DATABASE is required when STORE_TYPE=sql")
		}
	default:
		return fmt.Errorf("unsupported STORE_TYPE: %s", c.StoreType)
	}
	if c.RepoAPIURL == "" {
		return fmt.Errorf("REPO_API_URL is required")
	}
	if c.EnrichWorkers < 1 {
		return fmt.Errorf("ENRICH_WORKERS must be at least 1")
	}
	if c.QueryCacheCapacity < 1 {
		return fmt.Errorf("QUERY_CACHE_CAPACITY must be at least 1")
	}
	if c.CollectionMaxLimit < 1 {
		return fmt.Errorf("COLLECTION_MAX_LIMIT must be at least 1")
	}
	return nil
}

// loadEnvFile applies ENV_FILE, or ./.env when present. Variables already set win.
func loadEnvFile() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go durations ("30s") or a bare number of seconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
