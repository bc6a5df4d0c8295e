// open.go
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

import (
	"context"
	"fmt"
	"time"

	"github.com/localnerve/appcatalog/internal/config"
	"github.com/localnerve/appcatalog/internal/database"
	"github.com/sirupsen/logrus"
)

// Open builds the backend selected by STORE_TYPE. SQL backends are migrated before use.
func Open(cfg *config.Config, log logrus.FieldLogger) (Store, error) {
	switch cfg.StoreType {
	case "redis":
		log.WithField("store", "redis").Info("Using redis store")
		return NewRedisStore(cfg.RedisURL)
	case "sql":
		db, err := database.Connect(cfg, log)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return NewSQLStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.StoreType)
	}
}

// WaitForStore pings the store until it answers or timeout elapses
func WaitForStore(ctx context.Context, s Store, interval, timeout time.Duration, log logrus.FieldLogger) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	attempt := 0
	for {
		attempt++
		err := s.Ping(ctx)
		if err == nil {
			if attempt > 1 {
				log.WithField("attempts", attempt).Info("Store is ready")
			}
			return nil
		}
		log.WithError(err).WithField("attempt", attempt).Warn("Store not ready")

		select {
		case <-ctx.Done():
			return fmt.Errorf("store not ready after %s: %w", timeout, err)
		case <-ticker.C:
		}
	}
}
