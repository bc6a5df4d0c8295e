// sql.go
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
	"errors"
	"fmt"

	"github.com/localnerve/appcatalog/internal/database"
	"github.com/localnerve/appcatalog/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// SQLStore keeps the catalog layout in three relational tables (see models.KVEntry and friends)
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore wraps a connected database; the schema must already be migrated
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// DB exposes the underlying connection for seeding tools
func (s *SQLStore) DB() *gorm.DB {
	return s.db
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	var entry models.KVEntry
	err := s.db.WithContext(ctx).Where("kv_key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return entry.Value.StoreValue(), nil
}

func (s *SQLStore) MGet(ctx context.Context, keys ...string) ([]*string, error) {
	out := make([]*string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	var entries []models.KVEntry
	if err := s.db.WithContext(ctx).Where("kv_key IN ?", keys).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get %d keys: %w", len(keys), err)
	}

	byKey := make(map[string]string, len(entries))
	for _, e := range entries {
		byKey[e.Key] = e.Value.StoreValue()
	}
	for i, key := range keys {
		if value, ok := byKey[key]; ok {
			out[i] = &value
		}
	}
	return out, nil
}

func (s *SQLStore) Members(ctx context.Context, key string) ([]string, error) {
	members := []string{}
	err := s.db.WithContext(ctx).Model(&models.KVMember{}).
		Where("set_key = ?", key).
		Pluck("member", &members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list members of %s: %w", key, err)
	}
	return members, nil
}

func (s *SQLStore) TopScored(ctx context.Context, key string, limit int) ([]ScoredMember, error) {
	query := s.scored(ctx).
		Where("set_key = ?", key).
		Order("score DESC").
		Order("member DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []models.KVScoredMember
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to range %s: %w", key, err)
	}

	out := make([]ScoredMember, len(rows))
	for i, r := range rows {
		out[i] = ScoredMember{Member: r.Member, Score: r.Score}
	}
	return out, nil
}

func (s *SQLStore) MembersWithScore(ctx context.Context, key string, score float64) ([]string, error) {
	members := []string{}
	err := s.scored(ctx).
		Where("set_key = ? AND score = ?", key, score).
		Pluck("member", &members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s members at score %v: %w", key, score, err)
	}
	return members, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	entry := models.KVEntry{Key: key, Value: models.NewJSON(value)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"kv_value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) AddMembers(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	return s.addMembers(s.db.WithContext(ctx), key, members)
}

func (s *SQLStore) ReplaceMembers(ctx context.Context, key string, members ...string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("set_key = ?", key).Delete(&models.KVMember{}).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
		if len(members) == 0 {
			return nil
		}
		return s.addMembers(tx, key, members)
	})
}

func (s *SQLStore) AddScored(ctx context.Context, key string, members ...ScoredMember) error {
	if len(members) == 0 {
		return nil
	}
	rows := make([]models.KVScoredMember, len(members))
	for i, m := range members {
		rows[i] = models.KVScoredMember{SetKey: key, Member: m.Member, Score: m.Score}
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "set_key"}, {Name: "member"}},
		DoUpdates: clause.AssignmentColumns([]string{"score"}),
	}).CreateInBatches(rows, 500).Error
	if err != nil {
		return fmt.Errorf("failed to add scored members to %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return database.Close(s.db)
}

func (s *SQLStore) addMembers(tx *gorm.DB, key string, members []string) error {
	seen := make(map[string]struct{}, len(members))
	rows := make([]models.KVMember, 0, len(members))
	for _, m := range members {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		rows = append(rows, models.KVMember{SetKey: key, Member: m})
	}
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, 500).Error
	if err != nil {
		return fmt.Errorf("failed to add members to %s: %w", key, err)
	}
	return nil
}

// scored starts a query on the scored table, steering MySQL onto the (set_key, score) index
func (s *SQLStore) scored(ctx context.Context) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.KVScoredMember{})
	if s.db.Dialector.Name() == "mysql" {
		query = query.Clauses(hints.UseIndex("idx_kv_scored_key_score"))
	}
	return query
}
