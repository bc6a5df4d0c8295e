// kv.go
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

import "time"

// KVEntry is a scalar or JSON document value stored under a string key (apps:<id>, created_at:<id>, stats, ...)
type KVEntry struct {
	Key       string `gorm:"column:kv_key;primaryKey;size:255"`
	Value     JSON   `gorm:"column:kv_value"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// KVMember is one member of an unordered set index (categories:<name>, apps:index, ...)
type KVMember struct {
	SetKey string `gorm:"column:set_key;primaryKey;size:255"`
	Member string `gorm:"column:member;primaryKey;size:255"`
}

// KVScoredMember is one member of a score-ordered index (new_apps_zset, recently_updated_zset, ...)
type KVScoredMember struct {
	SetKey string  `gorm:"column:set_key;primaryKey;size:255;index:idx_kv_scored_key_score,priority:1"`
	Member string  `gorm:"column:member;primaryKey;size:255"`
	Score  float64 `gorm:"column:score;not null;index:idx_kv_scored_key_score,priority:2"`
}

// TableName overrides the table name for KVEntry
func (KVEntry) TableName() string {
	return "kv_entries"
}

// TableName overrides the table name for KVMember
func (KVMember) TableName() string {
	return "kv_members"
}

// TableName overrides the table name for KVScoredMember
func (KVScoredMember) TableName() string {
	return "kv_scored_members"
}
