// store.go
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

// Package store is the typed access layer over the key-value backend holding application records,
// enrichment values and the set / sorted-set indices the catalog is resolved from.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a key does not exist
var ErrNotFound = errors.New("not found")

// ScoredMember is a member of a score-ordered index
type ScoredMember struct {
	Member string
	Score  float64
}

// Reader is the read side of the store
type Reader interface {
	// Get returns the value under key, or ErrNotFound
	Get(ctx context.Context, key string) (string, error)
	// MGet returns one entry per key; missing keys are nil
	MGet(ctx context.Context, keys ...string) ([]*string, error)
	// Members returns the members of an unordered set, in no particular order
	Members(ctx context.Context, key string) ([]string, error)
	// TopScored returns up to limit members by descending score; limit <= 0 returns all
	TopScored(ctx context.Context, key string, limit int) ([]ScoredMember, error)
	// MembersWithScore returns every member whose score equals score
	MembersWithScore(ctx context.Context, key string, score float64) ([]string, error)
}

// Writer is the write side of the store. Each call is atomic on its own.
type Writer interface {
	Set(ctx context.Context, key, value string) error
	AddMembers(ctx context.Context, key string, members ...string) error
	// ReplaceMembers swaps the whole content of a set
	ReplaceMembers(ctx context.Context, key string, members ...string) error
	// AddScored inserts members or updates their score
	AddScored(ctx context.Context, key string, members ...ScoredMember) error
}

// Store is a key-value backend with set and sorted-set indices
type Store interface {
	Reader
	Writer
	Ping(ctx context.Context) error
	Close() error
}

// GetJSON decodes the JSON document under key into out
func GetJSON(ctx context.Context, r Reader, key string, out interface{}) error {
	raw, err := r.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// GetRawJSON returns the JSON document under key without decoding it
func GetRawJSON(ctx context.Context, r Reader, key string) (json.RawMessage, error) {
	raw, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("value under %s is not JSON", key)
	}
	return json.RawMessage(raw), nil
}

// SetJSON stores v as a JSON document under key
func SetJSON(ctx context.Context, w Writer, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return w.Set(ctx, key, string(data))
}
