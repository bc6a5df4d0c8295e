// ordered_map.go
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

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Pair is one key/value entry of an OrderedMap. Value holds the raw JSON of the entry.
type Pair struct {
	Key   string
	Value json.RawMessage
}

// OrderedMap is a JSON object that keeps the key order of the source document.
// Screenshot entries ("WxH" -> filename) and per-day install counts rely on that order.
type OrderedMap []Pair

// UnmarshalJSON implements the json.Unmarshaler interface.
func (m *OrderedMap) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*m = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("OrderedMap: expected object")
	}

	pairs := OrderedMap{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		pairs = append(pairs, Pair{Key: key, Value: raw})
	}

	*m = pairs
	return nil
}

// MarshalJSON implements the json.Marshaler interface, preserving order.
func (m OrderedMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if len(p.Value) == 0 {
			buf.WriteString("null")
		} else {
			buf.Write(p.Value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Keys returns the keys in source order.
func (m OrderedMap) Keys() []string {
	keys := make([]string, len(m))
	for i, p := range m {
		keys[i] = p.Key
	}
	return keys
}

// FirstString returns the first value in source order as a string.
// Non-string values are returned as their raw JSON text.
func (m OrderedMap) FirstString() (string, bool) {
	if len(m) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(m[0].Value, &s); err != nil {
		return string(m[0].Value), true
	}
	return s, true
}

// Last returns the trailing n entries, or all of them when n is zero or out of range.
func (m OrderedMap) Last(n int) OrderedMap {
	if n <= 0 || n >= len(m) {
		return m
	}
	return m[len(m)-n:]
}
