package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap stores unstructured metadata as a JSON column
type JSONMap map[string]interface{}

// Value implements driver.Valuer for database storage
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for database retrieval
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONMap", value)
	}

	return json.Unmarshal(data, m)
}

// GormDataType tells gorm to use a json column for this type
func (JSONMap) GormDataType() string {
	return "json"
}

// StringSlice reads a key holding a JSON array of strings, returning an empty
// slice when the key is absent or malformed
func (m JSONMap) StringSlice(key string) []string {
	raw, ok := m[key]
	if !ok {
		return []string{}
	}
	items, ok := raw.([]interface{})
	if !ok {
		if typed, ok := raw.([]string); ok {
			return typed
		}
		return []string{}
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
