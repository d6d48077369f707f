package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// FieldMap stores a record's dynamic attribute map as a JSON column so the
// configurable unique-field lookups can use the ->> extraction operator.
type FieldMap map[string]string

// Scan implements sql.Scanner
func (f *FieldMap) Scan(value any) error {
	if value == nil {
		*f = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("field map: value is neither []byte nor string")
	}
	return json.Unmarshal(bytes, f)
}

// Value implements driver.Valuer
func (f FieldMap) Value() (driver.Value, error) {
	if f == nil {
		return "{}", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
