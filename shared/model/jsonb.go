package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONBValue marshals a document-like sub-record for a JSONB column.
func JSONBValue(value any) (driver.Value, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jsonb column: %w", err)
	}

	return data, nil
}

// JSONBScan unmarshals a JSONB column into dest. NULL leaves dest untouched.
func JSONBScan(dest any, src any) error {
	if src == nil {
		return nil
	}

	var data []byte

	switch value := src.(type) {
	case []byte:
		data = value
	case string:
		data = []byte(value)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal jsonb column: %w", err)
	}

	return nil
}
