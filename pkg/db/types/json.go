package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Document is a schemaless JSON object column. Camera configuration, vehicle
// tracking payloads, and violation evidence metadata arrive from the ingestion
// pipeline and are stored opaquely.
type Document map[string]any

// Value marshals the document for storage.
func (d Document) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan decodes the stored JSON back into the document.
func (d *Document) Scan(value any) error {
	return scanJSON(value, d)
}

// DocumentList is a JSON array-of-objects column.
type DocumentList []map[string]any

func (l DocumentList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *DocumentList) Scan(value any) error {
	return scanJSON(value, l)
}

// StringList is a JSON array-of-strings column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value any) error {
	return scanJSON(value, l)
}

func scanJSON(value, dest any) error {
	if value == nil {
		return nil
	}
	switch raw := value.(type) {
	case []byte:
		return json.Unmarshal(raw, dest)
	case string:
		return json.Unmarshal([]byte(raw), dest)
	default:
		return fmt.Errorf("unsupported scan type %T for json column", value)
	}
}
