package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// JSON is a jsonb column holding loosely structured data, such as the fee
// metadata attached to a transaction.
type JSON map[string]interface{}

func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(map[string]interface{}(j))
}

// Scan accepts the raw bytes or string the driver returns for jsonb.
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, (*map[string]interface{})(j))
	case string:
		return json.Unmarshal([]byte(v), (*map[string]interface{})(j))
	default:
		return fmt.Errorf("cannot scan %T into JSON", value)
	}
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return json.Marshal(map[string]interface{}(j))
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("cannot unmarshal into nil JSON")
	}
	return json.Unmarshal(data, (*map[string]interface{})(j))
}
