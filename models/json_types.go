package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// UintSlice stores a []uint as a JSON array so it works on both the mysql
// and sqlite drivers.
type UintSlice []uint

func (s UintSlice) Value() (driver.Value, error) {
	if s == nil {
		s = UintSlice{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *UintSlice) Scan(value interface{}) error {
	if value == nil {
		*s = UintSlice{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for UintSlice", value)
	}
	return json.Unmarshal(b, s)
}

// Contains reports whether id is already in the slice.
func (s UintSlice) Contains(id uint) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}
