package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NumericID is an integer key that decodes from a JSON number or a numeric
// string such as the value of an HTML select. An empty string or null decodes
// to zero, which "required" rejects.
type NumericID int64

func (id *NumericID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid id %s: %w", raw, err)
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*id = 0
			return nil
		}
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: expected an integer", raw)
	}
	*id = NumericID(v)
	return nil
}

func (id NumericID) Int64() int64 {
	return int64(id)
}
