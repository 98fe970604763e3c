// Package timex provides a time.Duration wrapper that is friendly to JSON
// configuration files.
package timex

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration wraps time.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration: %v", v)
	}
}
