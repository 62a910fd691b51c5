package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// timestampLayouts are tried in order. Backends differ on whether they send
// a zone and on the separator between date and time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Timestamp is a backend time that decodes leniently. Values with no zone
// are read as UTC; values that match no known layout decode as the zero
// time instead of failing the surrounding record.
type Timestamp struct {
	time.Time
}

// ParseTimestamp reads s with the first layout that fits
func ParseTimestamp(s string) (Timestamp, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, true
		}
	}
	return Timestamp{}, false
}

// UnmarshalJSON accepts any JSON value; only strings in a known layout set
// the time
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = Timestamp{}
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		return nil
	}
	var s string
	if json.Unmarshal(data, &s) == nil {
		if ts, ok := ParseTimestamp(s); ok {
			*t = ts
		}
	}
	return nil
}
