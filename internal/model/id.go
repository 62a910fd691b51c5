package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ID identifies a backend record. The backend sends ids as JSON numbers on
// some endpoints and as strings on others, so both are accepted.
type ID string

// String returns the id as used in request paths
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the id is unset
func (id ID) IsZero() bool {
	return id == "" || id == "0"
}

// numeric reports whether the id is made of digits only
func (id ID) numeric() bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MarshalJSON echoes numeric ids as JSON numbers and anything else as a string
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON number, a JSON string or null
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// firstID returns the first non-zero id, implementing the levelId||id style
// fallbacks the backend forces on clients
func firstID(ids ...ID) ID {
	for _, id := range ids {
		if !id.IsZero() {
			return id
		}
	}
	return ""
}

// IDFromInt converts an integer id
func IDFromInt(n int) ID {
	return ID(strconv.Itoa(n))
}
