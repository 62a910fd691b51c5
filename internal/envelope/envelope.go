// Package envelope normalizes the wrapper shapes the backend puts around
// response payloads, so callers always receive plain records.
package envelope

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrUnrecognizedEnvelope is returned when a list response has none of the
// known shapes
var ErrUnrecognizedEnvelope = errors.New("unrecognized response envelope")

// List extracts a list from body. The shapes are tried in order: a bare
// array, an array under "data", an array under "items", an array under field.
// An empty body is an empty list.
func List[T any](body []byte, field string) ([]T, error) {
	if len(body) == 0 {
		return []T{}, nil
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not JSON", ErrUnrecognizedEnvelope)
	}

	res := gjson.ParseBytes(body)
	if !res.IsArray() {
		res = firstArray(res, "data", "items", field)
		if !res.Exists() {
			return nil, fmt.Errorf("%w: no list under data, items or %q", ErrUnrecognizedEnvelope, field)
		}
	}

	items := []T{}
	if err := json.Unmarshal([]byte(res.Raw), &items); err != nil {
		return nil, fmt.Errorf("failed to decode list: %w", err)
	}
	return items, nil
}

func firstArray(res gjson.Result, paths ...string) gjson.Result {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if v := res.Get(path); v.IsArray() {
			return v
		}
	}
	return gjson.Result{}
}

// Object decodes a single record, unwrapping a "data" object when present
func Object[T any](body []byte) (T, error) {
	var out T
	if len(body) == 0 {
		return out, nil
	}

	raw := body
	if data := gjson.GetBytes(body, "data"); data.IsObject() {
		raw = []byte(data.Raw)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}
