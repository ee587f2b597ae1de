package source

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ExtractRecords locates the list of job records in a payload. Accepted
// shapes, tried in order: a bare array, an object whose "jobs" is an array,
// an object whose "data" is an array, and finally any other object, whose
// values are taken in document order. Elements that are not objects become
// empty records.
func ExtractRecords(body []byte) ([]map[string]any, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("empty body: %w", ErrPayload)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("invalid json: %w", ErrPayload)
	}

	switch body[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("decode array: %w", ErrPayload)
		}
		return toRecords(items), nil

	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(body, &obj); err != nil {
			return nil, fmt.Errorf("decode object: %w", ErrPayload)
		}
		for _, key := range []string{"jobs", "data"} {
			if items, ok := arrayAt(obj, key); ok {
				return toRecords(items), nil
			}
		}
		items, err := orderedValues(body)
		if err != nil {
			return nil, fmt.Errorf("decode object values: %w", ErrPayload)
		}
		return toRecords(items), nil

	default:
		return nil, fmt.Errorf("top-level %s is not a list or object: %w", kindOf(body[0]), ErrPayload)
	}
}

func arrayAt(obj map[string]json.RawMessage, key string) ([]json.RawMessage, bool) {
	raw, ok := obj[key]
	if !ok {
		return nil, false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

// orderedValues walks the top-level object token by token; a Go map would
// lose the key order the ids depend on. A repeated key keeps its first
// position and its last value.
func orderedValues(body []byte) ([]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	if _, err := dec.Token(); err != nil { // {
		return nil, err
	}
	var out []json.RawMessage
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token() // key
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		if i, ok := seen[key]; ok {
			out[i] = v
			continue
		}
		seen[key] = len(out)
		out = append(out, v)
	}
	return out, nil
}

func toRecords(items []json.RawMessage) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, toRecord(item))
	}
	return out
}

func toRecord(raw json.RawMessage) map[string]any {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return map[string]any{}
	}
	rec, ok := v.(map[string]any)
	if !ok || rec == nil {
		return map[string]any{}
	}
	return rec
}

func kindOf(b byte) string {
	switch b {
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
