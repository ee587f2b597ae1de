package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
)

// fieldRule is one row of the candidate-key table: the keys are tried in
// order and the sentinel stands in when none yields a value.
type fieldRule struct {
	keys       []string
	sentinel   string
	allowEmpty bool
}

// resolve returns the first usable text value among rule.keys.
// A key whose value is JSON null, an object or an array is skipped, and so
// is a blank string unless the rule allows empty values.
func resolve(rec map[string]any, rule fieldRule) (string, bool) {
	for _, k := range rule.keys {
		v, ok := rec[k]
		if !ok || v == nil {
			continue
		}
		s, ok := scalarText(v)
		if !ok {
			continue
		}
		if s == "" && !rule.allowEmpty {
			continue
		}
		return s, true
	}
	return "", false
}

func resolveOr(rec map[string]any, rule fieldRule) string {
	if s, ok := resolve(rec, rule); ok {
		return s
	}
	return rule.sentinel
}

func scalarText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return CleanText(t), true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// number extracts a JSON number. Numeric strings do not count.
func number(rec map[string]any, key string) (float64, bool) {
	switch t := rec[key].(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}

func nonEmptyString(rec map[string]any, key string) (string, bool) {
	s, ok := rec[key].(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// stringList accepts a JSON array and keeps its non-blank string elements.
func stringList(rec map[string]any, key string) []string {
	var raw []any
	switch t := rec[key].(type) {
	case []any:
		raw = t
	case []string:
		for _, s := range t {
			raw = append(raw, s)
		}
	default:
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = CleanText(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
