package types

import (
	"math"
	"strconv"
	"strings"
)

// Key-fallback lookup: the backend spells the same logical field many ways
// depending on which endpoint produced the payload. Each normalizer declares
// an ordered candidate key list per field and funnels it through these
// lookups. A wrong-typed value at a candidate key is skipped, never an error.

// PickString walks keys in order and returns the first value coercible to a
// non-empty trimmed string. Dotted keys traverse nested objects, e.g.
// "recurring.interval".
func PickString(record map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := lookupPath(record, key)
		if !ok {
			continue
		}
		if s, ok := coerceString(v); ok {
			return s, true
		}
	}
	return "", false
}

// PickNumber walks keys in order and returns the first finite number,
// coercing numeric strings.
func PickNumber(record map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := lookupPath(record, key)
		if !ok {
			continue
		}
		if n, ok := coerceNumber(v); ok {
			return n, true
		}
	}
	return 0, false
}

// PickBool walks keys in order and returns the first value coercible to a
// boolean ("true"/"false", "yes"/"no", 1/0 are all accepted).
func PickBool(record map[string]any, keys ...string) (bool, bool) {
	for _, key := range keys {
		v, ok := lookupPath(record, key)
		if !ok {
			continue
		}
		if b, ok := coerceBool(v); ok {
			return b, true
		}
	}
	return false, false
}

// PickAny walks keys in order and returns the first present non-nil value
// without coercion
func PickAny(record map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := lookupPath(record, key); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// PickStringAcross applies PickString over candidate records in order, so an
// outer-level field wins over a same-named field nested deeper in the payload
func PickStringAcross(records []map[string]any, keys ...string) (string, bool) {
	for _, rec := range records {
		if s, ok := PickString(rec, keys...); ok {
			return s, true
		}
	}
	return "", false
}

// PickNumberAcross applies PickNumber over candidate records in order
func PickNumberAcross(records []map[string]any, keys ...string) (float64, bool) {
	for _, rec := range records {
		if n, ok := PickNumber(rec, keys...); ok {
			return n, true
		}
	}
	return 0, false
}

// PickBoolAcross applies PickBool over candidate records in order
func PickBoolAcross(records []map[string]any, keys ...string) (bool, bool) {
	for _, rec := range records {
		if b, ok := PickBool(rec, keys...); ok {
			return b, true
		}
	}
	return false, false
}

// PickAnyAcross applies PickAny over candidate records in order
func PickAnyAcross(records []map[string]any, keys ...string) (any, bool) {
	for _, rec := range records {
		if v, ok := PickAny(rec, keys...); ok {
			return v, true
		}
	}
	return nil, false
}

// CandidateRecords builds the ordered record list a normalizer searches: the
// payload itself, its data envelope, then any known container keys; each
// included only when it is itself a non-array object.
func CandidateRecords(payload any, containerKeys ...string) []map[string]any {
	candidates := make([]map[string]any, 0, 2+len(containerKeys))

	root, ok := AsRecord(payload)
	if !ok {
		return candidates
	}
	candidates = append(candidates, root)

	for _, key := range append([]string{"data"}, containerKeys...) {
		if nested, ok := AsRecord(root[key]); ok {
			candidates = append(candidates, nested)
		}
	}
	return candidates
}

// AsRecord returns v as an object record when it is one
func AsRecord(v any) (map[string]any, bool) {
	rec, ok := v.(map[string]any)
	return rec, ok
}

// AsRecords tolerates a single object where an array was expected, and
// skips non-object elements inside arrays
func AsRecords(v any) []map[string]any {
	switch val := v.(type) {
	case []any:
		records := make([]map[string]any, 0, len(val))
		for _, item := range val {
			if rec, ok := AsRecord(item); ok {
				records = append(records, rec)
			}
		}
		return records
	case map[string]any:
		return []map[string]any{val}
	}
	return nil
}

// lookupPath resolves a possibly-dotted key against a record, descending one
// nested object per dot
func lookupPath(record map[string]any, key string) (any, bool) {
	if record == nil {
		return nil, false
	}
	if !strings.Contains(key, ".") {
		v, ok := record[key]
		return v, ok
	}

	parts := strings.Split(key, ".")
	current := record
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		current, ok = AsRecord(v)
		if !ok {
			return nil, false
		}
	}
	return nil, false
}

func coerceString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		trimmed := strings.TrimSpace(val)
		return trimmed, trimmed != ""
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return "", false
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	}
	return "", false
}

func coerceNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func coerceBool(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0":
			return false, true
		}
	case float64:
		if val == 1 {
			return true, true
		}
		if val == 0 {
			return false, true
		}
	}
	return false, false
}
