package types

import (
	"time"
)

func ParseTime(t string) (time.Time, error) {
	return time.Parse(time.RFC3339, t)
}

func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// timestampLayouts are tried in order by ParseTimestamp. The backend is not
// consistent about timezone suffixes or sub-second precision.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a timestamp string tolerantly. A value that fails
// every layout is treated as absent (nil), not as an error; the status
// deriver then falls back to its next available signal.
func ParseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// TimestampFromAny parses a timestamp from a raw payload value, which may be
// an ISO string or a unix epoch number (seconds or milliseconds).
func TimestampFromAny(v any) *time.Time {
	switch val := v.(type) {
	case string:
		return ParseTimestamp(val)
	case float64:
		return epochToTime(int64(val))
	case int64:
		return epochToTime(val)
	case int:
		return epochToTime(int64(val))
	}
	return nil
}

func epochToTime(n int64) *time.Time {
	if n <= 0 {
		return nil
	}
	var t time.Time
	// heuristic split between epoch seconds and milliseconds
	if n > 1e12 {
		t = time.UnixMilli(n).UTC()
	} else {
		t = time.Unix(n, 0).UTC()
	}
	return &t
}
