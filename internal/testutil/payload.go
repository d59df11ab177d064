package testutil

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Payload decodes a JSON literal into the untyped snapshot form the
// normalizers consume, failing the test on malformed fixtures.
func Payload(t *testing.T, raw string) any {
	t.Helper()
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("invalid fixture: %v", err)
	}
	return payload
}
