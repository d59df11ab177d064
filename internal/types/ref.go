package types

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var refJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// refIDKeys are probed, in order, when a reference arrives as an embedded
// object rather than a bare identifier.
var refIDKeys = []string{"_id", "id", "uuid"}

// Ref is a polymorphic reference to an entity of type T. Depending on which
// endpoint produced the payload, the same field may hold a bare identifier,
// a fully embedded object, or nothing at all. Resolving a Ref never fails;
// absence is a first-class result, not an error.
type Ref[T any] struct {
	id     string
	entity *T
}

// NewIDRef builds a reference from a bare identifier
func NewIDRef[T any](id string) Ref[T] {
	return Ref[T]{id: id}
}

// NewEntityRef builds a reference from an embedded entity
func NewEntityRef[T any](entity *T) Ref[T] {
	return Ref[T]{entity: entity}
}

// IsZero reports whether the reference is absent
func (r Ref[T]) IsZero() bool {
	return r.id == "" && r.entity == nil
}

// Entity returns the embedded entity, or nil when the reference arrived as
// a bare identifier or is absent
func (r Ref[T]) Entity() *T {
	return r.entity
}

// ID returns the identifier carried by the reference. For embedded objects
// this is the identifier probed from the raw payload; use Resolve when the
// identifier lives on a typed field instead.
func (r Ref[T]) ID() string {
	return r.id
}

// Resolve unwraps a reference into an identifier and an embedded entity,
// either of which may be absent. extract pulls the identifier out of an
// embedded entity when the raw payload did not carry one of the known id
// keys; it may be nil.
func Resolve[T any](r Ref[T], extract func(*T) string) (string, *T) {
	id := r.id
	if id == "" && r.entity != nil && extract != nil {
		id = extract(r.entity)
	}
	return id, r.entity
}

// UnmarshalJSON accepts a bare identifier (string or number), an embedded
// object, or null. It never returns an error; anything unrecognizable
// degrades to an absent reference.
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	*r = RefFromJSON[T](data)
	return nil
}

// MarshalJSON round-trips the reference in its most informative form
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.entity != nil {
		return refJSON.Marshal(r.entity)
	}
	if r.id != "" {
		return refJSON.Marshal(r.id)
	}
	return []byte("null"), nil
}

// RefFromJSON decodes a reference from raw JSON, degrading to absent on
// malformed input
func RefFromJSON[T any](data []byte) Ref[T] {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Ref[T]{}
	}

	switch data[0] {
	case '"':
		var id string
		if err := refJSON.Unmarshal(data, &id); err != nil {
			return Ref[T]{}
		}
		return Ref[T]{id: id}
	case '{':
		var raw map[string]any
		if err := refJSON.Unmarshal(data, &raw); err != nil {
			return Ref[T]{}
		}
		return refFromRecord[T](raw)
	}

	// tolerate numeric identifiers
	var n float64
	if err := refJSON.Unmarshal(data, &n); err == nil {
		return Ref[T]{id: formatNumericID(n)}
	}
	return Ref[T]{}
}

// RefFromAny builds a reference from an already-decoded payload value
func RefFromAny[T any](v any) Ref[T] {
	switch val := v.(type) {
	case nil:
		return Ref[T]{}
	case string:
		return Ref[T]{id: val}
	case float64:
		return Ref[T]{id: formatNumericID(val)}
	case int:
		return Ref[T]{id: fmt.Sprintf("%d", val)}
	case map[string]any:
		return refFromRecord[T](val)
	}
	return Ref[T]{}
}

func refFromRecord[T any](raw map[string]any) Ref[T] {
	ref := Ref[T]{}
	if id, ok := PickString(raw, refIDKeys...); ok {
		ref.id = id
	}

	// re-decode the record into the typed entity; a partial decode still
	// yields whatever fields matched
	data, err := refJSON.Marshal(raw)
	if err != nil {
		return ref
	}
	entity := new(T)
	if err := refJSON.Unmarshal(data, entity); err == nil {
		ref.entity = entity
	}
	return ref
}

func formatNumericID(n float64) string {
	if n == float64(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%v", n)
}
