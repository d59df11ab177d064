package types

// Metadata is a free-form string map attached to catalog products and prices
type Metadata map[string]string

// Get returns the value for key, tolerating a nil map
func (m Metadata) Get(key string) string {
	if m == nil {
		return ""
	}
	return m[key]
}
