package tree

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	_ json.Marshaler = (*Map[int, int])(nil)
	_ yaml.Marshaler = (*Map[int, int])(nil)
	_ fmt.Stringer   = (*Map[int, int])(nil)
)

// MarshalJSON encodes the map as an ordered array of {"key", "value"} objects.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Pairs())
}

// MarshalYAML encodes the map as an ordered sequence of key/value mappings.
func (m *Map[K, V]) MarshalYAML() (any, error) {
	return m.Pairs(), nil
}

// String renders the entries in order, e.g. "{1:one 2:two}".
func (m *Map[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for n := m.first(); n != nil; n = n.next() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&b, "%v:%v", n.key, n.value)
	}
	b.WriteByte('}')
	return b.String()
}
