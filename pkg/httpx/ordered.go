package httpx

import (
	"bytes"
	"encoding/json"
)

// OrderedObject is a JSON object whose keys are written in insertion order.
// encoding/json sorts map keys, so responses whose key order carries meaning
// build one of these instead of a map. The zero value encodes as {}.
type OrderedObject[V any] struct {
	keys   []string
	values []V
}

// Set appends key with value v. Keys are expected to be unique.
func (o *OrderedObject[V]) Set(key string, v V) {
	o.keys = append(o.keys, key)
	o.values = append(o.values, v)
}

// Len returns the number of keys.
func (o *OrderedObject[V]) Len() int {
	return len(o.keys)
}

// MarshalJSON encodes the object preserving key order.
func (o OrderedObject[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeTo(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeTo(&buf, o.values[i]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeTo appends v without HTML escaping and without the encoder's trailing newline.
func encodeTo(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
