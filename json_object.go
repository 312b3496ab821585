package folio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// orderedObject builds a JSON object whose keys keep their insertion order, which a map cannot
// do. The zero value is an empty object.
//
// The first marshaling error sticks and is returned by MarshalJSON.
type orderedObject struct {
	keys   []string
	values []json.RawMessage
	err    error
}

// Set appends key with value marshaled by encoding/json.
func (o *orderedObject) Set(key string, value any) *orderedObject {
	if o.err != nil {
		return o
	}
	raw, err := json.Marshal(value)
	if err != nil {
		o.err = fmt.Errorf("cannot marshal %q: %w", key, err)
		return o
	}
	o.keys = append(o.keys, key)
	o.values = append(o.values, raw)
	return o
}

// SetNonZero is like Set but skips zero values.
func (o *orderedObject) SetNonZero(key string, value any) *orderedObject {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return o
	}
	return o.Set(key, value)
}

func (o *orderedObject) MarshalJSON() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(o.values[i])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
