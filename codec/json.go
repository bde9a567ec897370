package codec

import "encoding/json"

// JSON is a Codec backed by encoding/json. The zero value is ready to use.
// It is the round-trip default: human-readable payloads make a failed
// verification easy to inspect by hand.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
