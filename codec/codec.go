// Package codec provides the pluggable serializers a cache snapshot travels
// through on its round trip. All implementations are pure functions of their
// input; none retain state between calls unless documented.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
