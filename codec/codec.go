package codec

// Codec encodes/decodes values V to []byte for storage. A decode failure on
// read makes the cache treat the entry as corrupt and remove it.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
