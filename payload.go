package eewl

// Payload is the generic constraint the engine is built against
// (spec.md §9: "the source uses a type parameter for the payload...
// re-express as: the engine is generic over any payload type that
// exposes a fixed serialized length S and byte-level serialize/
// deserialize"). T is the caller's value type; P is *T, carrying the
// pointer-receiver methods a decode step needs to mutate in place.
//
// A typical implementation:
//
//	type Counter uint32
//	func (c *Counter) Size() int       { return 4 }
//	func (c *Counter) Encode() []byte  { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, uint32(*c)); return b }
//	func (c *Counter) Decode(b []byte) error { *c = Counter(binary.LittleEndian.Uint32(b)); return nil }
//
// used as Engine[Counter, *Counter].
type Payload[T any] interface {
	*T
	// Size returns the fixed number of bytes Encode produces. MUST be
	// constant and MUST NOT depend on the receiver's data: the engine
	// calls it on a zero value at construction time, before any record
	// has ever been written.
	Size() int
	// Encode serializes the payload to exactly Size() bytes.
	Encode() []byte
	// Decode populates the payload from exactly Size() bytes, as
	// produced by Encode.
	Decode([]byte) error
}
