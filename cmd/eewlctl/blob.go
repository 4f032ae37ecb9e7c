package main

// blobSize is the fixed payload size eewlctl pushes and peeks. The CLI
// is a diagnostic tool, not a firmware target, so one generic
// fixed-width slot is enough to exercise every engine operation without
// needing a compile-time payload type per manifest.
const blobSize = 8

// blob is a fixed-size opaque payload, eewl.Payload[blob]'s T.
type blob [blobSize]byte

func (b *blob) Size() int { return blobSize }

func (b *blob) Encode() []byte {
	out := make([]byte, blobSize)
	copy(out, b[:])
	return out
}

func (b *blob) Decode(raw []byte) error {
	copy(b[:], raw)
	return nil
}
