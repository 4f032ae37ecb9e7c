package eewl

import "encoding/binary"

// u16 is the test payload type used across this package's tests: the
// same "payload = u16" shape spec.md §8's end-to-end scenarios use.
type u16 uint16

func (p *u16) Size() int { return 2 }

func (p *u16) Encode() []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(*p))
	return b
}

func (p *u16) Decode(b []byte) error {
	*p = u16(binary.LittleEndian.Uint16(b))
	return nil
}
