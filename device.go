package eewl

// Device is the thin block-device abstraction the engine consumes. It is
// the boundary spec.md §1 places out of core scope: the byte-level EEPROM
// driver (I2C/SPI transaction framing, page-write timing) lives behind
// this interface, not inside the engine.
//
// ReadAt MUST fill buf entirely or return a non-nil error. WriteAt MUST
// commit buf before returning. Addresses are device-global byte offsets;
// the engine never assumes anything about page boundaries on the other
// side of this interface.
type Device interface {
	ReadAt(addr uint32, buf []byte) error
	WriteAt(addr uint32, buf []byte) error
}
