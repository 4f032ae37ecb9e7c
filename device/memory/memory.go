// Package memory implements eewl.Device over an in-process byte slice,
// blank-initialized to 0xFF like an erased EEPROM. It's used by the
// engine's own tests and by cmd/eewlctl's --dry-run mode, the way
// ljmsc-wal's segmentFile keeps its write offset and key-offset tables
// purely in memory behind the same interface it uses for the on-disk
// form — here there's no disk form at all.
package memory

import "fmt"

// Device is an in-memory block device. The zero value is not usable;
// use New.
type Device struct {
	bytes []byte
}

// New creates a Device of the given size, filled with the blank (0xFF)
// pattern.
func New(size uint32) *Device {
	d := &Device{bytes: make([]byte, size)}
	for i := range d.bytes {
		d.bytes[i] = 0xFF
	}
	return d
}

// ReadAt implements eewl.Device.
func (d *Device) ReadAt(addr uint32, buf []byte) error {
	if err := d.checkBounds(addr, len(buf)); err != nil {
		return err
	}
	copy(buf, d.bytes[addr:addr+uint32(len(buf))])
	return nil
}

// WriteAt implements eewl.Device.
func (d *Device) WriteAt(addr uint32, buf []byte) error {
	if err := d.checkBounds(addr, len(buf)); err != nil {
		return err
	}
	copy(d.bytes[addr:addr+uint32(len(buf))], buf)
	return nil
}

// Corrupt overwrites a single byte directly, bypassing WriteAt's bounds
// checking semantics — useful in tests to simulate a torn write by
// flipping a stored crc byte.
func (d *Device) Corrupt(addr uint32, value byte) {
	d.bytes[addr] = value
}

func (d *Device) checkBounds(addr uint32, n int) error {
	if uint64(addr)+uint64(n) > uint64(len(d.bytes)) {
		return fmt.Errorf("memory device: access [%d, %d) out of bounds (size %d)", addr, uint64(addr)+uint64(n), len(d.bytes))
	}
	return nil
}
