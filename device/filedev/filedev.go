// Package filedev implements eewl.Device over a single host file, for
// running the engine against a real byte-addressable medium on a dev
// machine before flashing firmware onto the actual EEPROM part.
package filedev

import (
	"fmt"
	"os"
)

// Device is a file-backed block device. Use Open or Create.
type Device struct {
	file *os.File
}

// Create creates (or truncates) a file of the given size at path,
// filled with the blank (0xFF) erase pattern, and opens it as a Device.
func Create(path string, size uint32) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("filedev: create %s: %w", path, err)
	}
	blank := make([]byte, size)
	for i := range blank {
		blank[i] = 0xFF
	}
	if _, err := f.Write(blank); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("filedev: initialize %s: %w", path, err)
	}
	return &Device{file: f}, nil
}

// Open opens an existing file as a Device without touching its content —
// the file is expected to already hold a previously-written region, the
// way a real EEPROM survives a power cycle.
func Open(path string) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("filedev: open %s: %w", path, err)
	}
	return &Device{file: f}, nil
}

// Close closes the underlying file handle.
func (d *Device) Close() error {
	return d.file.Close()
}

// ReadAt implements eewl.Device.
func (d *Device) ReadAt(addr uint32, buf []byte) error {
	n, err := d.file.ReadAt(buf, int64(addr))
	if err != nil {
		return fmt.Errorf("filedev: read at %d: %w", addr, err)
	}
	if n != len(buf) {
		return fmt.Errorf("filedev: short read at %d: got %d want %d bytes", addr, n, len(buf))
	}
	return nil
}

// WriteAt implements eewl.Device. It syncs after every write, the way a
// real EEPROM's write cycle is complete (and durable) before the bus
// transaction returns.
func (d *Device) WriteAt(addr uint32, buf []byte) error {
	n, err := d.file.WriteAt(buf, int64(addr))
	if err != nil {
		return fmt.Errorf("filedev: write at %d: %w", addr, err)
	}
	if n != len(buf) {
		return fmt.Errorf("filedev: short write at %d: wrote %d want %d bytes", addr, n, len(buf))
	}
	return d.file.Sync()
}
