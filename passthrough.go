package eewl

import "fmt"

// passthroughWriteAt writes payload directly at slot i (mod n), with no
// seq/crc framing (spec.md §4.5: "plain indexed array of raw payloads").
func passthroughWriteAt(dev Device, base, payloadSize, n, i uint32, payload []byte) error {
	addr := addrOf(base, payloadSize, n, i)
	if err := dev.WriteAt(addr, payload); err != nil {
		return fmt.Errorf("%w: write_at slot %d at 0x%x: %v", ErrDeviceIO, i, addr, err)
	}
	return nil
}

// passthroughReadAt reads the raw payload at slot i (mod n).
func passthroughReadAt(dev Device, base, payloadSize, n, i uint32) ([]byte, error) {
	addr := addrOf(base, payloadSize, n, i)
	buf := make([]byte, payloadSize)
	if err := dev.ReadAt(addr, buf); err != nil {
		return nil, fmt.Errorf("%w: read_at slot %d at 0x%x: %v", ErrDeviceIO, i, addr, err)
	}
	return buf, nil
}
