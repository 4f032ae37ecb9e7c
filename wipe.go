package eewl

import "fmt"

// wipeChunkSize is the widest word batched per write during a wipe. The
// reference implementation (original_source/WL_AT24CX.h's wipe) batches
// in uint64_t-sized chunks; we do the same (spec.md §4.6: "implementations
// MAY batch in 8-byte chunks as the reference does").
const wipeChunkSize = 8

var blankChunk = [wipeChunkSize]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

// wipeSpan writes the all-ones pattern across span bytes starting at the
// given device offset, in wipeChunkSize batches, with a final partial
// chunk if span isn't a multiple of wipeChunkSize.
func wipeSpan(dev Device, startAddr, span uint32) error {
	var off uint32
	for off < span {
		n := uint32(wipeChunkSize)
		if span-off < n {
			n = span - off
		}
		if err := dev.WriteAt(startAddr+off, blankChunk[:n]); err != nil {
			return fmt.Errorf("%w: wipe at 0x%x: %v", ErrDeviceIO, startAddr+off, err)
		}
		off += n
	}
	return nil
}
