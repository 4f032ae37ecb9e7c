package eewl

import "fmt"

// Config describes one region's geometry. It does no I/O by itself —
// construct time only computes addresses (spec.md §6, construct:
// "Computes end = base + N*R... does no I/O").
type Config struct {
	// Base is the byte offset of slot 0 within the device.
	Base uint32

	// SlotCount is N, the number of slots in the ring. Must be >= 2.
	SlotCount uint32

	// WearLevel selects wear-leveled mode (ring of Record{payload,seq,crc})
	// when true, or passthrough mode (plain indexed array of raw
	// payloads, no seq/crc) when false.
	WearLevel bool

	// DeviceSize is the total addressable size of the device backing
	// this region, used to bounds-check Base+N*R against the device.
	DeviceSize uint32

	// PageSize is the device's underlying page size, in bytes. It's
	// informational only at this layer (the engine issues no
	// page-aligned transactions itself) but is carried so callers can
	// size their Device adapter's write batching around it.
	PageSize uint32
}

// Validate checks the config for fatal configuration errors (spec.md §7:
// "Configuration error (fatal at construction): N < 2, base + N*R >
// device_size").
func (c Config) Validate(payloadSize int) error {
	if c.SlotCount < 2 {
		return fmt.Errorf("%w: slot count %d is less than 2", ErrConfigInvalid, c.SlotCount)
	}
	if payloadSize <= 0 {
		return fmt.Errorf("%w: payload size must be positive, got %d", ErrConfigInvalid, payloadSize)
	}

	recordSize := recordSizeFor(payloadSize, c.WearLevel)
	end := uint64(c.Base) + uint64(c.SlotCount)*uint64(recordSize)
	if c.DeviceSize != 0 && end > uint64(c.DeviceSize) {
		return fmt.Errorf("%w: region [%d, %d) exceeds device size %d", ErrConfigInvalid, c.Base, end, c.DeviceSize)
	}
	return nil
}

// recordSizeFor returns R for wear-leveled mode (S+5) or S itself for
// passthrough mode (spec.md §4.2).
func recordSizeFor(payloadSize int, wearLevel bool) uint32 {
	if wearLevel {
		return uint32(payloadSize) + recordOverhead
	}
	return uint32(payloadSize)
}

// RecordSize exposes recordSizeFor to other packages (regionset, and
// callers computing a chained region's Base without constructing an
// Engine first).
func RecordSize(payloadSize int, wearLevel bool) uint32 {
	return recordSizeFor(payloadSize, wearLevel)
}
