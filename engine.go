package eewl

import (
	"fmt"

	"k8s.io/klog/v2"
)

// Engine is the wear-leveling storage engine for one region on a Device
// (spec.md §6, "Engine surface"). T is the logical payload type; P is
// *T, satisfying Payload[T]. Each region owns its own
// (base, end, N, head, last, next_seq, wl_enabled, blank) state (spec.md
// §9: "Global/quasi-global state -> per-region state struct").
//
// seq is a single 32-bit counter for the whole ring with no wraparound
// handling: a record stamped with seq 0xFFFFFFFF reads as blank to the
// scanner, so a region's lifetime is 2^32-1 pushes in total, whatever N is.
type Engine[T any, P Payload[T]] struct {
	dev         Device
	cfg         Config
	recordSize  uint32
	payloadSize int
	r           ring
	opened      bool
}

// New constructs a region over dev per cfg. It performs no I/O (spec.md
// §6, construct: "does no I/O"); call Open to reconstruct state from the
// device.
func New[T any, P Payload[T]](dev Device, cfg Config) (*Engine[T, P], error) {
	var sample T
	size := P(&sample).Size()
	if err := cfg.Validate(size); err != nil {
		return nil, err
	}
	return &Engine[T, P]{
		dev:         dev,
		cfg:         cfg,
		recordSize:  recordSizeFor(size, cfg.WearLevel),
		payloadSize: size,
	}, nil
}

// Open reconstructs (head, last, next_seq) by scanning the device
// (spec.md §4.4). In passthrough mode there is no ring state to
// reconstruct; Open only marks the region ready.
func (e *Engine[T, P]) Open() error {
	if !e.cfg.WearLevel {
		e.opened = true
		klog.V(2).Infof("eewl: opened passthrough region base=0x%x n=%d", e.cfg.Base, e.cfg.SlotCount)
		return nil
	}
	r, err := scan(e.dev, e.cfg.Base, e.recordSize, e.cfg.SlotCount, e.payloadSize)
	if err != nil {
		return err
	}
	e.r = r
	e.opened = true
	klog.Infof("eewl: opened region base=0x%x n=%d head=%d last=%d next_seq=%d blank=%v",
		e.cfg.Base, e.cfg.SlotCount, r.head, r.last, r.nextSeq, r.blank)
	return nil
}

// Push durably writes v at the current head and rotates the ring
// (spec.md §4.3). Push requires wear-leveling to be enabled; calling it
// on a passthrough region is a programming error (spec.md §4.3, §7).
func (e *Engine[T, P]) Push(v T) error {
	if !e.cfg.WearLevel {
		panic(ErrModeDisabled)
	}
	if !e.opened {
		return ErrNotOpen
	}
	payload := P(&v).Encode()
	return e.r.push(e.dev, e.cfg.Base, e.recordSize, e.cfg.SlotCount, payload)
}

// GetLast returns the payload at the most recently committed slot, or
// the zero value of T if the region has never been written since a
// wipe (spec.md §4.3).
func (e *Engine[T, P]) GetLast() (T, error) {
	var zero T
	if !e.opened {
		return zero, ErrNotOpen
	}
	defaultBytes := P(&zero).Encode()
	payload, err := e.r.getLast(e.dev, e.cfg.Base, e.recordSize, e.cfg.SlotCount, e.payloadSize, defaultBytes)
	if err != nil {
		return zero, err
	}
	var out T
	if err := P(&out).Decode(payload); err != nil {
		return zero, fmt.Errorf("eewl: decode last payload: %w", err)
	}
	return out, nil
}

// Record is the raw on-media record returned by Peek, for diagnostics.
type Record struct {
	Payload []byte
	Seq     uint32
	Crc     byte
	Blank   bool
}

// Peek reads the raw record at slot i without interpreting it through
// the ring's head/last bookkeeping (spec.md §6, "peek(i) -> Record: Raw
// record read (diagnostic)"). Valid in wear-leveled mode only.
func (e *Engine[T, P]) Peek(i uint32) (Record, error) {
	if !e.cfg.WearLevel {
		return Record{}, ErrModeDisabled
	}
	addr := addrOf(e.cfg.Base, e.recordSize, e.cfg.SlotCount, i)
	buf := make([]byte, e.recordSize)
	if err := e.dev.ReadAt(addr, buf); err != nil {
		return Record{}, fmt.Errorf("%w: peek slot %d at 0x%x: %v", ErrDeviceIO, i, addr, err)
	}
	rec := decodeRecord(buf, e.payloadSize)
	return Record{Payload: rec.payload, Seq: rec.seq, Crc: rec.crc, Blank: rec.isBlank()}, nil
}

// ReadAt reads the payload at passthrough index i (spec.md §4.5). Valid
// in passthrough mode only.
func (e *Engine[T, P]) ReadAt(i uint32) (T, error) {
	var zero T
	if e.cfg.WearLevel {
		return zero, ErrModeDisabled
	}
	buf, err := passthroughReadAt(e.dev, e.cfg.Base, uint32(e.payloadSize), e.cfg.SlotCount, i)
	if err != nil {
		return zero, err
	}
	var out T
	if err := P(&out).Decode(buf); err != nil {
		return zero, fmt.Errorf("eewl: decode slot %d: %w", i, err)
	}
	return out, nil
}

// WriteAt writes v at passthrough index i (spec.md §4.5). Valid in
// passthrough mode only.
func (e *Engine[T, P]) WriteAt(i uint32, v T) error {
	if e.cfg.WearLevel {
		return ErrModeDisabled
	}
	payload := P(&v).Encode()
	return passthroughWriteAt(e.dev, e.cfg.Base, uint32(e.payloadSize), e.cfg.SlotCount, i, payload)
}

// EndAddr returns base + region size in bytes, for chaining the next
// region's Base (spec.md §6, §9 "end_addr() chaining").
func (e *Engine[T, P]) EndAddr() uint32 {
	return e.cfg.Base + e.cfg.SlotCount*e.recordSize
}

// Wipe writes the all-ones pattern across span bytes starting at device
// offset 0, ignoring this region's own bounds (spec.md §4.6, a
// device-wide utility by design).
func (e *Engine[T, P]) Wipe(span uint32) error {
	klog.Infof("eewl: device-wide wipe of %d bytes from offset 0", span)
	return wipeSpan(e.dev, 0, span)
}

// WipeRegion wipes exactly this region's own extent, [Base, EndAddr())
// (spec.md §9-Q4, original_source/WL_AT24CX.h's no-arg wipe() overload).
// After WipeRegion, the next Open observes the blank-region shortcut.
func (e *Engine[T, P]) WipeRegion() error {
	span := e.cfg.SlotCount * e.recordSize
	klog.Infof("eewl: region-bounded wipe of %d bytes at base=0x%x", span, e.cfg.Base)
	return wipeSpan(e.dev, e.cfg.Base, span)
}
