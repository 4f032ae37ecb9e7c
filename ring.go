package eewl

import (
	"fmt"

	"k8s.io/klog/v2"
)

// ring holds the mutable state of the wear-leveling ring controller
// (spec.md §4.3): head (next slot to receive a push), last (slot holding
// the most recently committed record), and nextSeq (the monotone write
// counter that will be stamped into the next record).
type ring struct {
	head    uint32
	last    uint32
	nextSeq uint32
	blank   bool
}

// push forms a record for payload, writes it at addrOf(head), and then
// advances the ring (spec.md §4.3 steps 1-3). A crash between the write
// and the in-memory advance is safe: the next Open's scanner will
// rediscover the new record as the head from on-media state alone.
func (r *ring) push(dev Device, base, recordSize, n uint32, payload []byte) error {
	seq := r.nextSeq
	buf := encodeRecord(payload, seq)
	addr := addrOf(base, recordSize, n, r.head)
	if err := dev.WriteAt(addr, buf); err != nil {
		return fmt.Errorf("%w: write slot %d at 0x%x: %v", ErrDeviceIO, r.head, addr, err)
	}
	r.last = r.head
	r.head = (r.head + 1) % n
	r.nextSeq = seq + 1
	r.blank = false
	klog.V(3).Infof("eewl: push seq=%d slot=%d head=%d", seq, r.last, r.head)
	return nil
}

// getLast reads the record at r.last and returns its payload. If the
// region has never been written since wipe, it returns the caller's
// default instead (spec.md §4.3 get_last).
func (r *ring) getLast(dev Device, base, recordSize, n uint32, payloadSize int, defaultPayload []byte) ([]byte, error) {
	if r.blank {
		return defaultPayload, nil
	}
	addr := addrOf(base, recordSize, n, r.last)
	buf := make([]byte, recordSize)
	if err := dev.ReadAt(addr, buf); err != nil {
		return nil, fmt.Errorf("%w: read slot %d at 0x%x: %v", ErrDeviceIO, r.last, addr, err)
	}
	rec := decodeRecord(buf, payloadSize)
	return rec.payload, nil
}
