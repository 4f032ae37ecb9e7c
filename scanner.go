package eewl

import (
	"fmt"

	"k8s.io/klog/v2"
)

// scan reconstructs (head, last, nextSeq) from on-media state alone
// (spec.md §4.4). It implements the state machine documented there:
//
//	SCAN_BREAK --blank(0,1)--> BLANK (terminal)
//	SCAN_BREAK --break at b--> VALIDATE(b)
//	VALIDATE(i) --crc ok-----> READY (terminal)
//	VALIDATE(i) --crc bad----> VALIDATE((i-1) mod N), attempts++
//	VALIDATE(.) --attempts>=N-> FATAL
//	SCAN_BREAK --no break----> FATAL
//
// Break-finding and CRC validation are deliberately two separate passes
// (spec.md §4.4 notes this split is not required by the original source
// but is required here), grounded on original_source/WL_AT24CX.h's
// wl_init2, which separates "find the break" from "validate backwards
// from the break" instead of mixing them in one loop like wl_init.
func scan(dev Device, base, recordSize, n uint32, payloadSize int) (ring, error) {
	readSlot := func(i uint32) (record, error) {
		addr := addrOf(base, recordSize, n, i)
		buf := make([]byte, recordSize)
		if err := dev.ReadAt(addr, buf); err != nil {
			return record{}, fmt.Errorf("%w: read slot %d at 0x%x: %v", ErrDeviceIO, i, addr, err)
		}
		return decodeRecord(buf, payloadSize), nil
	}

	// Step 1: blank-region shortcut.
	slot0, err := readSlot(0)
	if err != nil {
		return ring{}, err
	}
	if n > 1 {
		slot1, err := readSlot(1)
		if err != nil {
			return ring{}, err
		}
		if slot0.isBlank() && slot1.isBlank() {
			klog.V(2).Infof("eewl: scan found blank region, base=0x%x n=%d", base, n)
			return ring{head: 0, last: 0, nextSeq: 0, blank: true}, nil
		}
	}

	// Step 2: find the break.
	var breakIdx uint32
	found := false
	var cur record
	for i := uint32(0); i < n; i++ {
		c, err := readSlot(i)
		if err != nil {
			return ring{}, err
		}
		next, err := readSlot((i + 1) % n)
		if err != nil {
			return ring{}, err
		}
		if next.seq-c.seq != 1 || next.seq == blankSeq {
			breakIdx = i
			cur = c
			found = true
			break
		}
	}
	if !found {
		klog.Errorf("eewl: scan found no break in sequence across %d slots, region is corrupt", n)
		return ring{}, fmt.Errorf("%w: no break found in %d slots", ErrCorrupt, n)
	}

	// Step 3: validate the head candidate, stepping backwards on a torn
	// write (spec.md §4.4 step 3; VALIDATE state).
	candidate := breakIdx
	candRec := cur
	attempts := uint32(0)
	for {
		if candRec.crcValid() {
			last := candidate
			head := (last + 1) % n
			nextSeq := candRec.seq + 1
			if attempts > 0 {
				klog.V(2).Infof("eewl: recovered torn write, stepped back %d slot(s) to slot %d", attempts, last)
			}
			return ring{head: head, last: last, nextSeq: nextSeq, blank: false}, nil
		}
		attempts++
		if attempts >= n {
			klog.Errorf("eewl: scan exhausted %d validation attempts without a valid crc, region is corrupt", n)
			return ring{}, fmt.Errorf("%w: no valid crc found after %d attempts", ErrCorrupt, attempts)
		}
		if candidate == 0 {
			candidate = n - 1
		} else {
			candidate--
		}
		candRec, err = readSlot(candidate)
		if err != nil {
			return ring{}, err
		}
	}
}
