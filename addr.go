package eewl

// addrOf translates a slot index to a device-global byte address within
// the region. i is always reduced modulo n first — circular addressing
// is enforced here, not by the device (spec.md §4.2, §9-Q3: the original
// source's off-by-one on the wraparound neighbor read is exactly the bug
// this unconditional mod avoids).
func addrOf(base uint32, recordSize uint32, n uint32, i uint32) uint32 {
	return base + (i%n)*recordSize
}
