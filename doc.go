// Package eewl implements a wear-leveling storage engine for a
// byte-addressable, limited-endurance EEPROM accessed through a Device
// abstraction. It lets firmware durably store a single fixed-size payload
// with far more update cycles than the underlying memory cell endurance by
// rotating writes across a ring of N slots and reconstructing the logical
// head after a power loss by scanning on-media metadata alone.
//
// On-media layout
//
// Each slot holds one fixed-layout record, repeated N times contiguously:
//
//	Record := payload[S] || seq[4, little-endian] || crc[1]
//
// seq is a 32-bit monotone write counter. crc is the 8-bit XOR of the S
// payload bytes (not including seq). Record size R = S + 5, no padding.
// The all-ones byte pattern (0xFF) is the erased/"blank" state; a fully
// blank record decodes to seq = 0xFFFFFFFF.
//
// At any committed state there is at most one break index b in [0, N)
// where seq[(b+1) mod N] != seq[b]+1 — the boundary between the newest
// record (at b) and the oldest, or blank (at b+1). Recovery after an
// arbitrary reset, including a torn write mid-record, is a linear scan
// for that break followed by CRC validation stepping backwards from it.
//
// Wear-leveling can be disabled per region at construction, in which case
// the region is a plain indexed array of raw payloads with no seq/crc
// framing (passthrough mode).
package eewl
