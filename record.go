package eewl

import "encoding/binary"

const (
	// lengthOfSeqField is the width in bytes of the seq field.
	lengthOfSeqField = 4
	// lengthOfCrcField is the width in bytes of the crc field.
	lengthOfCrcField = 1

	// blankSeq is the seq value a fully-erased (0xFF) record decodes to.
	blankSeq = 0xFFFFFFFF
	// blankCrc is the crc byte a fully-erased (0xFF) record decodes to.
	blankCrc = 0xFF
)

// recordOverhead is the space a record spends on seq+crc, i.e. R = S + recordOverhead.
const recordOverhead = lengthOfSeqField + lengthOfCrcField

// record is the on-media tuple (payload, seq, crc) for one slot.
// Layout: payload[S] || seq[4, little-endian] || crc[1]. No padding.
type record struct {
	payload []byte
	seq     uint32
	crc     byte
}

// crcOf computes the 8-bit XOR checksum over the serialized payload
// bytes (spec.md §4.1, §9-Q5: CRC MUST be over serialized bytes, never
// over a type's in-memory representation).
func crcOf(payload []byte) byte {
	var c byte
	for _, b := range payload {
		c ^= b
	}
	return c
}

// isBlank reports whether this record decoded from an untouched, erased
// (0xFF) slot. Per spec.md §9-Q1, blankness MUST always be decided by the
// seq sentinel, never by the CRC (odd payload lengths make a legitimate
// all-ones payload CRC-indistinguishable from blank).
func (r record) isBlank() bool {
	return r.seq == blankSeq
}

// crcValid reports whether the record's stored crc matches its payload.
func (r record) crcValid() bool {
	return crcOf(r.payload) == r.crc
}

// encodeRecord packs payload and seq into a slot-sized buffer, computing
// crc over payload (spec.md §4.1).
func encodeRecord(payload []byte, seq uint32) []byte {
	size := len(payload)
	buf := make([]byte, size+recordOverhead)
	copy(buf, payload)
	binary.LittleEndian.PutUint32(buf[size:size+lengthOfSeqField], seq)
	buf[size+lengthOfSeqField] = crcOf(payload)
	return buf
}

// decodeRecord unpacks a slot-sized buffer into a record. size is the
// expected payload size S; buf MUST be exactly S+recordOverhead bytes.
func decodeRecord(buf []byte, size int) record {
	payload := make([]byte, size)
	copy(payload, buf[:size])
	seq := binary.LittleEndian.Uint32(buf[size : size+lengthOfSeqField])
	crc := buf[size+lengthOfSeqField]
	return record{payload: payload, seq: seq, crc: crc}
}
