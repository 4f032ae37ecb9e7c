package eewl

import (
	"testing"

	"github.com/matryer/is"
	"github.com/ramadhanafif/WL-AT24Cx/device/memory"
)

// newTestEngine builds an N=4, payload=u16, base=0, R=7 region over a
// fresh blank in-memory device, matching spec.md §8's end-to-end scenario
// setup.
func newTestEngine(t *testing.T, dev *memory.Device) *Engine[u16, *u16] {
	t.Helper()
	e, err := New[u16, *u16](dev, Config{SlotCount: 4, WearLevel: true, DeviceSize: 28})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestBlankOpen(t *testing.T) {
	is := is.New(t)
	dev := memory.New(28)
	e := newTestEngine(t, dev)

	is.NoErr(e.Open())
	is.Equal(e.r.head, uint32(0))
	is.Equal(e.r.last, uint32(0))
	is.Equal(e.r.nextSeq, uint32(0))

	last, err := e.GetLast()
	is.NoErr(err)
	is.Equal(last, u16(0))
}

func TestTwoWrites(t *testing.T) {
	is := is.New(t)
	dev := memory.New(28)
	e := newTestEngine(t, dev)
	is.NoErr(e.Open())

	is.NoErr(e.Push(u16(0x1234)))
	is.NoErr(e.Push(u16(0x5678)))

	is.Equal(e.r.head, uint32(2))
	is.Equal(e.r.last, uint32(1))
	is.Equal(e.r.nextSeq, uint32(2))

	last, err := e.GetLast()
	is.NoErr(err)
	is.Equal(last, u16(0x5678))

	rec0, err := e.Peek(0)
	is.NoErr(err)
	is.Equal(rec0.Seq, uint32(0))
	is.Equal(rec0.Crc, byte(0x26))
	is.Equal(string(rec0.Payload), string([]byte{0x34, 0x12}))

	rec1, err := e.Peek(1)
	is.NoErr(err)
	is.Equal(rec1.Seq, uint32(1))
	is.Equal(rec1.Crc, byte(0x2E))
}

func TestWrap(t *testing.T) {
	is := is.New(t)
	dev := memory.New(28)
	e := newTestEngine(t, dev)
	is.NoErr(e.Open())

	for v := uint16(1); v <= 6; v++ {
		is.NoErr(e.Push(u16(v)))
	}

	is.Equal(e.r.head, uint32(2))
	is.Equal(e.r.last, uint32(1))
	is.Equal(e.r.nextSeq, uint32(6))

	// slots hold (seq, payload): (4,5) (5,6) (2,3) (3,4)
	wantSeq := []uint32{4, 5, 2, 3}
	wantVal := []uint16{5, 6, 3, 4}
	for i := 0; i < 4; i++ {
		rec, err := e.Peek(uint32(i))
		is.NoErr(err)
		is.Equal(rec.Seq, wantSeq[i])
		var got u16
		is.NoErr(got.Decode(rec.Payload))
		is.Equal(uint16(got), wantVal[i])
	}
}

func TestRecoveryFromTornWrite(t *testing.T) {
	is := is.New(t)
	dev := memory.New(28)
	e := newTestEngine(t, dev)
	is.NoErr(e.Open())
	is.NoErr(e.Push(u16(0x1234)))
	is.NoErr(e.Push(u16(0x5678)))

	// corrupt slot 1's crc byte: addr = 1*7 + payload(2) + seq(4) = 13
	dev.Corrupt(13, 0x00)

	reopened := newTestEngine(t, dev)
	is.NoErr(reopened.Open())
	is.Equal(reopened.r.head, uint32(1))
	is.Equal(reopened.r.last, uint32(0))
	is.Equal(reopened.r.nextSeq, uint32(1))

	last, err := reopened.GetLast()
	is.NoErr(err)
	is.Equal(last, u16(0x1234))
}

func TestFullWipeThenUse(t *testing.T) {
	is := is.New(t)
	dev := memory.New(28)
	e := newTestEngine(t, dev)
	is.NoErr(e.Open())
	is.NoErr(e.Push(u16(1)))

	is.NoErr(e.Wipe(28))

	reopened := newTestEngine(t, dev)
	is.NoErr(reopened.Open())
	last, err := reopened.GetLast()
	is.NoErr(err)
	is.Equal(last, u16(0))

	is.NoErr(reopened.Push(u16(0xABCD)))
	last, err = reopened.GetLast()
	is.NoErr(err)
	is.Equal(last, u16(0xABCD))

	rec0, err := reopened.Peek(0)
	is.NoErr(err)
	is.Equal(rec0.Seq, uint32(0))
}

func TestEndAddrChaining(t *testing.T) {
	is := is.New(t)
	dev := memory.New(28 + 56)

	a, err := New[u16, *u16](dev, Config{Base: 0, SlotCount: 4, WearLevel: true})
	is.NoErr(err)
	is.Equal(a.EndAddr(), uint32(28))

	b, err := New[u16, *u16](dev, Config{Base: a.EndAddr(), SlotCount: 8, WearLevel: true})
	is.NoErr(err)
	is.Equal(b.cfg.Base, uint32(28))
	is.Equal(b.EndAddr(), uint32(28+56))
}

func TestPushOnDisabledWearLevelPanics(t *testing.T) {
	is := is.New(t)
	dev := memory.New(8)
	e, err := New[u16, *u16](dev, Config{SlotCount: 4, WearLevel: false})
	is.NoErr(err)
	is.NoErr(e.Open())

	defer func() {
		r := recover()
		is.True(r != nil)
	}()
	_ = e.Push(u16(1))
}

func TestPassthroughReadWrite(t *testing.T) {
	is := is.New(t)
	dev := memory.New(8)
	e, err := New[u16, *u16](dev, Config{SlotCount: 4, WearLevel: false})
	is.NoErr(err)
	is.NoErr(e.Open())

	is.NoErr(e.WriteAt(2, u16(0xBEEF)))
	got, err := e.ReadAt(2)
	is.NoErr(err)
	is.Equal(got, u16(0xBEEF))

	// indices reduce mod N
	got2, err := e.ReadAt(6)
	is.NoErr(err)
	is.Equal(got2, u16(0xBEEF))
}
