package memory

import "testing"

func TestNewIsBlank(t *testing.T) {
	d := New(8)
	buf := make([]byte, 8)
	if err := d.ReadAt(0, buf); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	for i, b := range buf {
		if b != 0xFF {
			t.Fatalf("byte %d = 0x%02x, want 0xFF", i, b)
		}
	}
}

func TestWriteAtThenReadAt(t *testing.T) {
	d := New(8)
	want := []byte{1, 2, 3, 4}
	if err := d.WriteAt(2, want); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
	got := make([]byte, 4)
	if err := d.ReadAt(2, got); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestOutOfBoundsAccessFails(t *testing.T) {
	d := New(4)
	if err := d.ReadAt(2, make([]byte, 4)); err == nil {
		t.Fatal("expected an out-of-bounds error, got nil")
	}
	if err := d.WriteAt(4, make([]byte, 1)); err == nil {
		t.Fatal("expected an out-of-bounds error, got nil")
	}
}

func TestCorruptOverwritesOneByte(t *testing.T) {
	d := New(4)
	d.Corrupt(1, 0x00)
	got := make([]byte, 4)
	if err := d.ReadAt(0, got); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if got[1] != 0x00 {
		t.Fatalf("byte 1 = 0x%02x, want 0x00", got[1])
	}
}
