package eewl

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"slot count too small", Config{SlotCount: 1, WearLevel: true}, true},
		{"wear-leveled fits device", Config{SlotCount: 4, WearLevel: true, DeviceSize: 28}, false},
		{"wear-leveled exceeds device", Config{SlotCount: 4, WearLevel: true, DeviceSize: 27}, true},
		{"passthrough fits device", Config{SlotCount: 4, WearLevel: false, DeviceSize: 8}, false},
		{"unbounded device size is not checked", Config{SlotCount: 4, WearLevel: true, DeviceSize: 0}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate(2)
			if c.wantErr && err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !c.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.wantErr && !errors.Is(err, ErrConfigInvalid) {
				t.Fatalf("expected errors.Is(err, ErrConfigInvalid), got %v", err)
			}
		})
	}
}

func TestRecordSizeFor(t *testing.T) {
	if got := recordSizeFor(2, true); got != 7 {
		t.Fatalf("recordSizeFor(2, true) = %d, want 7", got)
	}
	if got := recordSizeFor(2, false); got != 2 {
		t.Fatalf("recordSizeFor(2, false) = %d, want 2", got)
	}
}
