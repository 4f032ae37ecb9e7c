package filedev

import "testing"

func TestPageSizeIsPositive(t *testing.T) {
	size, err := PageSize(t.TempDir())
	if err != nil {
		t.Fatalf("PageSize: %v", err)
	}
	if size == 0 {
		t.Fatal("PageSize returned 0")
	}
}
