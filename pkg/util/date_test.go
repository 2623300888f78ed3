package util

import (
	"testing"
	"time"
)

func TestParseNavDate(t *testing.T) {
	got, ok := ParseNavDate("15-08-2023")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2023, 8, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected date %v", got)
	}
	if _, ok := ParseNavDate("2023-08-15"); ok {
		t.Fatalf("ISO dates must be rejected")
	}
	if _, ok := ParseNavDate(""); ok {
		t.Fatalf("empty must be rejected")
	}
}

func TestParseNavValue(t *testing.T) {
	if v, ok := ParseNavValue("104.3012"); !ok || v != 104.3012 {
		t.Fatalf("unexpected %v %v", v, ok)
	}
	if _, ok := ParseNavValue("0.0"); ok {
		t.Fatalf("zero quote must be rejected")
	}
	if _, ok := ParseNavValue("N.A."); ok {
		t.Fatalf("non-numeric must be rejected")
	}
}
