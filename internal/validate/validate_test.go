package validate

import (
	"testing"
	"time"
)

func TestOrderID(t *testing.T) {
	t.Parallel()

	valid := []string{"A1001", "A9999", "A0000"}
	for _, id := range valid {
		if !OrderID(id) {
			t.Errorf("OrderID(%q) = false, want true", id)
		}
	}

	invalid := []string{"", "A100", "A10001", "A100A", "B1001", "1001", "a1001", " A1001"}
	for _, id := range invalid {
		if OrderID(id) {
			t.Errorf("OrderID(%q) = true, want false", id)
		}
	}
}

func TestEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"user@example.com", "test.email+tag@domain.co.uk", "mira@example.com"}
	for _, e := range valid {
		if !Email(e) {
			t.Errorf("Email(%q) = false, want true", e)
		}
	}

	invalid := []string{"", "invalid", "user@", "@example.com", "user@example"}
	for _, e := range invalid {
		if Email(e) {
			t.Errorf("Email(%q) = true, want false", e)
		}
	}
}

func TestZipCode(t *testing.T) {
	t.Parallel()

	valid := []string{"10001", "560001", " 94107 "}
	for _, z := range valid {
		if !ZipCode(z) {
			t.Errorf("ZipCode(%q) = false, want true", z)
		}
	}

	invalid := []string{"", "123", "1234567", "ABCDE", "94107-1234"}
	for _, z := range invalid {
		if ZipCode(z) {
			t.Errorf("ZipCode(%q) = true, want false", z)
		}
	}
}

func TestTimestamp(t *testing.T) {
	t.Parallel()

	got, ok := Timestamp("2025-09-07T12:30:00Z")
	if !ok {
		t.Fatal("expected valid timestamp")
	}
	want := time.Date(2025, 9, 7, 12, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Timestamp = %v, want %v", got, want)
	}

	if _, ok := Timestamp("invalid-timestamp"); ok {
		t.Fatal("expected invalid timestamp to fail")
	}

	// Offsets normalise to UTC.
	got, ok = Timestamp("2025-09-07T14:30:00+02:00")
	if !ok || !got.Equal(want) {
		t.Fatalf("Timestamp with offset = %v ok=%v, want %v", got, ok, want)
	}
}
