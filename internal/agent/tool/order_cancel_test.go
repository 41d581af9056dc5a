package tool

import (
	"strings"
	"testing"
	"time"

	"github.com/evoai/commerce-agent/internal/agent/model"
	"github.com/evoai/commerce-agent/internal/store"
)

func fixtureCatalog() *store.Catalog {
	return store.New(
		[]model.Product{
			{ID: "P1001", Title: "Midi Wrap Dress", Price: 95, Tags: []string{"wedding", "midi"}, Sizes: []string{"S", "M", "L"}, Color: "dusty rose"},
		},
		[]model.Order{
			{OrderID: "A1001", Email: "john@example.com", CreatedAt: mustTime("2025-09-05T10:00:00Z")},
		},
	)
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func fixedNow(s string) func() time.Time {
	return func() time.Time { return mustTime(s) }
}

func TestCancelOrderWithinWindow(t *testing.T) {
	cat := fixtureCatalog()

	out := CancelOrder(cat, "A1001", "", fixedNow("2025-09-05T10:30:00Z"))

	if out["success"] != true {
		t.Fatalf("expected success, got %v", out)
	}
	if got := out["message"]; got != "Order A1001 has been successfully canceled." {
		t.Errorf("unexpected message: %v", got)
	}
	if got := out["canceled_at"]; got != "2025-09-05T10:30:00Z" {
		t.Errorf("unexpected canceled_at: %v", got)
	}
	if got := out["minutes_since_order"]; got != 30.0 {
		t.Errorf("unexpected minutes_since_order: %v", got)
	}
}

func TestCancelOrderExactBoundaryAllowed(t *testing.T) {
	cat := fixtureCatalog()

	out := CancelOrder(cat, "A1001", "", fixedNow("2025-09-05T11:00:00Z"))

	if out["success"] != true {
		t.Fatalf("cancellation at exactly 60 minutes must be allowed, got %v", out)
	}
	if got := out["minutes_since_order"]; got != 60.0 {
		t.Errorf("unexpected minutes_since_order: %v", got)
	}
}

func TestCancelOrderJustInsideBoundaryAllowed(t *testing.T) {
	cat := fixtureCatalog()

	out := CancelOrder(cat, "A1001", "", fixedNow("2025-09-05T10:59:59Z"))

	if out["success"] != true {
		t.Fatalf("cancellation at 59m59s must be allowed, got %v", out)
	}
}

func TestCancelOrderJustPastBoundaryBlocked(t *testing.T) {
	cat := fixtureCatalog()

	out := CancelOrder(cat, "A1001", "", fixedNow("2025-09-05T11:00:01Z"))

	if out["success"] != false {
		t.Fatalf("cancellation past 60 minutes must be blocked, got %v", out)
	}
	if got := out["reason"]; got != "Cancellation failed: Order was placed more than 60 minutes ago." {
		t.Errorf("unexpected reason: %v", got)
	}
	if got := out["policy"]; got != cancellationPolicyText {
		t.Errorf("unexpected policy: %v", got)
	}
	if got := out["minutes_since_order"]; got != 60 {
		t.Errorf("blocked path should report truncated integer minutes, got %v", got)
	}
}

func TestCancelOrderBlockedMinutesTruncated(t *testing.T) {
	cat := fixtureCatalog()

	// 75.9 elapsed minutes truncate to 75, never round up.
	out := CancelOrder(cat, "A1001", "", fixedNow("2025-09-05T11:15:54Z"))

	if out["success"] != false {
		t.Fatalf("expected blocked, got %v", out)
	}
	if got := out["minutes_since_order"]; got != 75 {
		t.Errorf("expected 75 truncated minutes, got %v", got)
	}
}

func TestCancelOrderSuccessMinutesRounded(t *testing.T) {
	cat := fixtureCatalog()

	// 45 minutes and 33 seconds is 45.55, rounded to one decimal.
	out := CancelOrder(cat, "A1001", "", fixedNow("2025-09-05T10:45:33Z"))

	if out["success"] != true {
		t.Fatalf("expected success, got %v", out)
	}
	if got := out["minutes_since_order"]; got != 45.6 {
		t.Errorf("expected one-decimal rounding to 45.6, got %v", got)
	}
}

func TestCancelOrderDeterministicAndIdempotent(t *testing.T) {
	cat := fixtureCatalog()
	now := fixedNow("2025-09-05T11:30:00Z")

	first := CancelOrder(cat, "A1001", "", now)
	second := CancelOrder(cat, "A1001", "", now)

	if first["success"] != second["success"] {
		t.Errorf("decision changed between identical calls: %v then %v", first, second)
	}
	if first["reason"] != second["reason"] {
		t.Errorf("reason changed between identical calls")
	}
}

func TestCancelOrderReferenceTimestamp(t *testing.T) {
	cat := fixtureCatalog()

	// The explicit reference overrides the wall clock entirely.
	out := CancelOrder(cat, "A1001", "2025-09-05T10:10:00Z", fixedNow("2026-01-01T00:00:00Z"))

	if out["success"] != true {
		t.Fatalf("expected success against reference timestamp, got %v", out)
	}
	if got := out["minutes_since_order"]; got != 10.0 {
		t.Errorf("unexpected minutes_since_order: %v", got)
	}
}

func TestCancelOrderReferenceTimestampOffset(t *testing.T) {
	cat := fixtureCatalog()

	// 16:20+05:30 is 10:50 UTC, 50 minutes after placement.
	out := CancelOrder(cat, "A1001", "2025-09-05T16:20:00+05:30", fixedNow("2026-01-01T00:00:00Z"))

	if out["success"] != true {
		t.Fatalf("offset timestamps must normalize to UTC, got %v", out)
	}
	if got := out["minutes_since_order"]; got != 50.0 {
		t.Errorf("unexpected minutes_since_order: %v", got)
	}
}

func TestCancelOrderInvalidInputs(t *testing.T) {
	cat := fixtureCatalog()
	now := fixedNow("2025-09-05T10:30:00Z")

	tests := []struct {
		name      string
		orderID   string
		reference string
		wantErr   string
	}{
		{"malformed id", "1234", "", "Invalid order ID format: 1234. Order IDs should be in format A1234."},
		{"five digit id", "A12345", "", "Invalid order ID format: A12345. Order IDs should be in format A1234."},
		{"unknown order", "A9999", "", "Order A9999 not found in the system."},
		{"bad timestamp", "A1001", "yesterday", "Invalid timestamp format: yesterday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := CancelOrder(cat, tt.orderID, tt.reference, now)
			if got := out["error"]; got != tt.wantErr {
				t.Errorf("got %v, want %v", got, tt.wantErr)
			}
			if _, present := out["success"]; present {
				t.Errorf("validation failures must not carry a decision: %v", out)
			}
		})
	}
}

func TestCancelOrderNilCatalog(t *testing.T) {
	out := CancelOrder(nil, "A1001", "", fixedNow("2025-09-05T10:30:00Z"))

	got, _ := out["error"].(string)
	if !strings.Contains(got, "Unable to access order database") {
		t.Errorf("expected store-unavailable error, got %v", out)
	}
}
