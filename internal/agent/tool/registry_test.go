package tool

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/evoai/commerce-agent/internal/agent/model"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(fixtureCatalog(), model.AgentConfig{MaxRounds: 8}, fixedNow("2025-09-05T10:30:00Z"))
}

func TestRegistryInfos(t *testing.T) {
	r := testRegistry(t)

	infos, err := r.Infos(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{ToolProductSearch, ToolSizeRecommender, ToolETA, ToolOrderLookup, ToolOrderCancel}
	if len(infos) != len(want) {
		t.Fatalf("expected %d tool infos, got %d", len(want), len(infos))
	}
	for i, info := range infos {
		if info.Name != want[i] {
			t.Errorf("info %d: expected %s, got %s", i, want[i], info.Name)
		}
	}
}

func TestRegistryExecuteBatchAlignment(t *testing.T) {
	r := testRegistry(t)

	calls := []schema.ToolCall{
		{ID: "call-1", Function: schema.FunctionCall{Name: ToolETA, Arguments: `{"zip_code":"560001"}`}},
		{ID: "call-2", Function: schema.FunctionCall{Name: ToolSizeRecommender, Arguments: `{"user_input":"I'm between M/L"}`}},
	}

	out, err := r.Execute(context.Background(), calls)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Messages) != 2 || len(out.ToolsCalled) != 2 || len(out.Evidence) != 2 {
		t.Fatalf("batch outputs must stay index-aligned: %+v", out)
	}
	if out.ToolsCalled[0] != ToolETA || out.ToolsCalled[1] != ToolSizeRecommender {
		t.Errorf("tools recorded out of order: %v", out.ToolsCalled)
	}
	if out.Evidence[0].CallID != "call-1" || out.Evidence[1].CallID != "call-2" {
		t.Errorf("evidence not attributed to originating calls: %+v", out.Evidence)
	}
	if out.Messages[0].Role != schema.Tool || out.Messages[0].ToolCallID != "call-1" {
		t.Errorf("tool message must carry the call ID: %+v", out.Messages[0])
	}
	if !strings.Contains(out.Evidence[0].Payload, "2-5 business days") {
		t.Errorf("unexpected eta payload: %s", out.Evidence[0].Payload)
	}
}

func TestRegistryExecuteUnknownToolFatal(t *testing.T) {
	r := testRegistry(t)

	calls := []schema.ToolCall{
		{ID: "call-1", Function: schema.FunctionCall{Name: "refund_order", Arguments: `{}`}},
	}

	out, err := r.Execute(context.Background(), calls)
	if !errors.Is(err, model.ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
	if out != nil {
		t.Errorf("no partial results on fatal error, got %+v", out)
	}
}

func TestRegistryExecuteMalformedArgumentsDegrade(t *testing.T) {
	r := testRegistry(t)

	calls := []schema.ToolCall{
		{ID: "call-1", Function: schema.FunctionCall{Name: ToolETA, Arguments: `{"zip_code":`}},
	}

	out, err := r.Execute(context.Background(), calls)
	if err != nil {
		t.Fatalf("malformed arguments must not fail the turn: %v", err)
	}
	if !strings.Contains(out.Evidence[0].Payload, "invalid or unprocessable arguments") {
		t.Errorf("expected structured degradation, got %s", out.Evidence[0].Payload)
	}
}

func TestLookupOrder(t *testing.T) {
	cat := fixtureCatalog()

	tests := []struct {
		name    string
		orderID string
		email   string
		wantKey string
		want    string
	}{
		{"found", "A1001", "john@example.com", "created_at", "2025-09-05T10:00:00Z"},
		{"email case insensitive", "A1001", "John@Example.com", "order_id", "A1001"},
		{"wrong email", "A1001", "other@example.com", "error", "Order not found. Please check your order ID and email address."},
		{"unknown order", "A9999", "john@example.com", "error", "Order not found. Please check your order ID and email address."},
		{"bad id", "B1001", "john@example.com", "error", "Invalid order ID format: B1001. Order IDs should be in format A1234."},
		{"bad email", "A1001", "john@", "error", "Invalid email format: john@. Please provide a valid email address."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := LookupOrder(cat, tt.orderID, tt.email)
			if got := out[tt.wantKey]; got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShippingETA(t *testing.T) {
	if got := ShippingETA("560001"); got != "Shipping to zip code 560001 typically takes 2-5 business days." {
		t.Errorf("unexpected eta: %s", got)
	}
	if got := ShippingETA("12ab5"); got != "Invalid zip code format: 12ab5. Please provide a valid 5-6 digit zip code." {
		t.Errorf("unexpected validation message: %s", got)
	}
}

func TestRecommendSize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"I'm usually between M/L", "safer choice"},
		{"I like a loose fit", "going up one size"},
		{"something fitted please", "form-hugging"},
		{"it's for a wedding", "formal events"},
		{"honestly not sure", "most versatile"},
		{"size me", "usual dress size"},
	}
	for _, tt := range tests {
		got := RecommendSize(tt.input)
		if !strings.Contains(got, tt.want) {
			t.Errorf("RecommendSize(%q) = %q, want substring %q", tt.input, got, tt.want)
		}
	}
}
