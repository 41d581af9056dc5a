package nodes

import (
	"testing"

	agentmodel "github.com/evoai/commerce-agent/internal/agent/model"
	"github.com/evoai/commerce-agent/internal/agent/tool"
)

func TestGuardDecision(t *testing.T) {
	blocked := agentmodel.EvidenceItem{
		Tool:    tool.ToolOrderCancel,
		Payload: `{"success":false,"reason":"Cancellation failed: Order was placed more than 60 minutes ago.","minutes_since_order":1405,"policy":"Orders can only be canceled within 60 minutes of placement."}`,
	}
	allowed := agentmodel.EvidenceItem{
		Tool:    tool.ToolOrderCancel,
		Payload: `{"success":true,"message":"Order A1003 has been successfully canceled.","minutes_since_order":35.0}`,
	}
	validationErr := agentmodel.EvidenceItem{
		Tool:    tool.ToolOrderCancel,
		Payload: `{"error":"Order A9999 not found in the system."}`,
	}
	lookup := agentmodel.EvidenceItem{
		Tool:    tool.ToolOrderLookup,
		Payload: `{"order_id":"A1003","email":"mira@example.com"}`,
	}
	// same shape as a cancellation verdict, but from another tool
	impostor := agentmodel.EvidenceItem{
		Tool:    tool.ToolProductSearch,
		Payload: `{"success":false,"reason":"not a cancellation"}`,
	}

	tests := []struct {
		name     string
		intent   agentmodel.Intent
		evidence []agentmodel.EvidenceItem
		want     *agentmodel.PolicyDecision
	}{
		{"intent mismatch", agentmodel.IntentProductAssist, []agentmodel.EvidenceItem{blocked}, nil},
		{"no evidence", agentmodel.IntentOrderHelp, nil, nil},
		{"blocked", agentmodel.IntentOrderHelp, []agentmodel.EvidenceItem{lookup, blocked},
			&agentmodel.PolicyDecision{Allowed: false, Reason: "Cancellation failed: Order was placed more than 60 minutes ago."}},
		{"allowed", agentmodel.IntentOrderHelp, []agentmodel.EvidenceItem{lookup, allowed},
			&agentmodel.PolicyDecision{Allowed: true}},
		{"no cancel evidence", agentmodel.IntentOrderHelp, []agentmodel.EvidenceItem{lookup},
			&agentmodel.PolicyDecision{Allowed: true}},
		{"verdict-less cancel result", agentmodel.IntentOrderHelp, []agentmodel.EvidenceItem{validationErr},
			&agentmodel.PolicyDecision{Allowed: true}},
		{"tag filter ignores other tools", agentmodel.IntentOrderHelp, []agentmodel.EvidenceItem{impostor},
			&agentmodel.PolicyDecision{Allowed: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GuardDecision(tt.intent, tt.evidence)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil decision, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a decision, got nil")
			}
			if got.Allowed != tt.want.Allowed || got.Reason != tt.want.Reason {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
