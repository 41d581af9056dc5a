package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	agentmodel "github.com/evoai/commerce-agent/internal/agent/model"
)

//go:embed template/responder_prompt.txt
var responderSystemPrompt string

// RenderResponderSystem renders the synthesis-stage prompt from the turn's
// question, accumulated evidence, and policy verdict.
func RenderResponderSystem(ctx context.Context, config agentmodel.PromptConfig, question string, evidence []agentmodel.EvidenceItem, decision *agentmodel.PolicyDecision) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(responderSystemPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"BrandName":       config.BrandName,
		"BrandVoice":      config.BrandVoice,
		"Question":        question,
		"Evidence":        formatEvidence(evidence),
		"PolicyDirective": policyDirective(decision),
	})
	if err != nil {
		return "", fmt.Errorf("responder prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("responder prompt render: empty result")
	}
	return msgs[0].Content, nil
}

func formatEvidence(evidence []agentmodel.EvidenceItem) string {
	if len(evidence) == 0 {
		return "(no tool results this turn)"
	}
	var b strings.Builder
	for i, item := range evidence {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, item.Tool, item.Payload)
	}
	return strings.TrimRight(b.String(), "\n")
}

func policyDirective(decision *agentmodel.PolicyDecision) string {
	if decision == nil || decision.Allowed {
		return "Policy verdict: none to report."
	}
	return fmt.Sprintf(`Policy verdict: the cancellation was BLOCKED. Reason: %s
State this reason plainly, then offer at least two of these alternatives: changing the shipping address, store credit, or connecting with human support. Do not suggest any other workaround.`, decision.Reason)
}
