// Package prompts renders the system prompts for the reasoning and response
// stages. Rendering goes through the Eino prompt component so prompt
// callbacks fire for observability.
package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	agentmodel "github.com/evoai/commerce-agent/internal/agent/model"
	"github.com/evoai/commerce-agent/internal/agent/tool"
)

//go:embed template/agent_prompt.txt
var agentSystemPrompt string

// RenderAgentSystem renders the reasoning-stage system prompt with the
// directive block for the classified intent.
func RenderAgentSystem(ctx context.Context, config agentmodel.PromptConfig, intent agentmodel.Intent) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(agentSystemPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"BrandName":        config.BrandName,
		"BrandVoice":       config.BrandVoice,
		"IntentDirectives": intentDirectives(intent),
	})
	if err != nil {
		return "", fmt.Errorf("agent prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("agent prompt render: empty result")
	}
	return msgs[0].Content, nil
}

func intentDirectives(intent agentmodel.Intent) string {
	switch intent {
	case agentmodel.IntentProductAssist:
		return fmt.Sprintf(`This turn is product assistance. Directives:
- Always call %s first to find matching products; respect any price ceiling the customer gives.
- Use every product the search returns when advising.
- Call %s whenever the customer mentions sizing or fit.
- Call %s whenever the customer gives a zip code or asks about delivery time.`,
			tool.ToolProductSearch, tool.ToolSizeRecommender, tool.ToolETA)
	case agentmodel.IntentOrderHelp:
		return fmt.Sprintf(`This turn is order help. Directives:
- Always call %s with the order ID and email before anything else.
- For cancellation requests, call %s after a successful lookup. You never decide whether cancellation is allowed; the tool decides.
- If the customer omitted the order ID or email, ask for the missing piece instead of calling tools.`,
			tool.ToolOrderLookup, tool.ToolOrderCancel)
	default:
		return "This turn needs no tools. Answer briefly and redirect the customer to product or order assistance."
	}
}
