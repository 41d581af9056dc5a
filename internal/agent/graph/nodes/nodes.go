// Package nodes holds the workflow's five processing stages and the routing
// conditions between them. Every node is an invokable lambda that threads the
// turn's ConversationState; mutation follows the state's accumulation
// contract (append-only history, accumulating tool/evidence lists).
package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/evoai/commerce-agent/internal/agent/classify"
	"github.com/evoai/commerce-agent/internal/agent/graph/prompts"
	agentmodel "github.com/evoai/commerce-agent/internal/agent/model"
	"github.com/evoai/commerce-agent/internal/agent/tool"
	logx "github.com/evoai/commerce-agent/pkg/logger"
)

// Node names, also the branch targets.
const (
	NodeRouter       = "router"
	NodeAgent        = "agent"
	NodeToolExecutor = "tool_executor"
	NodePolicyGuard  = "policy_guard"
	NodeResponder    = "responder"
)

// NewRouterNode classifies the turn's utterance and stamps the intent onto
// the state. The intent is set here once and never rewritten downstream.
func NewRouterNode(classifier *classify.Classifier) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state *agentmodel.ConversationState) (*agentmodel.ConversationState, error) {
		state.Intent = classifier.Classify(ctx, state.Utterance)
		logx.Debug().
			Str("conversation_id", state.ConversationID).
			Str("intent", string(state.Intent)).
			Msg("intent classified")
		return state, nil
	})
}

// NewRouterCondition routes guardrail turns straight to synthesis; everything
// else earns a reasoning pass.
func NewRouterCondition() func(context.Context, *agentmodel.ConversationState) (string, error) {
	return func(ctx context.Context, state *agentmodel.ConversationState) (string, error) {
		if state.Intent == agentmodel.IntentOther {
			return NodeResponder, nil
		}
		return NodeAgent, nil
	}
}

// NewAgentNode creates the reasoning stage: one model call over the system
// directives plus history, deciding between a direct answer and a tool batch.
// The round counter is enforced here so a model that keeps requesting tools
// cannot spin the graph forever.
func NewAgentNode(chatModel model.BaseChatModel, promptConfig agentmodel.PromptConfig, maxRounds int) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state *agentmodel.ConversationState) (*agentmodel.ConversationState, error) {
		state.Rounds++
		if state.Rounds > maxRounds {
			return nil, fmt.Errorf("%w: %d reasoning rounds", agentmodel.ErrLoopLimit, maxRounds)
		}

		systemPrompt, err := prompts.RenderAgentSystem(ctx, promptConfig, state.Intent)
		if err != nil {
			return nil, err
		}

		messages := make([]*schema.Message, 0, len(state.History)+1)
		messages = append(messages, schema.SystemMessage(systemPrompt))
		messages = append(messages, state.History...)

		out, err := chatModel.Generate(ctx, messages)
		if err != nil {
			return nil, fmt.Errorf("agent generation: %w", err)
		}

		// Some OpenAI-compatible providers omit tool call IDs; backfill them
		// so result attribution stays by ID, not position.
		for i := range out.ToolCalls {
			if strings.TrimSpace(out.ToolCalls[i].ID) == "" {
				state.ToolCallIDSeq++
				out.ToolCalls[i].ID = fmt.Sprintf("call_%d", state.ToolCallIDSeq)
			}
		}

		state.History = append(state.History, out)

		logx.Debug().
			Str("conversation_id", state.ConversationID).
			Int("round", state.Rounds).
			Int("tool_calls", len(out.ToolCalls)).
			Msg("agent reasoning complete")
		return state, nil
	})
}

// NewAgentCondition sends the run to the executor when the reasoning output
// requested tools, otherwise on to synthesis.
func NewAgentCondition() func(context.Context, *agentmodel.ConversationState) (string, error) {
	return func(ctx context.Context, state *agentmodel.ConversationState) (string, error) {
		last := state.LastAssistantMessage()
		if last != nil && len(last.ToolCalls) > 0 {
			return NodeToolExecutor, nil
		}
		return NodeResponder, nil
	}
}

// NewToolExecutorNode runs the batch requested by the latest reasoning output
// and folds the results into the state per the accumulation contract.
func NewToolExecutorNode(registry *tool.Registry) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state *agentmodel.ConversationState) (*agentmodel.ConversationState, error) {
		last := state.LastAssistantMessage()
		if last == nil || len(last.ToolCalls) == 0 {
			return nil, fmt.Errorf("executor reached without pending tool calls")
		}

		batch, err := registry.Execute(ctx, last.ToolCalls)
		if err != nil {
			return nil, err
		}

		state.History = append(state.History, batch.Messages...)
		state.ToolsCalled = append(state.ToolsCalled, batch.ToolsCalled...)
		state.Evidence = append(state.Evidence, batch.Evidence...)
		state.LastBatch = batch.ToolsCalled

		logx.Debug().
			Str("conversation_id", state.ConversationID).
			Strs("tools", batch.ToolsCalled).
			Msg("tool batch executed")
		return state, nil
	})
}

// NewToolExecutorCondition routes to the policy guard when the batch that
// just ran included the cancellation tool, otherwise loops back for another
// reasoning round.
func NewToolExecutorCondition() func(context.Context, *agentmodel.ConversationState) (string, error) {
	return func(ctx context.Context, state *agentmodel.ConversationState) (string, error) {
		for _, name := range state.LastBatch {
			if name == tool.ToolOrderCancel {
				return NodePolicyGuard, nil
			}
		}
		return NodeAgent, nil
	}
}

// NewPolicyGuardNode formalizes the cancellation verdict from tagged
// evidence. It is fully deterministic; the generator never participates.
func NewPolicyGuardNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state *agentmodel.ConversationState) (*agentmodel.ConversationState, error) {
		state.PolicyDecision = GuardDecision(state.Intent, state.Evidence)
		if state.PolicyDecision != nil {
			logx.Debug().
				Str("conversation_id", state.ConversationID).
				Bool("allowed", state.PolicyDecision.Allowed).
				Msg("policy verdict recorded")
		}
		return state, nil
	})
}

// NewResponderNode creates the synthesis stage: one model call grounded in
// the turn's question, accumulated evidence, and policy verdict.
func NewResponderNode(chatModel model.BaseChatModel, promptConfig agentmodel.PromptConfig) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, state *agentmodel.ConversationState) (*agentmodel.ConversationState, error) {
		systemPrompt, err := prompts.RenderResponderSystem(ctx, promptConfig, state.Utterance, state.Evidence, state.PolicyDecision)
		if err != nil {
			return nil, err
		}

		out, err := chatModel.Generate(ctx, []*schema.Message{schema.SystemMessage(systemPrompt)})
		if err != nil {
			return nil, fmt.Errorf("responder generation: %w", err)
		}

		state.FinalMessage = out.Content
		state.History = append(state.History, schema.AssistantMessage(out.Content, nil))
		return state, nil
	})
}

// GuardDecision derives the policy verdict from tagged evidence. A nil
// verdict means "not applicable": wrong intent for policy checks, or no
// evidence was gathered at all.
func GuardDecision(intent agentmodel.Intent, evidence []agentmodel.EvidenceItem) *agentmodel.PolicyDecision {
	if intent != agentmodel.IntentOrderHelp {
		return nil
	}
	if len(evidence) == 0 {
		return nil
	}

	for _, item := range evidence {
		if item.Tool != tool.ToolOrderCancel {
			continue
		}
		verdict := tool.ParseCancelVerdict(item.Payload)
		if verdict == nil {
			continue
		}
		if !verdict.Success {
			return &agentmodel.PolicyDecision{Allowed: false, Reason: verdict.Reason}
		}
		return &agentmodel.PolicyDecision{Allowed: true}
	}
	return &agentmodel.PolicyDecision{Allowed: true}
}
