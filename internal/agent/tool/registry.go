// Package tool implements the agent's tool surface: read-only catalog
// queries, rule-based responders, and the order-cancellation policy check.
//
// Tools never fail with Go errors for domain problems (bad input, missing
// order, unreadable store): those come back as structured JSON results so the
// reasoning step can treat them as ordinary evidence. The only executor-level
// failure is a request for a tool that does not exist.
package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/evoai/commerce-agent/internal/agent/model"
	"github.com/evoai/commerce-agent/internal/store"
	logx "github.com/evoai/commerce-agent/pkg/logger"
)

const (
	ToolProductSearch   = "product_search"
	ToolSizeRecommender = "size_recommender"
	ToolETA             = "eta"
	ToolOrderLookup     = "order_lookup"
	ToolOrderCancel     = "order_cancel"
)

const storeUnavailableMessage = "Unable to access order database. Please try again later."

// Registry owns the invocable tools for one orchestrator instance. It is
// passed in at construction time so tests can run isolated instances against
// fixture catalogs.
type Registry struct {
	tools   map[string]tool.InvokableTool
	listing []string
	timeout time.Duration
}

// NewRegistry builds the full tool surface over a read-only catalog. nowFn
// supplies the clock for the cancellation policy; nil means real UTC time.
func NewRegistry(cat *store.Catalog, cfg model.AgentConfig, nowFn func() time.Time) *Registry {
	if nowFn == nil {
		nowFn = func() time.Time { return time.Now().UTC() }
	}

	r := &Registry{
		tools:   make(map[string]tool.InvokableTool),
		timeout: cfg.ToolTimeout,
	}
	r.register(ToolProductSearch, newProductSearchTool(cat))
	r.register(ToolSizeRecommender, newSizeRecommenderTool())
	r.register(ToolETA, newETATool())
	r.register(ToolOrderLookup, newOrderLookupTool(cat))
	r.register(ToolOrderCancel, newOrderCancelTool(cat, nowFn))
	return r
}

func (r *Registry) register(name string, t tool.InvokableTool) {
	r.tools[name] = t
	r.listing = append(r.listing, name)
}

// Infos returns the tool descriptions to bind to the reasoning model, in
// registration order.
func (r *Registry) Infos(ctx context.Context) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(r.listing))
	for _, name := range r.listing {
		info, err := r.tools[name].Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info for %s: %w", name, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// BatchResult carries one executor round's outputs: tool-result messages for
// the history plus the accumulation deltas.
type BatchResult struct {
	Messages    []*schema.Message
	ToolsCalled []string
	Evidence    []model.EvidenceItem
}

// Execute runs a batch of tool calls synchronously in request order. Each
// result is attributed to its originating call ID. An unknown tool name fails
// the whole turn: it signals a contract defect, not a user mistake.
func (r *Registry) Execute(ctx context.Context, calls []schema.ToolCall) (*BatchResult, error) {
	out := &BatchResult{
		Messages:    make([]*schema.Message, 0, len(calls)),
		ToolsCalled: make([]string, 0, len(calls)),
		Evidence:    make([]model.EvidenceItem, 0, len(calls)),
	}

	for _, call := range calls {
		name := call.Function.Name
		t, ok := r.tools[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", model.ErrUnknownTool, name)
		}

		result := r.invoke(ctx, t, name, call.Function.Arguments)

		logx.Debug().
			Str("tool", name).
			Str("call_id", call.ID).
			Msg("tool executed")

		out.Messages = append(out.Messages, schema.ToolMessage(result, call.ID))
		out.ToolsCalled = append(out.ToolsCalled, name)
		out.Evidence = append(out.Evidence, model.EvidenceItem{
			Tool:    name,
			CallID:  call.ID,
			Payload: result,
		})
	}

	return out, nil
}

// invoke runs one tool under the configured timeout. Malformed arguments are
// downgraded to a structured error result the model can react to.
func (r *Registry) invoke(ctx context.Context, t tool.InvokableTool, name, args string) string {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	result, err := t.InvokableRun(ctx, args)
	if err != nil {
		logx.Warn().Err(err).Str("tool", name).Msg("tool invocation degraded to structured error")
		return fmt.Sprintf(`{"error":"tool %s failed: invalid or unprocessable arguments"}`, name)
	}
	return result
}
