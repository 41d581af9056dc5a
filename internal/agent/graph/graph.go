// Package graph assembles the turn workflow (router, agent, tool executor,
// policy guard, responder) into a single compiled Eino runnable. One call to
// RunTurn drives exactly one pass through the state machine.
package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"

	"github.com/evoai/commerce-agent/internal/agent/classify"
	"github.com/evoai/commerce-agent/internal/agent/graph/conversations"
	"github.com/evoai/commerce-agent/internal/agent/graph/nodes"
	"github.com/evoai/commerce-agent/internal/agent/graph/observers"
	agentmodel "github.com/evoai/commerce-agent/internal/agent/model"
	"github.com/evoai/commerce-agent/internal/agent/tool"
	errx "github.com/evoai/commerce-agent/internal/core/error"
	logx "github.com/evoai/commerce-agent/pkg/logger"
)

// Runner executes one user turn against the compiled workflow.
type Runner interface {
	RunTurn(ctx context.Context, in agentmodel.TurnInput) (agentmodel.TurnTrace, error)
}

// Config carries every collaborator the workflow needs, passed explicitly at
// construction time so tests and concurrent instances stay isolated.
type Config struct {
	ChatModel        model.ToolCallingChatModel
	Registry         *tool.Registry
	ConversationRepo agentmodel.ConversationRepository
	Conversation     agentmodel.ConversationConfig
	Agent            agentmodel.AgentConfig
	Prompt           agentmodel.PromptConfig
}

type turnRunner struct {
	runnable compose.Runnable[*agentmodel.ConversationState, *agentmodel.ConversationState]
	messages *conversations.MessagesManager
}

// graphBuilder handles the construction of the turn workflow graph.
type graphBuilder struct {
	config *Config
	graph  *compose.Graph[*agentmodel.ConversationState, *agentmodel.ConversationState]
}

// BuildTurnGraph wires the nodes, branches, and bounds into a Runner.
func BuildTurnGraph(ctx context.Context, cfg *Config) (Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if cfg.ChatModel == nil {
		return nil, fmt.Errorf("chat model is nil")
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("tool registry is nil")
	}
	if cfg.ConversationRepo == nil {
		return nil, fmt.Errorf("conversation repo is nil")
	}

	builder := &graphBuilder{
		config: cfg,
		graph:  compose.NewGraph[*agentmodel.ConversationState, *agentmodel.ConversationState](),
	}

	agentModel, err := builder.bindTools(ctx)
	if err != nil {
		return nil, err
	}

	builder.addNodes(agentModel)
	builder.addEdges()
	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	runnable, err := builder.compile(ctx)
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("turn graph built successfully")
	return &turnRunner{
		runnable: runnable,
		messages: conversations.NewMessagesManager(cfg.ConversationRepo, cfg.Conversation),
	}, nil
}

// bindTools attaches the registry's tool descriptions to the reasoning model.
func (b *graphBuilder) bindTools(ctx context.Context) (model.ToolCallingChatModel, error) {
	toolInfos, err := b.config.Registry.Infos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tool infos: %w", err)
	}

	agentModel, err := b.config.ChatModel.WithTools(toolInfos)
	if err != nil {
		return nil, fmt.Errorf("failed to bind tools to chat model: %w", err)
	}
	return agentModel, nil
}

func (b *graphBuilder) addNodes(agentModel model.ToolCallingChatModel) {
	classifier := classify.New(b.config.ChatModel)

	b.graph.AddLambdaNode(nodes.NodeRouter,
		nodes.NewRouterNode(classifier))
	b.graph.AddLambdaNode(nodes.NodeAgent,
		nodes.NewAgentNode(agentModel, b.config.Prompt, b.config.Agent.MaxRounds))
	b.graph.AddLambdaNode(nodes.NodeToolExecutor,
		nodes.NewToolExecutorNode(b.config.Registry))
	b.graph.AddLambdaNode(nodes.NodePolicyGuard,
		nodes.NewPolicyGuardNode())
	b.graph.AddLambdaNode(nodes.NodeResponder,
		nodes.NewResponderNode(b.config.ChatModel, b.config.Prompt))
}

func (b *graphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeRouter},
		{nodes.NodePolicyGuard, nodes.NodeResponder},
		{nodes.NodeResponder, compose.END},
	}
	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

func (b *graphBuilder) addBranches() error {
	routerBranch := compose.NewGraphBranch(
		nodes.NewRouterCondition(),
		map[string]bool{
			nodes.NodeAgent:     true,
			nodes.NodeResponder: true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeRouter, routerBranch); err != nil {
		return fmt.Errorf("error adding router branch: %w", err)
	}

	agentBranch := compose.NewGraphBranch(
		nodes.NewAgentCondition(),
		map[string]bool{
			nodes.NodeToolExecutor: true,
			nodes.NodeResponder:    true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeAgent, agentBranch); err != nil {
		return fmt.Errorf("error adding agent branch: %w", err)
	}

	executorBranch := compose.NewGraphBranch(
		nodes.NewToolExecutorCondition(),
		map[string]bool{
			nodes.NodePolicyGuard: true,
			nodes.NodeAgent:       true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeToolExecutor, executorBranch); err != nil {
		return fmt.Errorf("error adding executor branch: %w", err)
	}

	return nil
}

func (b *graphBuilder) compile(ctx context.Context) (compose.Runnable[*agentmodel.ConversationState, *agentmodel.ConversationState], error) {
	// Each reasoning cycle spends two steps (agent + executor); router,
	// guard, and responder account for the rest. The agent node's own round
	// counter fires before this ceiling ever does.
	maxSteps := b.config.Agent.MaxRounds*2 + 5

	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(maxSteps))
	if err != nil {
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}
	return runnable, nil
}

// RunTurn records the utterance, drives the state machine to completion, and
// persists the final reply. Failures come back as turn-level errors carrying
// a user-safe apology; the conversation stays usable for subsequent turns.
func (r *turnRunner) RunTurn(ctx context.Context, in agentmodel.TurnInput) (agentmodel.TurnTrace, error) {
	if strings.TrimSpace(in.Utterance) == "" {
		return agentmodel.TurnTrace{}, errx.WrapTurn(agentmodel.ErrEmptyUtterance)
	}
	if strings.TrimSpace(in.ConversationID) == "" {
		return agentmodel.TurnTrace{}, errx.WrapTurn(agentmodel.ErrInvalidConversation)
	}

	history, err := r.messages.BeginTurn(ctx, in.ConversationID, in.Utterance)
	if err != nil {
		return agentmodel.TurnTrace{}, errx.WrapTurn(err)
	}

	state := &agentmodel.ConversationState{
		ConversationID: in.ConversationID,
		Utterance:      in.Utterance,
		History:        history,
	}

	out, err := r.runnable.Invoke(ctx, state,
		compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		logx.Error().
			Str("conversation_id", in.ConversationID).
			Err(err).
			Msg("turn failed")
		return agentmodel.TurnTrace{}, errx.WrapTurn(err)
	}

	if out.FinalMessage != "" {
		if err := r.messages.SaveResponse(ctx, in.ConversationID, out.FinalMessage); err != nil {
			logx.Error().
				Str("conversation_id", in.ConversationID).
				Err(err).
				Msg("error saving assistant response")
		}
	}

	return out.Trace(), nil
}
