package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/evoai/commerce-agent/internal/agent/graph"
	"github.com/evoai/commerce-agent/internal/agent/model"
	"github.com/evoai/commerce-agent/internal/agent/repo"
	"github.com/evoai/commerce-agent/internal/agent/tool"
	"github.com/evoai/commerce-agent/internal/core"
	"github.com/evoai/commerce-agent/internal/store"
	"github.com/evoai/commerce-agent/pkg/config"
	logx "github.com/evoai/commerce-agent/pkg/logger"
	"github.com/evoai/commerce-agent/pkg/openrouter"
	pkgredis "github.com/evoai/commerce-agent/pkg/redis"
)

// AppConfig defines every configurable parameter of the agent, sourced from
// environment variables (a .env file is applied for local runs, and --config
// exports file settings into the environment before this loads).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	OpenRouter openrouter.Config `envconfig:"OPENROUTER"`

	// Agent configs
	Agent        model.AgentConfig
	Conversation model.ConversationConfig
	Catalog      model.CatalogConfig
	Prompt       model.PromptConfig
}

// App bundles the built workflow with the collaborators the commands need
// beyond RunTurn (history reset, lifecycle cleanup).
type App struct {
	Runner graph.Runner
	Repo   model.ConversationRepository

	cleanup func()
}

func (a *App) Close() {
	if a.cleanup != nil {
		a.cleanup()
	}
}

// newApp loads configuration and assembles the full turn workflow.
func newApp(ctx context.Context) (*App, error) {
	cfg, err := config.New[AppConfig]("")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logx.Init(logx.LoggerOpts{
		Environment: core.ParseEnvironment(cfg.Environment),
		Level:       logx.ParseLevel(cfg.LogLevel),
	})

	catalog, err := store.Load(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	chatModel, err := cfg.OpenRouter.New(ctx)
	if err != nil {
		return nil, err
	}

	conversationRepo, cleanup, err := newConversationRepo(cfg)
	if err != nil {
		return nil, err
	}

	runner, err := graph.BuildTurnGraph(ctx, &graph.Config{
		ChatModel:        chatModel,
		Registry:         tool.NewRegistry(catalog, cfg.Agent, nil),
		ConversationRepo: conversationRepo,
		Conversation:     cfg.Conversation,
		Agent:            cfg.Agent,
		Prompt:           cfg.Prompt,
	})
	if err != nil {
		cleanup()
		return nil, err
	}

	return &App{Runner: runner, Repo: conversationRepo, cleanup: cleanup}, nil
}

// newConversationRepo prefers Redis when configured and falls back to
// process-local history otherwise, so the agent runs without infrastructure.
func newConversationRepo(cfg *AppConfig) (model.ConversationRepository, func(), error) {
	if !cfg.Redis.Enabled() {
		logx.Debug().Msg("no redis configured, conversation history is in-memory")
		return repo.NewMemoryConversationRepository(), func() {}, nil
	}

	ttl, err := time.ParseDuration(cfg.Conversation.TTL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid conversation TTL %q: %w", cfg.Conversation.TTL, err)
	}

	rdb, err := cfg.Redis.New()
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	logx.Debug().Msg("connected to redis")

	cleanup := func() {
		if err := rdb.Close(); err != nil {
			logx.Warn().Err(err).Msg("error closing redis client")
		}
	}
	return repo.NewRedisConversationRepository(rdb, ttl), cleanup, nil
}
