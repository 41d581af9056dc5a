package model

import "time"

// ================ Config ================

// ConversationConfig controls history retention across turns.
type ConversationConfig struct {
	TTL      string `envconfig:"CONVERSATION_TTL" default:"15m"`
	MaxTurns int    `envconfig:"CONVERSATION_MAX_TURNS" default:"20"`
}

// AgentConfig bounds the reasoning loop and tool execution.
type AgentConfig struct {
	// MaxRounds caps agent/tool-executor cycles within one turn. The external
	// generator could otherwise request tools indefinitely.
	MaxRounds   int           `envconfig:"AGENT_MAX_ROUNDS" default:"8"`
	ToolTimeout time.Duration `envconfig:"AGENT_TOOL_TIMEOUT" default:"10s"`
}

// CatalogConfig locates the read-only product and order stores.
type CatalogConfig struct {
	ProductsPath string `envconfig:"CATALOG_PRODUCTS_PATH" default:"data/products.json"`
	OrdersPath   string `envconfig:"CATALOG_ORDERS_PATH" default:"data/orders.json"`
}

// PromptConfig carries the brand framing injected into system prompts.
type PromptConfig struct {
	BrandName  string `envconfig:"PROMPT_BRAND_NAME" default:"EvoAI"`
	BrandVoice string `envconfig:"PROMPT_BRAND_VOICE" default:"concise, friendly, and non-pushy"`
}
