package conversations

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/evoai/commerce-agent/internal/agent/model"
)

// MessagesManager mediates between the orchestrator and the conversation
// store: it records the turn's messages and assembles the bounded history
// window each run starts from.
type MessagesManager struct {
	conversationRepo model.ConversationRepository
	maxTurns         int
}

func NewMessagesManager(conversationRepo model.ConversationRepository, config model.ConversationConfig) *MessagesManager {
	return &MessagesManager{
		conversationRepo: conversationRepo,
		maxTurns:         config.MaxTurns,
	}
}

// BeginTurn persists the user's utterance and returns the history window the
// run should reason over, ending with the message just recorded.
func (cm *MessagesManager) BeginTurn(ctx context.Context, conversationID string, utterance string) ([]*schema.Message, error) {
	userMsg := schema.UserMessage(utterance)
	if err := cm.conversationRepo.AddMessage(ctx, conversationID, userMsg); err != nil {
		return nil, err
	}

	history, err := cm.conversationRepo.LoadHistory(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return trimTail(history.Messages, cm.maxTurns), nil
}

// SaveResponse records the run's final assistant message so the next turn
// sees it in history.
func (cm *MessagesManager) SaveResponse(ctx context.Context, conversationID string, content string) error {
	assistantMsg := schema.AssistantMessage(content, nil)
	return cm.conversationRepo.AddMessage(ctx, conversationID, assistantMsg)
}

// ClearConversation drops all persisted history for the conversation.
func (cm *MessagesManager) ClearConversation(ctx context.Context, conversationID string) error {
	return cm.conversationRepo.ClearHistory(ctx, conversationID)
}

func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if maxTurns <= 0 || len(messages) <= maxTurns {
		result := make([]*schema.Message, len(messages))
		copy(result, messages)
		return result
	}
	source := messages[len(messages)-maxTurns:]
	result := make([]*schema.Message, len(source))
	copy(result, source)
	return result
}
