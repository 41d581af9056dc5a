package model

import (
	"github.com/cloudwego/eino/schema"
)

// ConversationState is the single mutable object threaded through one turn of
// the workflow graph.
//
// Contract:
//   - History is append-only: nodes concatenate new messages, never replace or
//     reorder prior entries.
//   - ToolsCalled and Evidence accumulate across executor rounds within one
//     turn and stay index-aligned (one evidence item per invocation).
//   - Intent is set exactly once per turn by the router and never mutated
//     downstream.
//   - A fresh state is built per turn; only History carries over between turns
//     of the same conversation (via the conversation repository).
type ConversationState struct {
	ConversationID string
	Utterance      string
	History        []*schema.Message
	Intent         Intent
	ToolsCalled    []string
	Evidence       []EvidenceItem
	PolicyDecision *PolicyDecision
	FinalMessage   string

	// LastBatch holds the tool names of the most recent executor batch only;
	// the post-executor routing decision keys off it.
	LastBatch []string

	// Rounds counts completed agent/executor cycles; the agent node fails the
	// turn with ErrLoopLimit once the configured bound is reached.
	Rounds int

	// ToolCallIDSeq backfills IDs for providers that omit them on tool calls.
	ToolCallIDSeq int
}

// EvidenceItem is one serialized tool result. Results are tagged with the
// producing tool name so downstream inspection filters by tag instead of
// guessing at payload shape.
type EvidenceItem struct {
	Tool    string `json:"tool"`
	CallID  string `json:"call_id"`
	Payload string `json:"payload"`
}

// PolicyDecision is the deterministic allow/block verdict derived from
// cancellation-tool evidence, distinct from anything the generator says.
type PolicyDecision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// TurnInput starts one orchestration run.
type TurnInput struct {
	ConversationID string `json:"conversation_id"`
	Utterance      string `json:"utterance"`
}

// TurnTrace is the output contract of a run. All five keys are always
// present; pointer fields marshal as null where not applicable.
type TurnTrace struct {
	FinalMessage   string          `json:"final_message"`
	Intent         Intent          `json:"intent"`
	ToolsCalled    []string        `json:"tools_called"`
	Evidence       []EvidenceItem  `json:"evidence"`
	PolicyDecision *PolicyDecision `json:"policy_decision"`
}

// Trace snapshots the per-turn fields of the state into the output contract.
func (s *ConversationState) Trace() TurnTrace {
	return TurnTrace{
		FinalMessage:   s.FinalMessage,
		Intent:         s.Intent,
		ToolsCalled:    append([]string{}, s.ToolsCalled...),
		Evidence:       append([]EvidenceItem{}, s.Evidence...),
		PolicyDecision: s.PolicyDecision,
	}
}

// LastUserMessage returns the content of the most recent user turn in history.
func (s *ConversationState) LastUserMessage() string {
	for i := len(s.History) - 1; i >= 0; i-- {
		m := s.History[i]
		if m != nil && m.Role == schema.User {
			return m.Content
		}
	}
	return ""
}

// LastAssistantMessage returns the most recent assistant message, or nil.
func (s *ConversationState) LastAssistantMessage() *schema.Message {
	for i := len(s.History) - 1; i >= 0; i-- {
		m := s.History[i]
		if m != nil && m.Role == schema.Assistant {
			return m
		}
	}
	return nil
}
