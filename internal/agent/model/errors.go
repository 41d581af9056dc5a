package model

import "errors"

// Turn-level failures. Everything else the tools can go wrong with is
// surfaced as a structured result inside evidence, not as a Go error.
var (
	// ErrUnknownTool means the generator requested a tool that is not in the
	// registry: a contract defect or version mismatch, fatal for the turn.
	ErrUnknownTool = errors.New("unknown tool requested")

	// ErrLoopLimit means the agent↔executor cycle exceeded its round bound.
	ErrLoopLimit = errors.New("reasoning loop limit exceeded")

	ErrEmptyUtterance      = errors.New("utterance is empty")
	ErrInvalidConversation = errors.New("conversation id is empty")
)
