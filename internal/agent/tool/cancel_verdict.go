package tool

import "encoding/json"

// CancelVerdict is the decision-bearing part of a cancellation result.
// Validation and not-found payloads carry neither field and parse to nil.
type CancelVerdict struct {
	Success bool
	Reason  string
}

// ParseCancelVerdict extracts the verdict from a serialized cancellation
// result. Returns nil when the payload carries no decision.
func ParseCancelVerdict(payload string) *CancelVerdict {
	var obj map[string]any
	if err := json.Unmarshal([]byte(payload), &obj); err != nil {
		return nil
	}

	success, ok := obj["success"].(bool)
	if !ok {
		return nil
	}
	reason, _ := obj["reason"].(string)
	return &CancelVerdict{Success: success, Reason: reason}
}
