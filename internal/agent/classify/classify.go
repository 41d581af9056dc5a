// Package classify maps a raw user utterance onto the closed intent set.
//
// Classification is deliberately cheap: an ordered keyword scan decides the
// overwhelming majority of turns without touching the model. Only utterances
// no rule recognizes go to the model, and even then an unparsable or
// out-of-set answer degrades to IntentOther rather than failing the turn.
package classify

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/evoai/commerce-agent/internal/agent/graph/parsers"
	agentmodel "github.com/evoai/commerce-agent/internal/agent/model"
	logx "github.com/evoai/commerce-agent/pkg/logger"
)

// Rule order matters: order keywords win over product keywords so that
// "cancel my dress order" routes to order handling.
var orderKeywords = []string{"order", "cancel", "cancellation", "refund", "return", "email"}

var productKeywords = []string{"dress", "product", "wedding", "price", "size", "eta", "shipping", "recommend", "compare", "zip"}

var guardrailKeywords = []string{"discount", "code", "coupon", "promo", "sale"}

// A bare order identifier is enough to signal order help even without any
// order keyword, e.g. "what's the status of A1001?".
var orderIDPattern = regexp.MustCompile(`\ba\d{4}\b`)

const fallbackPromptFormat = `Classify the user message into exactly one destination: "product_assist", "order_help", or "other".
Respond with only a JSON object of the form {"destination": "<one of the three>"} and nothing else.

User message: %s`

// Classifier decides the intent for one utterance. The chat model is only
// consulted when the keyword rules are silent; a nil model skips the fallback.
type Classifier struct {
	chatModel model.BaseChatModel
}

func New(chatModel model.BaseChatModel) *Classifier {
	return &Classifier{chatModel: chatModel}
}

// Classify always returns a member of the closed intent set.
func (c *Classifier) Classify(ctx context.Context, utterance string) agentmodel.Intent {
	if intent, ok := ClassifyByRules(utterance); ok {
		return intent
	}
	return c.classifyByModel(ctx, utterance)
}

// ClassifyByRules applies the ordered first-match keyword rules. The second
// return reports whether any rule fired.
func ClassifyByRules(utterance string) (agentmodel.Intent, bool) {
	lowered := strings.ToLower(utterance)

	for _, kw := range orderKeywords {
		if strings.Contains(lowered, kw) {
			return agentmodel.IntentOrderHelp, true
		}
	}
	if orderIDPattern.MatchString(lowered) {
		return agentmodel.IntentOrderHelp, true
	}
	for _, kw := range productKeywords {
		if strings.Contains(lowered, kw) {
			return agentmodel.IntentProductAssist, true
		}
	}
	for _, kw := range guardrailKeywords {
		if strings.Contains(lowered, kw) {
			return agentmodel.IntentOther, true
		}
	}
	return agentmodel.IntentOther, false
}

func (c *Classifier) classifyByModel(ctx context.Context, utterance string) agentmodel.Intent {
	if c.chatModel == nil {
		return agentmodel.IntentOther
	}

	resp, err := c.chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(fmt.Sprintf(fallbackPromptFormat, utterance)),
	})
	if err != nil {
		logx.Warn().Err(err).Msg("classifier fallback generation failed, defaulting intent")
		return agentmodel.IntentOther
	}

	dest, err := parsers.ExtractDestination(resp.Content)
	if err != nil {
		logx.Debug().Str("content", resp.Content).Msg("classifier fallback output unparsable, defaulting intent")
		return agentmodel.IntentOther
	}

	intent := agentmodel.Intent(dest)
	if !intent.Valid() {
		return agentmodel.IntentOther
	}
	return intent
}
