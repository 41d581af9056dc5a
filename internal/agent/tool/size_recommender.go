package tool

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

type SizeRecommenderInput struct {
	UserInput string `json:"user_input"`
}

type SizeRecommenderOutput struct {
	Recommendation string `json:"recommendation"`
}

func newSizeRecommenderTool() tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSizeRecommender,
			Desc: "Give a size recommendation from the customer's own description, e.g. \"I'm between M/L\" or \"I prefer a loose fit\".",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"user_input": {
					Type:     schema.String,
					Desc:     "The customer's sizing statement, verbatim.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *SizeRecommenderInput) (*SizeRecommenderOutput, error) {
			return &SizeRecommenderOutput{Recommendation: RecommendSize(in.UserInput)}, nil
		},
	)
}

// RecommendSize applies the ordered sizing rules. It always answers.
func RecommendSize(userInput string) string {
	input := strings.ToLower(userInput)

	switch {
	case strings.Contains(input, "between m/l") || strings.Contains(input, "between l/m") || strings.Contains(input, "m/l"):
		return "Based on your preference between M/L: Medium (M) is typically the safer choice for a comfortable, not-too-tight fit. Large (L) would give you more room if you prefer a looser fit."
	case strings.Contains(input, "loose fit") || strings.Contains(input, "prefer loose"):
		return "For a loose, comfortable fit, I'd recommend going up one size from your usual size."
	case strings.Contains(input, "fitted") || strings.Contains(input, "form fitting") || strings.Contains(input, "prefer tight"):
		return "For a fitted, form-hugging look, your true size or even one size down would work best."
	case strings.Contains(input, "wedding") || strings.Contains(input, "formal") || strings.Contains(input, "dressy"):
		return "For formal events like weddings, I recommend your true size for the most flattering fit."
	case strings.Contains(input, "not sure") || strings.Contains(input, "don't know") || strings.Contains(input, "uncertain"):
		return "If you're unsure about sizing, Medium (M) is often the most versatile choice. Most of our dresses in M fit sizes 8-10."
	default:
		return "For the best fit, consider your usual dress size, the occasion, and your comfort preference. If between sizes, Medium (M) is usually the safer choice."
	}
}
