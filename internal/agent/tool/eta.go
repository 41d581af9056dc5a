package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/evoai/commerce-agent/internal/validate"
)

type ETAInput struct {
	ZipCode string `json:"zip_code"`
}

type ETAOutput struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func newETATool() tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolETA,
			Desc: "Estimate the shipping window for a destination zip code.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"zip_code": {
					Type:     schema.String,
					Desc:     "Destination postal code, 5 or 6 digits.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *ETAInput) (*ETAOutput, error) {
			return &ETAOutput{Message: ShippingETA(in.ZipCode)}, nil
		},
	)
}

// ShippingETA answers with the rule-based shipping window, or a validation
// message for malformed zip codes.
func ShippingETA(zipCode string) string {
	if !validate.ZipCode(zipCode) {
		return fmt.Sprintf("Invalid zip code format: %s. Please provide a valid 5-6 digit zip code.", zipCode)
	}
	return fmt.Sprintf("Shipping to zip code %s typically takes 2-5 business days.", zipCode)
}
