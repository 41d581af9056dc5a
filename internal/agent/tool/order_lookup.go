package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/evoai/commerce-agent/internal/store"
	"github.com/evoai/commerce-agent/internal/validate"
)

type OrderLookupInput struct {
	OrderID string `json:"order_id"`
	Email   string `json:"email"`
}

func newOrderLookupTool(cat *store.Catalog) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolOrderLookup,
			Desc: "Look up an order by its ID and the customer's email. Both must match the record.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"order_id": {
					Type:     schema.String,
					Desc:     "Order ID in format A1234.",
					Required: true,
				},
				"email": {
					Type:     schema.String,
					Desc:     "Email address the order was placed with.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *OrderLookupInput) (map[string]any, error) {
			return LookupOrder(cat, in.OrderID, in.Email), nil
		},
	)
}

// LookupOrder validates both identifiers before touching the store, and
// reports a miss without revealing which of the two fields was wrong.
func LookupOrder(cat *store.Catalog, orderID, email string) map[string]any {
	if cat == nil {
		return map[string]any{"error": storeUnavailableMessage}
	}
	if !validate.OrderID(orderID) {
		return map[string]any{
			"error": fmt.Sprintf("Invalid order ID format: %s. Order IDs should be in format A1234.", orderID),
		}
	}
	if !validate.Email(email) {
		return map[string]any{
			"error": fmt.Sprintf("Invalid email format: %s. Please provide a valid email address.", email),
		}
	}

	order, ok := cat.FindOrder(orderID)
	if !ok || !strings.EqualFold(order.Email, email) {
		return map[string]any{
			"error": "Order not found. Please check your order ID and email address.",
		}
	}

	return map[string]any{
		"order_id":   order.OrderID,
		"email":      order.Email,
		"created_at": order.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
