package tool

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/evoai/commerce-agent/internal/store"
	"github.com/evoai/commerce-agent/internal/validate"
)

// cancellationWindowMinutes bounds how long after placement an order may
// still be canceled. The boundary is inclusive.
const cancellationWindowMinutes = 60.0

const cancellationPolicyText = "Orders can only be canceled within 60 minutes of placement."

type OrderCancelInput struct {
	OrderID      string `json:"order_id"`
	ReferenceNow string `json:"reference_now,omitempty"`
}

func newOrderCancelTool(cat *store.Catalog, nowFn func() time.Time) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolOrderCancel,
			Desc: "Cancel an order. Only allowed within 60 minutes of placement; the decision is made here, not by the caller.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"order_id": {
					Type:     schema.String,
					Desc:     "Order ID in format A1234.",
					Required: true,
				},
				"reference_now": {
					Type: schema.String,
					Desc: "Optional ISO 8601 timestamp to evaluate the policy against instead of the current time.",
				},
			}),
		},
		func(ctx context.Context, in *OrderCancelInput) (map[string]any, error) {
			return CancelOrder(cat, in.OrderID, in.ReferenceNow, nowFn), nil
		},
	)
}

// CancelOrder applies the 60-minute cancellation policy. The outcome is fully
// determined by the order's creation time and the reference clock; callers
// never get to override the decision.
func CancelOrder(cat *store.Catalog, orderID, referenceNow string, nowFn func() time.Time) map[string]any {
	if cat == nil {
		return map[string]any{"error": storeUnavailableMessage}
	}
	if !validate.OrderID(orderID) {
		return map[string]any{
			"error": fmt.Sprintf("Invalid order ID format: %s. Order IDs should be in format A1234.", orderID),
		}
	}

	order, ok := cat.FindOrder(orderID)
	if !ok {
		return map[string]any{
			"error": fmt.Sprintf("Order %s not found in the system.", orderID),
		}
	}

	now := nowFn().UTC()
	if referenceNow != "" {
		ts, ok := validate.Timestamp(referenceNow)
		if !ok {
			return map[string]any{
				"error": fmt.Sprintf("Invalid timestamp format: %s", referenceNow),
			}
		}
		now = ts
	}

	minutes := now.Sub(order.CreatedAt.UTC()).Minutes()
	if minutes <= cancellationWindowMinutes {
		return map[string]any{
			"success":             true,
			"message":             fmt.Sprintf("Order %s has been successfully canceled.", orderID),
			"canceled_at":         now.Format("2006-01-02T15:04:05Z07:00"),
			"minutes_since_order": math.Round(minutes*10) / 10,
		}
	}

	return map[string]any{
		"success":             false,
		"reason":              "Cancellation failed: Order was placed more than 60 minutes ago.",
		"minutes_since_order": int(minutes),
		"policy":              cancellationPolicyText,
	}
}
