package model

import "time"

// Intent is the closed classification set for a user turn.
type Intent string

const (
	IntentProductAssist Intent = "product_assist"
	IntentOrderHelp     Intent = "order_help"
	IntentOther         Intent = "other"
)

// Valid reports whether the intent is a member of the closed set.
func (i Intent) Valid() bool {
	switch i {
	case IntentProductAssist, IntentOrderHelp, IntentOther:
		return true
	}
	return false
}

// Product is a read-only catalog record.
type Product struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Price float64  `json:"price"`
	Tags  []string `json:"tags"`
	Sizes []string `json:"sizes,omitempty"`
	Color string   `json:"color,omitempty"`
}

// Order is a read-only order record. The cancellation policy tool never
// mutates it; cancellation checks are idempotent.
type Order struct {
	OrderID   string    `json:"order_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
