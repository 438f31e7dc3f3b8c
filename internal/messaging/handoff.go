package messaging

import (
	"github.com/shopspring/decimal"

	"go-pos-loyalty/internal/model"
)

// Handoff carries everything a delivery partner needs to compose a message
// for one order. The core publishes it; message delivery is owned elsewhere.
type Handoff struct {
	OrderID       string          `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	StoreID       string          `json:"store_id"`
	CustomerName  string          `json:"customer_name,omitempty"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	Street        string          `json:"street"`
	Neighborhood  string          `json:"neighborhood"`
	Items         []HandoffItem   `json:"items"`
	Total         decimal.Decimal `json:"total"`
}

type HandoffItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// BuildHandoff composes the hand-off payload from a committed order's
// snapshots; catalog edits after the sale cannot change it.
func BuildHandoff(order *model.Order) Handoff {
	h := Handoff{
		OrderID:      order.ID.String(),
		OrderNumber:  order.OrderNumber,
		StoreID:      order.StoreID.String(),
		Street:       order.Street,
		Neighborhood: order.Neighborhood,
		Total:        order.Total,
	}
	if order.Customer != nil {
		h.CustomerName = order.Customer.Name
		h.CustomerPhone = order.Customer.Phone
	}
	for _, item := range order.Items {
		h.Items = append(h.Items, HandoffItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal,
		})
	}
	return h
}
