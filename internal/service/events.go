package service

import (
	"context"
	"time"

	"checkout-service/internal/models"

	"github.com/google/uuid"
)

type OrderLineEvent struct {
	ProductName string `json:"product_name"`
	SKU         string `json:"sku,omitempty"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	TaxAmount   string `json:"tax_amount"`
	LineTotal   string `json:"line_total"`
}

type OrderPlacedEvent struct {
	OrderID         uuid.UUID        `json:"order_id"`
	OrderNumber     string           `json:"order_number"`
	UserID          uuid.UUID        `json:"user_id"`
	Email           string           `json:"email,omitempty"`
	Currency        string           `json:"currency"`
	Subtotal        string           `json:"subtotal"`
	TaxAmount       string           `json:"tax_amount"`
	ShippingAmount  string           `json:"shipping_amount"`
	DiscountAmount  string           `json:"discount_amount"`
	Total           string           `json:"total"`
	ShippingAddress string           `json:"shipping_address"`
	City            string           `json:"city,omitempty"`
	State           string           `json:"state,omitempty"`
	PostalCode      string           `json:"postal_code,omitempty"`
	Country         string           `json:"country,omitempty"`
	Items           []OrderLineEvent `json:"items"`
	PlacedAt        time.Time        `json:"placed_at"`
}

// Notifier delivers the order confirmation. Checkout calls it after commit and only logs failures.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, e OrderPlacedEvent) error
}

func NewOrderPlacedEvent(o *models.Order, email string) OrderPlacedEvent {
	items := make([]OrderLineEvent, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderLineEvent{
			ProductName: it.ProductName,
			SKU:         it.SKU,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.StringFixed(2),
			TaxAmount:   it.TaxAmount.StringFixed(2),
			LineTotal:   it.LineTotal.StringFixed(2),
		})
	}
	return OrderPlacedEvent{
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		Email:           email,
		Currency:        o.Currency,
		Subtotal:        o.Subtotal.StringFixed(2),
		TaxAmount:       o.TaxAmount.StringFixed(2),
		ShippingAmount:  o.ShippingAmount.StringFixed(2),
		DiscountAmount:  o.DiscountAmount.StringFixed(2),
		Total:           o.TotalAmount.StringFixed(2),
		ShippingAddress: o.ShippingAddress,
		City:            o.City,
		State:           o.State,
		PostalCode:      o.PostalCode,
		Country:         o.Country,
		Items:           items,
		PlacedAt:        o.CreatedAt,
	}
}
