package dto

import (
	"time"

	"checkout-service/internal/models"
)

// Адрес не помечен required: пустой адрес отклоняется сервисом после проверки корзины.
type PlaceOrderRequest struct {
	ShippingAddress string `json:"shipping_address" example:"1 Main St"`
	City            string `json:"city" binding:"max=100"`
	State           string `json:"state" binding:"max=100"`
	PostalCode      string `json:"postal_code" binding:"max=20"`
	Country         string `json:"country" binding:"max=100"`
	Phone           string `json:"phone" binding:"max=32"`
	Notes           string `json:"notes"`
}

type OrderItemResponse struct {
	ID             string  `json:"id"`
	ProductID      *string `json:"product_id,omitempty"`
	ProductName    string  `json:"product_name"`
	SKU            string  `json:"sku,omitempty"`
	UnitPrice      string  `json:"unit_price"`
	Quantity       int32   `json:"quantity"`
	TaxPercent     string  `json:"tax_percent"`
	TaxAmount      string  `json:"tax_amount"`
	DiscountAmount string  `json:"discount_amount"`
	LineTotal      string  `json:"line_total"`
}

type OrderResponse struct {
	ID               string              `json:"id"`
	OrderNumber      string              `json:"order_number" example:"ORD-A1B2C3D4E5"`
	UserID           string              `json:"user_id"`
	Status           string              `json:"status" example:"PENDING"`
	Currency         string              `json:"currency"`
	Subtotal         string              `json:"subtotal"`
	TaxAmount        string              `json:"tax_amount"`
	DiscountAmount   string              `json:"discount_amount"`
	ShippingAmount   string              `json:"shipping_amount"`
	TotalAmount      string              `json:"total_amount"`
	PaymentProvider  string              `json:"payment_provider,omitempty"`
	PaymentReference string              `json:"payment_reference,omitempty"`
	PaidAt           *time.Time          `json:"paid_at,omitempty"`
	ShippingAddress  string              `json:"shipping_address"`
	City             string              `json:"city,omitempty"`
	State            string              `json:"state,omitempty"`
	PostalCode       string              `json:"postal_code,omitempty"`
	Country          string              `json:"country"`
	Phone            string              `json:"phone,omitempty"`
	Notes            string              `json:"notes,omitempty"`
	CancelReason     *string             `json:"cancel_reason,omitempty"`
	Items            []OrderItemResponse `json:"items"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

type OrderListResponse struct {
	Items  []OrderResponse `json:"items"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type BulkCancelRequest struct {
	OrderIDs []string `json:"order_ids" binding:"required,min=1,max=100,dive,uuid"`
	Reason   string   `json:"reason" binding:"max=500"`
}

type BulkCancelSkipped struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

type BulkCancelResponse struct {
	Cancelled []string            `json:"cancelled"`
	Skipped   []BulkCancelSkipped `json:"skipped"`
}

type MarkPaidRequest struct {
	Provider  string `json:"provider" binding:"required,max=50" example:"stripe"`
	Reference string `json:"reference" binding:"max=255" example:"pi_3Nabc"`
}

type AdvanceStatusRequest struct {
	Status string `json:"status" binding:"required" example:"PROCESSING"`
}

func NewOrderResponse(o *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		ir := OrderItemResponse{
			ID:             it.ID.String(),
			ProductName:    it.ProductName,
			SKU:            it.SKU,
			UnitPrice:      Money(it.UnitPrice),
			Quantity:       it.Quantity,
			TaxPercent:     Money(it.TaxPercent),
			TaxAmount:      Money(it.TaxAmount),
			DiscountAmount: Money(it.DiscountAmount),
			LineTotal:      Money(it.LineTotal),
		}
		if it.ProductID != nil {
			s := it.ProductID.String()
			ir.ProductID = &s
		}
		items = append(items, ir)
	}
	return OrderResponse{
		ID:               o.ID.String(),
		OrderNumber:      o.OrderNumber,
		UserID:           o.UserID.String(),
		Status:           string(o.Status),
		Currency:         o.Currency,
		Subtotal:         Money(o.Subtotal),
		TaxAmount:        Money(o.TaxAmount),
		DiscountAmount:   Money(o.DiscountAmount),
		ShippingAmount:   Money(o.ShippingAmount),
		TotalAmount:      Money(o.TotalAmount),
		PaymentProvider:  o.PaymentProvider,
		PaymentReference: o.PaymentReference,
		PaidAt:           o.PaidAt,
		ShippingAddress:  o.ShippingAddress,
		City:             o.City,
		State:            o.State,
		PostalCode:       o.PostalCode,
		Country:          o.Country,
		Phone:            o.Phone,
		Notes:            o.Notes,
		CancelReason:     o.CancelReason,
		Items:            items,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func NewOrderList(list []models.Order, total int64, limit, offset int) OrderListResponse {
	items := make([]OrderResponse, 0, len(list))
	for i := range list {
		items = append(items, NewOrderResponse(&list[i]))
	}
	return OrderListResponse{Items: items, Total: total, Limit: limit, Offset: offset}
}
