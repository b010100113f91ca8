package dto

import (
	"time"

	"checkout-service/internal/models"
)

type RefundItemRequest struct {
	OrderItemID string `json:"order_item_id" binding:"required,uuid"`
	Quantity    int32  `json:"quantity" binding:"required,min=1"`
}

type RefundRequest struct {
	Reason string              `json:"reason" binding:"max=500"`
	Items  []RefundItemRequest `json:"items" binding:"dive"`
}

type CompleteRefundRequest struct {
	Provider  string `json:"provider" binding:"max=50"`
	Reference string `json:"reference" binding:"max=255"`
}

type FailRefundRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type RefundItemResponse struct {
	ID          string `json:"id"`
	OrderItemID string `json:"order_item_id"`
	Quantity    int32  `json:"quantity"`
	Amount      string `json:"amount"`
}

type RefundResponse struct {
	ID                string               `json:"id"`
	OrderID           string               `json:"order_id"`
	Amount            string               `json:"amount"`
	Currency          string               `json:"currency"`
	Reason            string               `json:"reason,omitempty"`
	Status            string               `json:"status" example:"requested"`
	PaymentProvider   string               `json:"payment_provider,omitempty"`
	ProviderReference string               `json:"provider_reference,omitempty"`
	ProcessedAt       *time.Time           `json:"processed_at,omitempty"`
	Items             []RefundItemResponse `json:"items"`
	CreatedAt         time.Time            `json:"created_at"`
}

func NewRefundResponse(r *models.Refund) RefundResponse {
	items := make([]RefundItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, RefundItemResponse{
			ID:          it.ID.String(),
			OrderItemID: it.OrderItemID.String(),
			Quantity:    it.Quantity,
			Amount:      Money(it.Amount),
		})
	}
	return RefundResponse{
		ID:                r.ID.String(),
		OrderID:           r.OrderID.String(),
		Amount:            Money(r.Amount),
		Currency:          r.Currency,
		Reason:            r.Reason,
		Status:            string(r.Status),
		PaymentProvider:   r.PaymentProvider,
		ProviderReference: r.ProviderReference,
		ProcessedAt:       r.ProcessedAt,
		Items:             items,
		CreatedAt:         r.CreatedAt,
	}
}

func NewRefundList(list []models.Refund) []RefundResponse {
	out := make([]RefundResponse, 0, len(list))
	for i := range list {
		out = append(out, NewRefundResponse(&list[i]))
	}
	return out
}
