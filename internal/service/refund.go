package service

import (
	"context"

	"checkout-service/internal/models"

	"github.com/google/uuid"
)

type RefundItemInput struct {
	OrderItemID uuid.UUID
	Quantity    int32
}

type RefundInput struct {
	Reason string
	Items  []RefundItemInput
}

type RefundService interface {
	RequestRefund(ctx context.Context, orderID uuid.UUID, in RefundInput) (*models.Refund, error)
	ListRefunds(ctx context.Context, orderID uuid.UUID) ([]models.Refund, error)
	MarkRefundProcessing(ctx context.Context, refundID uuid.UUID) (*models.Refund, error)
	// CompleteRefund moves the order to REFUNDED once completed refunds cover its total.
	CompleteRefund(ctx context.Context, refundID uuid.UUID, provider, reference string) (*models.Refund, error)
	FailRefund(ctx context.Context, refundID uuid.UUID, reason string) (*models.Refund, error)
}
