package service

import (
	"context"

	"checkout-service/internal/models"

	"github.com/google/uuid"
)

type ListFilter struct {
	UserID *uuid.UUID
	Status *models.OrderStatus
	Limit  int
	Offset int
}

type BulkCancelSkip struct {
	OrderID uuid.UUID
	Reason  string
}

type BulkCancelResult struct {
	Cancelled []uuid.UUID
	Skipped   []BulkCancelSkip
}

type OrderService interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetOrderByNumber(ctx context.Context, number string) (*models.Order, error)
	ListOrders(ctx context.Context, f ListFilter) ([]models.Order, int64, error)

	// MarkAsPaid is the payment confirmation hook.
	MarkAsPaid(ctx context.Context, id uuid.UUID, provider, reference string) (*models.Order, error)
	AdvanceStatus(ctx context.Context, id uuid.UUID, to models.OrderStatus) (*models.Order, error)
	BulkCancel(ctx context.Context, ids []uuid.UUID, reason string) (*BulkCancelResult, error)
	RecalculateTotals(ctx context.Context, id uuid.UUID) (*models.Order, error)
}
