package repository

import (
	"context"
	"errors"
	"time"

	"checkout-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RefundRepo interface {
	Create(ctx context.Context, r *models.Refund) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Refund, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Refund, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.RefundStatus, fields map[string]any) error
	// RefundedQuantities sums refund item quantities per order item, ignoring failed refunds.
	RefundedQuantities(ctx context.Context, orderID uuid.UUID) (map[uuid.UUID]int32, error)
	// CompletedQuantities sums refund item quantities per order item over completed refunds only.
	CompletedQuantities(ctx context.Context, orderID uuid.UUID) (map[uuid.UUID]int32, error)
	SumCompleted(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)
}

type refundRepo struct{ db *gorm.DB }

func NewRefundRepo(db *gorm.DB) RefundRepo { return &refundRepo{db: db} }

func (r *refundRepo) Create(ctx context.Context, rf *models.Refund) error {
	return r.db.WithContext(ctx).Create(rf).Error
}

func (r *refundRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Refund, error) {
	var rf models.Refund
	err := r.db.WithContext(ctx).Preload("Items").First(&rf, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rf, err
}

func (r *refundRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Refund, error) {
	var list []models.Refund
	err := r.db.WithContext(ctx).Preload("Items").Where("order_id = ?", orderID).
		Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *refundRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.RefundStatus, fields map[string]any) error {
	upd := map[string]any{"status": status, "updated_at": time.Now().UTC()}
	for k, v := range fields {
		upd[k] = v
	}
	return r.db.WithContext(ctx).Model(&models.Refund{}).Where("id = ?", id).Updates(upd).Error
}

func (r *refundRepo) RefundedQuantities(ctx context.Context, orderID uuid.UUID) (map[uuid.UUID]int32, error) {
	return r.quantities(ctx, orderID, "rf.status <> ?", models.RefundStatusFailed)
}

func (r *refundRepo) CompletedQuantities(ctx context.Context, orderID uuid.UUID) (map[uuid.UUID]int32, error) {
	return r.quantities(ctx, orderID, "rf.status = ?", models.RefundStatusCompleted)
}

func (r *refundRepo) quantities(ctx context.Context, orderID uuid.UUID, statusCond string, status models.RefundStatus) (map[uuid.UUID]int32, error) {
	type row struct {
		OrderItemID uuid.UUID
		Qty         int32
	}
	var rows []row
	err := r.db.WithContext(ctx).Table("refund_items ri").
		Select("ri.order_item_id, COALESCE(SUM(ri.quantity),0) AS qty").
		Joins("JOIN refunds rf ON rf.id = ri.refund_id").
		Where("rf.order_id = ?", orderID).
		Where(statusCond, status).
		Group("ri.order_item_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int32, len(rows))
	for _, rw := range rows {
		out[rw.OrderItemID] = rw.Qty
	}
	return out, nil
}

func (r *refundRepo) SumCompleted(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	var res struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).Model(&models.Refund{}).
		Select("COALESCE(SUM(amount),0) AS total").
		Where("order_id = ? AND status = ?", orderID, models.RefundStatusCompleted).
		Scan(&res).Error
	return res.Total, err
}
