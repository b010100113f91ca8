package repository

import (
	"context"
	"errors"
	"fmt"

	"checkout-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderItemRepo interface {
	BulkCreate(ctx context.Context, items []models.OrderItem) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
	// Save persists a modified item. The model hook and the guard trigger reject it once the order
	// is no longer mutable.
	Save(ctx context.Context, item *models.OrderItem) error
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}

type orderItemRepo struct{ db *gorm.DB }

func NewOrderItemRepo(db *gorm.DB) OrderItemRepo { return &orderItemRepo{db: db} }

func (r *orderItemRepo) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Product").Create(&items).Error
}

func (r *orderItemRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	var rows []models.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at ASC, id ASC").Find(&rows).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return rows, err
}

func (r *orderItemRepo) Save(ctx context.Context, item *models.OrderItem) error {
	return immutable(r.db.WithContext(ctx).Omit("Product").Save(item).Error)
}

func immutable(err error) error {
	if IsImmutableOrder(err) {
		return fmt.Errorf("%w: %v", models.ErrImmutableOrder, err)
	}
	return err
}

func (r *orderItemRepo) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).Where("product_id = ?", productID).Count(&cnt).Error
	return cnt, err
}
