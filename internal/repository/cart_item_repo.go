package repository

import (
	"context"
	"errors"
	"time"

	"checkout-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemRepo interface {
	// AddOrIncrement inserts a line or, when the product is already in the cart, adds qty to it.
	AddOrIncrement(ctx context.Context, cartID, productID uuid.UUID, qty int32) (*models.CartItem, error)
	GetInCart(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error)
	// LockInCart is GetInCart with a row lock. Must run inside a transaction.
	LockInCart(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error)
	SetQuantity(ctx context.Context, itemID uuid.UUID, qty int32) error
	Delete(ctx context.Context, cartID, itemID uuid.UUID) (bool, error)
	DeleteByCart(ctx context.Context, cartID uuid.UUID) (int64, error)
	ListByCart(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}

type cartItemRepo struct{ db *gorm.DB }

func NewCartItemRepo(db *gorm.DB) CartItemRepo { return &cartItemRepo{db: db} }

func (r *cartItemRepo) AddOrIncrement(ctx context.Context, cartID, productID uuid.UUID, qty int32) (*models.CartItem, error) {
	item := &models.CartItem{CartID: cartID, ProductID: productID, Quantity: qty}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("cart_items.quantity + EXCLUDED.quantity"),
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(item).Error
	if err != nil {
		return nil, err
	}

	var out models.CartItem
	if err := r.db.WithContext(ctx).Preload("Product").
		First(&out, "cart_id = ? AND product_id = ?", cartID, productID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *cartItemRepo) GetInCart(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {
	var it models.CartItem
	err := r.db.WithContext(ctx).Preload("Product").First(&it, "id = ? AND cart_id = ?", itemID, cartID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &it, err
}

func (r *cartItemRepo) LockInCart(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {
	var it models.CartItem
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: clause.CurrentTable}}).
		Preload("Product").First(&it, "id = ? AND cart_id = ?", itemID, cartID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &it, err
}

func (r *cartItemRepo) SetQuantity(ctx context.Context, itemID uuid.UUID, qty int32) error {
	return r.db.WithContext(ctx).Model(&models.CartItem{}).Where("id = ?", itemID).
		Update("quantity", qty).Error
}

func (r *cartItemRepo) Delete(ctx context.Context, cartID, itemID uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&models.CartItem{})
	return tx.RowsAffected > 0, tx.Error
}

func (r *cartItemRepo) DeleteByCart(ctx context.Context, cartID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{})
	return tx.RowsAffected, tx.Error
}

func (r *cartItemRepo) ListByCart(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	var rows []models.CartItem
	err := r.db.WithContext(ctx).Preload("Product").Where("cart_id = ?", cartID).
		Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *cartItemRepo) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Where("updated_at < ?", before).Delete(&models.CartItem{})
	return tx.RowsAffected, tx.Error
}
