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

type CartRepo interface {
	// GetOrCreate is safe under concurrent first access: the insert is ON CONFLICT DO NOTHING and
	// the row is then read back, so both racers observe the same cart.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	// LockByID: SELECT ... FOR UPDATE on the cart row; checkouts of one cart run one after another
	LockByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	// GetWithItems loads lines together with their live products.
	GetWithItems(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
}

type cartRepo struct{ db *gorm.DB }

func NewCartRepo(db *gorm.DB) CartRepo { return &cartRepo{db: db} }

func (r *cartRepo) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	now := time.Now().UTC()
	c := &models.Cart{UserID: userID, CreatedAt: now, UpdatedAt: now}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(c).Error
	if err != nil && !IsUniqueViolation(err, "") {
		return nil, err
	}
	return r.GetByUserID(ctx, userID)
}

func (r *cartRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var c models.Cart
	err := r.db.WithContext(ctx).First(&c, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *cartRepo) LockByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var c models.Cart
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *cartRepo) GetWithItems(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var c models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.created_at ASC") }).
		Preload("Items.Product").
		First(&c, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}
