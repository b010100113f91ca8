package repository

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	DB         *gorm.DB
	Categories CategoryRepo
	Products   ProductRepo
	Carts      CartRepo
	CartItems  CartItemRepo
	Orders     OrderRepo
	OrderItems OrderItemRepo
	Refunds    RefundRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:         db,
		Categories: NewCategoryRepo(db),
		Products:   NewProductRepo(db),
		Carts:      NewCartRepo(db),
		CartItems:  NewCartItemRepo(db),
		Orders:     NewOrderRepo(db),
		OrderItems: NewOrderItemRepo(db),
		Refunds:    NewRefundRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }

// WithTx runs fn inside one database transaction. Every repository handed to fn shares it;
// returning an error (or panicking) rolls everything back.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(buildRepository(tx))
	})
}
