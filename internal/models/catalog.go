package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Slug string    `gorm:"type:varchar(120);not null;uniqueIndex" json:"slug"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID            uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID    *uuid.UUID          `gorm:"type:uuid;index"`
	Name          string              `gorm:"type:varchar(255);not null"`
	Slug          string              `gorm:"type:varchar(255);not null;uniqueIndex"`
	SKU           *string             `gorm:"type:varchar(64);uniqueIndex"`
	Description   string              `gorm:"type:text"`
	Price         decimal.Decimal     `gorm:"type:numeric(10,2);not null"`
	DiscountPrice decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	TaxPercent    decimal.Decimal     `gorm:"type:numeric(5,2);not null;default:0"`
	Stock         int32               `gorm:"type:int;not null;default:0"`
	IsActive      bool                `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

func (Product) TableName() string { return "products" }

// FinalPrice is the discount price when it is set and lower than the list price.
func (p *Product) FinalPrice() decimal.Decimal {
	if p.DiscountPrice.Valid && p.DiscountPrice.Decimal.LessThan(p.Price) {
		return p.DiscountPrice.Decimal
	}
	return p.Price
}

func (p *Product) PriceWithTax() decimal.Decimal {
	fp := p.FinalPrice()
	return fp.Add(fp.Mul(p.TaxPercent).Div(hundred)).Round(2)
}

func (p *Product) InStock(qty int32) bool { return p.Stock >= qty }
