package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusDraft      OrderStatus = "DRAFT"
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusPaid       OrderStatus = "PAID"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
	OrderStatusFailed     OrderStatus = "FAILED"
)

var ErrImmutableOrder = errors.New("order is immutable: items cannot change once the order left DRAFT/PENDING")

// OrderItemsImmutableConstraint names the storage-level guard that raises the same violation.
const OrderItemsImmutableConstraint = "order_items_immutable"

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusDraft:      {OrderStatusPending, OrderStatusPaid, OrderStatusCancelled, OrderStatusFailed},
	OrderStatusPending:    {OrderStatusPaid, OrderStatusCancelled, OrderStatusFailed},
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusRefunded},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusRefunded},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCompleted},
	OrderStatusDelivered:  {OrderStatusCompleted, OrderStatusRefunded},
	OrderStatusCompleted:  {OrderStatusRefunded},
}

// AllOrderStatuses lists every status in lifecycle order.
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusDraft, OrderStatusPending, OrderStatusPaid, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusCompleted, OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded, OrderStatusFailed,
	}
}

func (s OrderStatus) Valid() bool {
	for _, v := range AllOrderStatuses() {
		if v == s {
			return true
		}
	}
	return false
}

// Mutable reports whether items and totals of an order in this status may still change.
func (s OrderStatus) Mutable() bool {
	return s == OrderStatusDraft || s == OrderStatusPending
}

func (s OrderStatus) Terminal() bool {
	_, ok := orderTransitions[s]
	return !ok
}

func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// JSONMap is a jsonb column holding free-form order metadata.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *JSONMap) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = JSONMap{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("jsonmap: unsupported source %T", src)
	}
	out := JSONMap{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

type Order struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber string      `gorm:"type:varchar(32);not null;uniqueIndex"`
	UserID      uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Currency    string      `gorm:"type:char(3);not null;default:'USD'"`

	Subtotal       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	ShippingAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	PaymentProvider  string     `gorm:"type:varchar(50)"`
	PaymentReference string     `gorm:"type:varchar(255);index"`
	PaidAt           *time.Time `gorm:"type:timestamptz"`

	ShippingAddress string `gorm:"type:text;not null"`
	Phone           string `gorm:"type:varchar(32)"`
	City            string `gorm:"type:varchar(100)"`
	State           string `gorm:"type:varchar(100)"`
	PostalCode      string `gorm:"type:varchar(20)"`
	Country         string `gorm:"type:varchar(100);not null;default:'Canada'"`

	Notes        string  `gorm:"type:text"`
	CancelReason *string `gorm:"type:text"`
	Metadata     JSONMap `gorm:"type:jsonb;not null;default:'{}'"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items   []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Refunds []Refund    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID *uuid.UUID `gorm:"type:uuid;index"`

	ProductName    string          `gorm:"type:varchar(255);not null"`
	SKU            string          `gorm:"type:varchar(64)"`
	Description    string          `gorm:"type:text"`
	UnitPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity       int32           `gorm:"type:int;not null"`
	TaxPercent     decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	LineTotal      decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

func (OrderItem) TableName() string { return "order_items" }

func (it *OrderItem) BeforeSave(tx *gorm.DB) error   { return it.guard(tx) }
func (it *OrderItem) BeforeDelete(tx *gorm.DB) error { return it.guard(tx) }

// guard rejects writes to items of an order that left DRAFT/PENDING. It reads the parent status
// on the same connection, so it sees rows written earlier in the surrounding transaction.
func (it *OrderItem) guard(tx *gorm.DB) error {
	q := tx.Session(&gorm.Session{NewDB: true}).Model(&Order{})
	switch {
	case it.OrderID != uuid.Nil:
		q = q.Where("orders.id = ?", it.OrderID)
	case it.ID != uuid.Nil:
		q = q.Joins("JOIN order_items oi ON oi.order_id = orders.id").Where("oi.id = ?", it.ID)
	default:
		return nil
	}

	var statuses []OrderStatus
	if err := q.Limit(1).Pluck("orders.status", &statuses).Error; err != nil {
		return err
	}
	if len(statuses) == 0 {
		return nil
	}
	if !statuses[0].Mutable() {
		return ErrImmutableOrder
	}
	return nil
}
