package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RefundStatus string

const (
	RefundStatusRequested  RefundStatus = "requested"
	RefundStatusProcessing RefundStatus = "processing"
	RefundStatusCompleted  RefundStatus = "completed"
	RefundStatusFailed     RefundStatus = "failed"
)

var refundTransitions = map[RefundStatus][]RefundStatus{
	RefundStatusRequested:  {RefundStatusProcessing, RefundStatusCompleted, RefundStatusFailed},
	RefundStatusProcessing: {RefundStatusCompleted, RefundStatusFailed},
}

func CanTransitionRefund(from, to RefundStatus) bool {
	for _, next := range refundTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Refund records money returned against an order. It never mutates the order's items.
type Refund struct {
	ID                uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency          string          `gorm:"type:char(3);not null;default:'USD'"`
	Reason            string          `gorm:"type:text"`
	Status            RefundStatus    `gorm:"type:varchar(20);not null;default:'requested';index"`
	PaymentProvider   string          `gorm:"type:varchar(50)"`
	ProviderReference string          `gorm:"type:varchar(255)"`
	ProcessedAt       *time.Time      `gorm:"type:timestamptz"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items []RefundItem `gorm:"foreignKey:RefundID;constraint:OnDelete:CASCADE"`
}

func (Refund) TableName() string { return "refunds" }

type RefundItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RefundID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity    int32           `gorm:"type:int;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	OrderItem *OrderItem `gorm:"foreignKey:OrderItemID;constraint:OnDelete:RESTRICT"`
}

func (RefundItem) TableName() string { return "refund_items" }
