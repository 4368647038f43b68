package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

type EscrowStatus string

const (
	EscrowStatusHeld     EscrowStatus = "held"
	EscrowStatusReleased EscrowStatus = "released"
)

// Order is an immutable purchase snapshot: the exchange rate and commission
// fields are locked at creation and never rewritten, so later settings
// changes cannot retroactively alter historical totals.
type Order struct {
	ID                       uint64          `gorm:"primaryKey;autoIncrement"`
	BuyerUID                 string          `gorm:"column:buyer_uid;size:128;index;not null"`
	TotalUSD                 decimal.Decimal `gorm:"column:total_usd;type:numeric(12,2);not null"`
	TotalVES                 decimal.Decimal `gorm:"column:total_ves;type:numeric(14,2);not null"`
	ExchangeRateAtPurchase   decimal.Decimal `gorm:"column:exchange_rate_at_purchase;type:numeric(12,4);not null"`
	CommissionRateAtPurchase decimal.Decimal `gorm:"column:commission_rate_at_purchase;type:numeric(5,2);not null"`
	CommissionAmountUSD      decimal.Decimal `gorm:"column:commission_amount_usd;type:numeric(12,2);not null"`
	CommissionAmountVES      decimal.Decimal `gorm:"column:commission_amount_ves;type:numeric(14,2);not null"`
	PaymentStatus            PaymentStatus   `gorm:"column:payment_status;size:32;not null"`
	OrderStatus              OrderStatus     `gorm:"column:order_status;size:32;not null"`
	EscrowStatus             EscrowStatus    `gorm:"column:escrow_status;size:32;not null"`
	Items                    []OrderItem     `gorm:"foreignKey:OrderID"`
	CreatedAt                time.Time       `gorm:"autoCreateTime"`
	UpdatedAt                time.Time       `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}
