package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusConfirmed DeliveryStatus = "confirmed"
	DeliveryStatusShipped   DeliveryStatus = "shipped"
)

// deliveryTransitions is the closed transition table for order items.
// Shipped is terminal; cancellation and refund states are intentionally
// absent until product requirements define them.
var deliveryTransitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryStatusPending:   {DeliveryStatusConfirmed, DeliveryStatusShipped},
	DeliveryStatusConfirmed: {DeliveryStatusShipped},
	DeliveryStatusShipped:   {},
}

func (s DeliveryStatus) Valid() bool {
	_, ok := deliveryTransitions[s]
	return ok
}

func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	for _, allowed := range deliveryTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type OrderItem struct {
	ID              uint64            `gorm:"primaryKey;autoIncrement"`
	OrderID         uint64            `gorm:"column:order_id;index;not null"`
	Order           *Order            `gorm:"foreignKey:OrderID"`
	VariationID     uint64            `gorm:"column:variation_id;index;not null"`
	Variation       *ProductVariation `gorm:"foreignKey:VariationID"`
	StoreUID        string            `gorm:"column:store_uid;size:128;index;not null"`
	Quantity        int               `gorm:"not null"`
	UnitPrice       decimal.Decimal   `gorm:"column:unit_price;type:numeric(12,2);not null"`
	DeliveryStatus  DeliveryStatus    `gorm:"column:delivery_status;size:32;not null"`
	TrackingCode    string            `gorm:"column:tracking_code;size:128"`
	ShippingCarrier string            `gorm:"column:shipping_carrier;size:128"`
	ShippedAt       *time.Time        `gorm:"column:shipped_at"`
	CreatedAt       time.Time         `gorm:"autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
