package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayoutStatus string

const (
	PayoutStatusPending  PayoutStatus = "pending"
	PayoutStatusPaid     PayoutStatus = "paid"
	PayoutStatusRejected PayoutStatus = "rejected"
)

// PayoutRequest is the ticket an admin resolves externally. The debit that
// freezes the funds happens in the same transaction that creates the row.
type PayoutRequest struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement"`
	StoreUID  string          `gorm:"column:store_uid;size:128;index;not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status    PayoutStatus    `gorm:"size:32;not null"`
	Reference string          `gorm:"size:36;not null;uniqueIndex:uk_payout_requests_reference"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (PayoutRequest) TableName() string {
	return "payout_requests"
}
