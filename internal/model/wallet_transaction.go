package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type WalletTransactionType string

const (
	WalletTxPayoutRequest WalletTransactionType = "payout_request"
	WalletTxEscrowRelease WalletTransactionType = "escrow_release"
)

// WalletTransaction is an append-only ledger row. Debits carry a negative
// amount.
type WalletTransaction struct {
	ID              uint64                `gorm:"primaryKey;autoIncrement"`
	StoreUID        string                `gorm:"column:store_uid;size:128;index;not null"`
	Type            WalletTransactionType `gorm:"column:type;size:32;not null"`
	Amount          decimal.Decimal       `gorm:"type:numeric(14,2);not null"`
	Note            string                `gorm:"size:255"`
	PayoutRequestID *uint64               `gorm:"column:payout_request_id;index"`
	CreatedAt       time.Time             `gorm:"autoCreateTime"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
