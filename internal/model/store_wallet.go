package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreWallet holds escrowed funds per store. balance_available is only
// mutated through conditional updates that keep it non-negative.
type StoreWallet struct {
	StoreUID         string          `gorm:"column:store_uid;primaryKey;size:128"`
	BalanceAvailable decimal.Decimal `gorm:"column:balance_available;type:numeric(14,2);not null;default:0"`
	BalancePending   decimal.Decimal `gorm:"column:balance_pending;type:numeric(14,2);not null;default:0"`
	CreatedAt        time.Time       `gorm:"autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime"`
}

func (StoreWallet) TableName() string {
	return "store_wallets"
}
