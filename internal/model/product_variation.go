package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductVariation struct {
	ID             uint64          `gorm:"primaryKey;autoIncrement"`
	ProductID      uint64          `gorm:"column:product_id;index;not null"`
	AttributeName  string          `gorm:"column:attribute_name;size:120;not null"`
	AttributeValue string          `gorm:"column:attribute_value;size:120;not null"`
	Stock          int             `gorm:"not null;default:0"`
	PriceModifier  decimal.Decimal `gorm:"column:price_modifier;type:numeric(12,2);not null;default:0"`
	SKU            string          `gorm:"column:sku;size:64"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (ProductVariation) TableName() string {
	return "product_variations"
}
