package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ModerationStatus string

const (
	ModerationStatusPending  ModerationStatus = "pending"
	ModerationStatusApproved ModerationStatus = "approved"
	ModerationStatusRejected ModerationStatus = "rejected"
)

func (s ModerationStatus) Valid() bool {
	switch s {
	case ModerationStatusPending, ModerationStatusApproved, ModerationStatusRejected:
		return true
	}
	return false
}

type Product struct {
	ID               uint64             `gorm:"primaryKey;autoIncrement"`
	StoreUID         string             `gorm:"column:store_uid;size:128;index;not null"`
	Name             string             `gorm:"size:160;not null"`
	Slug             string             `gorm:"size:180;not null;uniqueIndex:uk_products_slug"`
	Description      string             `gorm:"type:text"`
	CategoryID       *uint64            `gorm:"column:category_id;index"`
	Price            decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	Images           []string           `gorm:"serializer:json;type:jsonb"`
	ModerationStatus ModerationStatus   `gorm:"column:moderation_status;size:32;not null"`
	IsActive         bool               `gorm:"column:is_active;not null;default:false"`
	Variations       []ProductVariation `gorm:"foreignKey:ProductID"`
	CreatedAt        time.Time          `gorm:"autoCreateTime"`
	UpdatedAt        time.Time          `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
