package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	SettingKeyBCVRate     = "bcv_rate"
	SettingKeyPlatformFee = "platform_fee"
)

type GlobalSetting struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement"`
	Key       string          `gorm:"size:64;not null;uniqueIndex:uk_global_settings_key"`
	Value     json.RawMessage `gorm:"type:jsonb;not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (GlobalSetting) TableName() string {
	return "global_settings"
}

// BCVRateValue is the payload stored under the bcv_rate key.
type BCVRateValue struct {
	Rate      decimal.Decimal `json:"rate"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PlatformFeeValue is the payload stored under the platform_fee key.
type PlatformFeeValue struct {
	Percentage decimal.Decimal `json:"percentage"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
