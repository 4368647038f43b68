package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Gio27709/dental-market-backend/internal/model"
	"github.com/Gio27709/dental-market-backend/internal/repository"
	"github.com/shopspring/decimal"
)

// RateSnapshot is the versioned configuration captured at order-creation
// time. Injecting it keeps the order math independent of later settings
// writes.
type RateSnapshot struct {
	ExchangeRate      decimal.Decimal
	CommissionPercent decimal.Decimal
	CapturedAt        time.Time
}

type SettingsService interface {
	Map(ctx context.Context) (map[string]json.RawMessage, error)
	Snapshot(ctx context.Context) (*RateSnapshot, error)
	UpdateBCVRate(ctx context.Context, rate decimal.Decimal) (*model.GlobalSetting, error)
	UpdateCommission(ctx context.Context, percentage decimal.Decimal) (*model.GlobalSetting, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Map(ctx context.Context) (map[string]json.RawMessage, error) {
	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(settings))
	for _, st := range settings {
		out[st.Key] = st.Value
	}
	return out, nil
}

func (s *settingsService) Snapshot(ctx context.Context) (*RateSnapshot, error) {
	settings, err := s.repo.FindByKeys(ctx, []string{model.SettingKeyBCVRate, model.SettingKeyPlatformFee})
	if err != nil {
		return nil, err
	}

	snap := RateSnapshot{CapturedAt: time.Now()}
	var haveRate, haveFee bool
	for _, st := range settings {
		switch st.Key {
		case model.SettingKeyBCVRate:
			var v model.BCVRateValue
			if err := json.Unmarshal(st.Value, &v); err != nil {
				return nil, ErrSettingsIncomplete
			}
			snap.ExchangeRate = v.Rate
			haveRate = true
		case model.SettingKeyPlatformFee:
			var v model.PlatformFeeValue
			if err := json.Unmarshal(st.Value, &v); err != nil {
				return nil, ErrSettingsIncomplete
			}
			snap.CommissionPercent = v.Percentage
			haveFee = true
		}
	}
	if !haveRate || !haveFee {
		return nil, ErrSettingsIncomplete
	}
	if snap.ExchangeRate.Sign() <= 0 {
		return nil, ErrSettingsIncomplete
	}
	return &snap, nil
}

func (s *settingsService) UpdateBCVRate(ctx context.Context, rate decimal.Decimal) (*model.GlobalSetting, error) {
	if rate.Sign() <= 0 {
		return nil, errors.New("valid BCV rate required")
	}
	payload, err := json.Marshal(model.BCVRateValue{Rate: rate, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return nil, err
	}
	return s.repo.Upsert(ctx, model.SettingKeyBCVRate, payload)
}

func (s *settingsService) UpdateCommission(ctx context.Context, percentage decimal.Decimal) (*model.GlobalSetting, error) {
	if percentage.Sign() < 0 || percentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, errors.New("valid commission percentage (0-100) required")
	}
	payload, err := json.Marshal(model.PlatformFeeValue{Percentage: percentage, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return nil, err
	}
	return s.repo.Upsert(ctx, model.SettingKeyPlatformFee, payload)
}
