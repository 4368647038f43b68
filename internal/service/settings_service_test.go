package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Gio27709/dental-market-backend/internal/model"
)

type fakeSettingsRepo struct {
	settings  []model.GlobalSetting
	upserted  map[string]json.RawMessage
	upsertErr error
}

func (f *fakeSettingsRepo) List(_ context.Context) ([]model.GlobalSetting, error) {
	return f.settings, nil
}

func (f *fakeSettingsRepo) FindByKeys(_ context.Context, keys []string) ([]model.GlobalSetting, error) {
	var out []model.GlobalSetting
	for _, st := range f.settings {
		for _, k := range keys {
			if st.Key == k {
				out = append(out, st)
			}
		}
	}
	return out, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, key string, value json.RawMessage) (*model.GlobalSetting, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	if f.upserted == nil {
		f.upserted = map[string]json.RawMessage{}
	}
	f.upserted[key] = value
	return &model.GlobalSetting{Key: key, Value: value}, nil
}

func rateSetting(t *testing.T, rate string) model.GlobalSetting {
	t.Helper()
	payload, err := json.Marshal(model.BCVRateValue{Rate: dec(rate), UpdatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatal(err)
	}
	return model.GlobalSetting{Key: model.SettingKeyBCVRate, Value: payload}
}

func feeSetting(t *testing.T, pct string) model.GlobalSetting {
	t.Helper()
	payload, err := json.Marshal(model.PlatformFeeValue{Percentage: dec(pct), UpdatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatal(err)
	}
	return model.GlobalSetting{Key: model.SettingKeyPlatformFee, Value: payload}
}

func TestSnapshot(t *testing.T) {
	t.Run("complete settings", func(t *testing.T) {
		repo := &fakeSettingsRepo{settings: []model.GlobalSetting{
			rateSetting(t, "36.5"),
			feeSetting(t, "10"),
		}}
		snap, err := NewSettingsService(repo).Snapshot(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !snap.ExchangeRate.Equal(dec("36.5")) || !snap.CommissionPercent.Equal(dec("10")) {
			t.Fatalf("snapshot = %s/%s, want 36.5/10", snap.ExchangeRate, snap.CommissionPercent)
		}
		if snap.CapturedAt.IsZero() {
			t.Fatal("CapturedAt should be set")
		}
	})

	t.Run("incomplete settings", func(t *testing.T) {
		cases := []struct {
			name     string
			settings []model.GlobalSetting
		}{
			{"no settings", nil},
			{"missing fee", []model.GlobalSetting{rateSetting(t, "36.5")}},
			{"missing rate", []model.GlobalSetting{feeSetting(t, "10")}},
			{"zero rate", []model.GlobalSetting{rateSetting(t, "0"), feeSetting(t, "10")}},
			{"negative rate", []model.GlobalSetting{rateSetting(t, "-1"), feeSetting(t, "10")}},
			{"corrupt payload", []model.GlobalSetting{
				{Key: model.SettingKeyBCVRate, Value: json.RawMessage(`"nope"`)},
				feeSetting(t, "10"),
			}},
		}
		for _, tt := range cases {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewSettingsService(&fakeSettingsRepo{settings: tt.settings}).Snapshot(context.Background())
				if !errors.Is(err, ErrSettingsIncomplete) {
					t.Fatalf("err = %v, want ErrSettingsIncomplete", err)
				}
			})
		}
	})
}

func TestUpdateBCVRate(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo)

	for _, bad := range []string{"0", "-3"} {
		if _, err := svc.UpdateBCVRate(context.Background(), dec(bad)); err == nil {
			t.Fatalf("rate %s: expected error", bad)
		}
	}
	if len(repo.upserted) != 0 {
		t.Fatal("invalid rates must not be persisted")
	}

	setting, err := svc.UpdateBCVRate(context.Background(), dec("40.25"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var v model.BCVRateValue
	if err := json.Unmarshal(setting.Value, &v); err != nil {
		t.Fatalf("payload unmarshal: %v", err)
	}
	if !v.Rate.Equal(dec("40.25")) {
		t.Fatalf("stored rate = %s, want 40.25", v.Rate)
	}
}

func TestUpdateCommission(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo)

	for _, bad := range []string{"-1", "100.5"} {
		if _, err := svc.UpdateCommission(context.Background(), dec(bad)); err == nil {
			t.Fatalf("percentage %s: expected error", bad)
		}
	}

	// Both boundaries are legal.
	for _, ok := range []string{"0", "100"} {
		if _, err := svc.UpdateCommission(context.Background(), dec(ok)); err != nil {
			t.Fatalf("percentage %s: unexpected error: %v", ok, err)
		}
	}

	setting, err := svc.UpdateCommission(context.Background(), dec("12.5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var v model.PlatformFeeValue
	if err := json.Unmarshal(setting.Value, &v); err != nil {
		t.Fatalf("payload unmarshal: %v", err)
	}
	if !v.Percentage.Equal(dec("12.5")) {
		t.Fatalf("stored percentage = %s, want 12.5", v.Percentage)
	}
}
