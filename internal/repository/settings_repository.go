package repository

import (
	"context"
	"encoding/json"

	"github.com/Gio27709/dental-market-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	List(ctx context.Context) ([]model.GlobalSetting, error)
	FindByKeys(ctx context.Context, keys []string) ([]model.GlobalSetting, error)
	Upsert(ctx context.Context, key string, value json.RawMessage) (*model.GlobalSetting, error)
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) List(ctx context.Context) ([]model.GlobalSetting, error) {
	var settings []model.GlobalSetting
	if err := r.db.WithContext(ctx).Order("key").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingsRepository) FindByKeys(ctx context.Context, keys []string) ([]model.GlobalSetting, error) {
	var settings []model.GlobalSetting
	if err := r.db.WithContext(ctx).
		Where("key IN ?", keys).
		Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, key string, value json.RawMessage) (*model.GlobalSetting, error) {
	setting := model.GlobalSetting{Key: key, Value: value}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": value}),
	}).Create(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}
