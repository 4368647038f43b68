package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Gio27709/dental-market-backend/internal/config"
	"github.com/Gio27709/dental-market-backend/internal/db"
	"github.com/Gio27709/dental-market-backend/internal/model"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.GlobalSetting{}, &model.Category{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	categories := []model.Category{
		{Name: "Restorative materials", Slug: "restorative-materials"},
		{Name: "Endodontics", Slug: "endodontics"},
		{Name: "Orthodontics", Slug: "orthodontics"},
		{Name: "Surgical instruments", Slug: "surgical-instruments"},
		{Name: "Impression materials", Slug: "impression-materials"},
		{Name: "Sterilization", Slug: "sterilization"},
		{Name: "Disposables", Slug: "disposables"},
		{Name: "Equipment", Slug: "equipment"},
	}
	for _, cat := range categories {
		if err := gdb.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&cat).Error; err != nil {
			return fmt.Errorf("seed category %s: %w", cat.Slug, err)
		}
	}
	log.Printf("seeded %d categories", len(categories))

	settings := map[string]interface{}{
		model.SettingKeyBCVRate: model.BCVRateValue{
			Rate:      decimal.NewFromFloat(36.5),
			UpdatedAt: time.Now().UTC(),
		},
		model.SettingKeyPlatformFee: model.PlatformFeeValue{
			Percentage: decimal.NewFromInt(10),
			UpdatedAt:  time.Now().UTC(),
		},
	}
	for key, value := range settings {
		payload, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal setting %s: %w", key, err)
		}
		if err := gdb.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).Create(&model.GlobalSetting{Key: key, Value: payload}).Error; err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}
	log.Printf("seeded default settings")

	return nil
}
