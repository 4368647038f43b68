package repository

import (
	"context"

	"github.com/Gio27709/dental-market-backend/internal/model"
	"gorm.io/gorm"
)

type ProductRepository interface {
	CreateWithVariations(ctx context.Context, product *model.Product, variations []model.ProductVariation) error
	FindByID(ctx context.Context, id uint64) (*model.Product, error)
	ListPublic(ctx context.Context) ([]model.Product, error)
	ListByStore(ctx context.Context, storeUID string) ([]model.Product, error)
	Deactivate(ctx context.Context, id uint64) error
	SetModeration(ctx context.Context, id uint64, status model.ModerationStatus, active bool) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// CreateWithVariations inserts the product and its variations atomically,
// replacing the delete-on-failure cleanup the catalog used to need.
func (r *productRepository) CreateWithVariations(ctx context.Context, product *model.Product, variations []model.ProductVariation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		for i := range variations {
			variations[i].ProductID = product.ID
		}
		if err := tx.Create(&variations).Error; err != nil {
			return err
		}
		product.Variations = variations
		return nil
	})
}

func (r *productRepository) FindByID(ctx context.Context, id uint64) (*model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).
		Preload("Variations").
		First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) ListPublic(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).
		Preload("Variations").
		Where("is_active = ? AND moderation_status = ?", true, model.ModerationStatusApproved).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) ListByStore(ctx context.Context, storeUID string) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).
		Preload("Variations").
		Where("store_uid = ?", storeUID).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Deactivate(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepository) SetModeration(ctx context.Context, id uint64, status model.ModerationStatus, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"moderation_status": status,
			"is_active":         active,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
