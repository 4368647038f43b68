package repository

import (
	"context"
	"errors"

	"github.com/Gio27709/dental-market-backend/internal/model"
	"gorm.io/gorm"
)

// ErrDuplicateFavorite is returned when the user already favorited the
// product; surfaced from the unique index on (user_uid, product_id).
var ErrDuplicateFavorite = errors.New("product already in favorites")

type FavoriteRepository interface {
	List(ctx context.Context, userUID string) ([]model.Favorite, error)
	Exists(ctx context.Context, userUID string, productID uint64) (bool, error)
	Add(ctx context.Context, userUID string, productID uint64) (*model.Favorite, error)
	Remove(ctx context.Context, userUID string, productID uint64) (int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) List(ctx context.Context, userUID string) ([]model.Favorite, error) {
	var list []model.Favorite
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Variations").
		Where("user_uid = ?", userUID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userUID string, productID uint64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("user_uid = ? AND product_id = ?", userUID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepository) Add(ctx context.Context, userUID string, productID uint64) (*model.Favorite, error) {
	fav := model.Favorite{UserUID: userUID, ProductID: productID}
	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateFavorite
		}
		return nil, err
	}
	return &fav, nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userUID string, productID uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_uid = ? AND product_id = ?", userUID, productID).
		Delete(&model.Favorite{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
