package service

import (
	"context"
	"errors"

	"github.com/Gio27709/dental-market-backend/internal/model"
	"github.com/Gio27709/dental-market-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrAlreadyFavorite = errors.New("product is already in favorites")

type FavoriteService interface {
	List(ctx context.Context, userUID string) ([]model.Favorite, error)
	Check(ctx context.Context, userUID string, productID uint64) (bool, error)
	Add(ctx context.Context, userUID string, productID uint64) (*model.Favorite, error)
	Remove(ctx context.Context, userUID string, productID uint64) error
}

type favoriteService struct {
	favRepo     repository.FavoriteRepository
	productRepo repository.ProductRepository
}

func NewFavoriteService(favRepo repository.FavoriteRepository, productRepo repository.ProductRepository) FavoriteService {
	return &favoriteService{favRepo: favRepo, productRepo: productRepo}
}

func (s *favoriteService) List(ctx context.Context, userUID string) ([]model.Favorite, error) {
	return s.favRepo.List(ctx, userUID)
}

func (s *favoriteService) Check(ctx context.Context, userUID string, productID uint64) (bool, error) {
	return s.favRepo.Exists(ctx, userUID, productID)
}

func (s *favoriteService) Add(ctx context.Context, userUID string, productID uint64) (*model.Favorite, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	fav, err := s.favRepo.Add(ctx, userUID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateFavorite) {
			return nil, ErrAlreadyFavorite
		}
		return nil, err
	}
	return fav, nil
}

func (s *favoriteService) Remove(ctx context.Context, userUID string, productID uint64) error {
	rows, err := s.favRepo.Remove(ctx, userUID, productID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
