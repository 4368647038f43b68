package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/Gio27709/dental-market-backend/internal/model"
	"github.com/Gio27709/dental-market-backend/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VariationInput is one variation row of a product-create request.
type VariationInput struct {
	AttributeName  string
	AttributeValue string
	Stock          int
	PriceModifier  decimal.Decimal
	SKU            string
}

type ProductService interface {
	Create(ctx context.Context, storeUID, name, description string, categoryID *uint64, price decimal.Decimal, images []string, variations []VariationInput) (*model.Product, error)
	ListPublic(ctx context.Context) ([]model.Product, error)
	ListByStore(ctx context.Context, storeUID string) ([]model.Product, error)
	Delete(ctx context.Context, id uint64, callerUID string, privileged bool) error
	Moderate(ctx context.Context, id uint64, status model.ModerationStatus) error
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func makeSlug(name string) string {
	base := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	base = strings.Trim(base, "-")
	return fmt.Sprintf("%s-%d", base, rand.Intn(1000))
}

func (s *productService) Create(ctx context.Context, storeUID, name, description string, categoryID *uint64, price decimal.Decimal, images []string, variations []VariationInput) (*model.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 160 {
		return nil, errors.New("invalid product name")
	}
	if price.Sign() < 0 {
		return nil, errors.New("price must not be negative")
	}
	if len(variations) == 0 {
		return nil, errors.New("at least one variation is required")
	}
	for i, v := range variations {
		if strings.TrimSpace(v.AttributeName) == "" || strings.TrimSpace(v.AttributeValue) == "" {
			return nil, fmt.Errorf("variation %d: attribute name and value are required", i)
		}
		if v.Stock < 0 {
			return nil, fmt.Errorf("variation %d: stock must not be negative", i)
		}
	}

	product := &model.Product{
		StoreUID:         storeUID,
		Name:             name,
		Slug:             makeSlug(name),
		Description:      strings.TrimSpace(description),
		CategoryID:       categoryID,
		Price:            price.Round(2),
		Images:           images,
		ModerationStatus: model.ModerationStatusPending,
		IsActive:         false,
	}
	rows := make([]model.ProductVariation, 0, len(variations))
	for _, v := range variations {
		rows = append(rows, model.ProductVariation{
			AttributeName:  strings.TrimSpace(v.AttributeName),
			AttributeValue: strings.TrimSpace(v.AttributeValue),
			Stock:          v.Stock,
			PriceModifier:  v.PriceModifier.Round(2),
			SKU:            strings.TrimSpace(v.SKU),
		})
	}

	if err := s.repo.CreateWithVariations(ctx, product, rows); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) ListPublic(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListPublic(ctx)
}

func (s *productService) ListByStore(ctx context.Context, storeUID string) ([]model.Product, error) {
	return s.repo.ListByStore(ctx, storeUID)
}

// Delete soft-deletes a product. Non-privileged callers must own it.
func (s *productService) Delete(ctx context.Context, id uint64, callerUID string, privileged bool) error {
	if !privileged {
		p, err := s.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if p.StoreUID != callerUID {
			return ErrForbidden
		}
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *productService) Moderate(ctx context.Context, id uint64, status model.ModerationStatus) error {
	if status != model.ModerationStatusApproved && status != model.ModerationStatusRejected {
		return errors.New("moderation status must be approved or rejected")
	}
	active := status == model.ModerationStatusApproved
	if err := s.repo.SetModeration(ctx, id, status, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
