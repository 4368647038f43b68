package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gio27709/dental-market-backend/internal/model"
	"gorm.io/gorm"
)

type fakeProductRepo struct {
	products      map[uint64]*model.Product
	created       *model.Product
	deactivated   []uint64
	moderated     map[uint64]model.ModerationStatus
	moderatedFlag map[uint64]bool
}

func (f *fakeProductRepo) CreateWithVariations(_ context.Context, product *model.Product, variations []model.ProductVariation) error {
	product.ID = 1
	product.Variations = variations
	f.created = product
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uint64) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) ListPublic(_ context.Context) ([]model.Product, error) { return nil, nil }

func (f *fakeProductRepo) ListByStore(_ context.Context, _ string) ([]model.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Deactivate(_ context.Context, id uint64) error {
	if _, ok := f.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.deactivated = append(f.deactivated, id)
	return nil
}

func (f *fakeProductRepo) SetModeration(_ context.Context, id uint64, status model.ModerationStatus, active bool) error {
	if _, ok := f.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	if f.moderated == nil {
		f.moderated = map[uint64]model.ModerationStatus{}
		f.moderatedFlag = map[uint64]bool{}
	}
	f.moderated[id] = status
	f.moderatedFlag[id] = active
	return nil
}

func TestProductCreate(t *testing.T) {
	oneVariation := []VariationInput{{AttributeName: "Size", AttributeValue: "500g", Stock: 10}}

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name       string
			prodName   string
			price      string
			variations []VariationInput
		}{
			{"empty name", "", "10", oneVariation},
			{"blank name", "   ", "10", oneVariation},
			{"name too long", strings.Repeat("x", 161), "10", oneVariation},
			{"negative price", "Composite", "-1", oneVariation},
			{"no variations", "Composite", "10", nil},
			{"blank attribute", "Composite", "10", []VariationInput{{AttributeName: " ", AttributeValue: "A", Stock: 1}}},
			{"negative stock", "Composite", "10", []VariationInput{{AttributeName: "Size", AttributeValue: "A", Stock: -1}}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := &fakeProductRepo{}
				svc := NewProductService(repo)
				_, err := svc.Create(context.Background(), "store-1", tt.prodName, "", nil, dec(tt.price), nil, tt.variations)
				if err == nil {
					t.Fatal("expected validation error")
				}
				if repo.created != nil {
					t.Fatal("nothing should be persisted on validation failure")
				}
			})
		}
	})

	t.Run("new products await moderation", func(t *testing.T) {
		repo := &fakeProductRepo{}
		svc := NewProductService(repo)
		p, err := svc.Create(context.Background(), "store-1", "Light-Cure Composite", "A2 shade", nil, dec("24.999"), nil, oneVariation)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModerationStatus != model.ModerationStatusPending || p.IsActive {
			t.Fatalf("new product must be pending and inactive, got %s/%v", p.ModerationStatus, p.IsActive)
		}
		if !p.Price.Equal(dec("25.00")) {
			t.Fatalf("price = %s, want 25.00", p.Price)
		}
		if !strings.HasPrefix(p.Slug, "light-cure-composite-") {
			t.Fatalf("slug = %q", p.Slug)
		}
	})
}

func TestProductDelete(t *testing.T) {
	newRepo := func() *fakeProductRepo {
		return &fakeProductRepo{products: map[uint64]*model.Product{
			7: {ID: 7, StoreUID: "store-1", Name: "Scaler"},
		}}
	}

	t.Run("owner deletes own product", func(t *testing.T) {
		repo := newRepo()
		if err := NewProductService(repo).Delete(context.Background(), 7, "store-1", false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.deactivated) != 1 || repo.deactivated[0] != 7 {
			t.Fatalf("deactivated = %v", repo.deactivated)
		}
	})

	t.Run("other store is forbidden", func(t *testing.T) {
		repo := newRepo()
		err := NewProductService(repo).Delete(context.Background(), 7, "store-2", false)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
		if len(repo.deactivated) != 0 {
			t.Fatal("product must not be deactivated")
		}
	})

	t.Run("privileged caller skips ownership", func(t *testing.T) {
		repo := newRepo()
		if err := NewProductService(repo).Delete(context.Background(), 7, "admin-1", true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing product", func(t *testing.T) {
		err := NewProductService(newRepo()).Delete(context.Background(), 99, "store-1", false)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestProductModerate(t *testing.T) {
	newRepo := func() *fakeProductRepo {
		return &fakeProductRepo{products: map[uint64]*model.Product{
			7: {ID: 7, StoreUID: "store-1"},
		}}
	}

	t.Run("approve activates", func(t *testing.T) {
		repo := newRepo()
		if err := NewProductService(repo).Moderate(context.Background(), 7, model.ModerationStatusApproved); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.moderated[7] != model.ModerationStatusApproved || !repo.moderatedFlag[7] {
			t.Fatalf("moderation = %s active=%v", repo.moderated[7], repo.moderatedFlag[7])
		}
	})

	t.Run("reject deactivates", func(t *testing.T) {
		repo := newRepo()
		if err := NewProductService(repo).Moderate(context.Background(), 7, model.ModerationStatusRejected); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.moderatedFlag[7] {
			t.Fatal("rejected product must not be active")
		}
	})

	t.Run("pending is not a reviewer decision", func(t *testing.T) {
		if err := NewProductService(newRepo()).Moderate(context.Background(), 7, model.ModerationStatusPending); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("missing product", func(t *testing.T) {
		err := NewProductService(newRepo()).Moderate(context.Background(), 99, model.ModerationStatusApproved)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}
