package repository

import (
	"context"
	"time"

	"github.com/Gio27709/dental-market-backend/internal/model"
	"gorm.io/gorm"
)

type ProfessionalRepository interface {
	Get(ctx context.Context, uid string) (*model.ProfessionalProfile, error)
	SaveLicense(ctx context.Context, uid, licensePath string) error
	ListPendingLicenses(ctx context.Context) ([]model.ProfessionalProfile, error)
	SetVerification(ctx context.Context, uid string, verified bool, notes string) (int64, error)
}

type professionalRepository struct {
	db *gorm.DB
}

func NewProfessionalRepository(db *gorm.DB) ProfessionalRepository {
	return &professionalRepository{db: db}
}

func (r *professionalRepository) Get(ctx context.Context, uid string) (*model.ProfessionalProfile, error) {
	var p model.ProfessionalProfile
	if err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		FirstOrCreate(&p, &model.ProfessionalProfile{UID: uid}).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveLicense stores the new document path and resets the review state so a
// re-upload always goes back through moderation.
func (r *professionalRepository) SaveLicense(ctx context.Context, uid, licensePath string) error {
	profile := model.ProfessionalProfile{UID: uid}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("uid = ?", uid).FirstOrCreate(&profile).Error; err != nil {
			return err
		}
		return tx.Model(&model.ProfessionalProfile{}).
			Where("uid = ?", uid).
			Updates(map[string]interface{}{
				"license_path":         licensePath,
				"is_verified":          false,
				"license_reviewed_at":  nil,
				"license_review_notes": nil,
			}).Error
	})
}

func (r *professionalRepository) ListPendingLicenses(ctx context.Context) ([]model.ProfessionalProfile, error) {
	var profiles []model.ProfessionalProfile
	if err := r.db.WithContext(ctx).
		Where("license_path IS NOT NULL AND license_reviewed_at IS NULL").
		Order("updated_at").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *professionalRepository) SetVerification(ctx context.Context, uid string, verified bool, notes string) (int64, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&model.ProfessionalProfile{}).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{
			"is_verified":          verified,
			"license_reviewed_at":  now,
			"license_review_notes": notes,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
