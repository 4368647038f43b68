package model

import "time"

type ProfessionalProfile struct {
	UID                string     `gorm:"column:uid;primaryKey;size:128"`
	LicensePath        *string    `gorm:"column:license_path;size:512"`
	IsVerified         bool       `gorm:"column:is_verified;not null;default:false"`
	LicenseReviewedAt  *time.Time `gorm:"column:license_reviewed_at"`
	LicenseReviewNotes *string    `gorm:"column:license_review_notes;size:512"`
	CreatedAt          time.Time  `gorm:"autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime"`
}

func (ProfessionalProfile) TableName() string {
	return "professional_profiles"
}
