package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/Gio27709/dental-market-backend/internal/model"
	"github.com/Gio27709/dental-market-backend/internal/repository"
)

const maxLicenseBytes = 5 * 1024 * 1024

var licenseContentTypes = map[string]string{
	"application/pdf": "pdf",
	"image/jpeg":      "jpg",
	"image/png":       "png",
}

var (
	ErrLicenseType     = errors.New("invalid file type, only PDF, JPG, PNG allowed")
	ErrLicenseTooLarge = errors.New("file too large, maximum size is 5MB")
)

// ObjectUploader is the slice of the storage client the services need.
type ObjectUploader interface {
	Upload(ctx context.Context, bucket, objectPath, contentType string, r io.Reader) (string, error)
	UploadPrivate(ctx context.Context, bucket, objectPath, contentType string, r io.Reader) (string, error)
}

type ProfessionalService interface {
	UploadLicense(ctx context.Context, uid, filename, contentType string, size int64, r io.Reader) error
	Status(ctx context.Context, uid string) (*model.ProfessionalProfile, error)
	ListPending(ctx context.Context) ([]model.ProfessionalProfile, error)
	Verify(ctx context.Context, uid string, approve bool, notes string) error
}

type professionalService struct {
	repo     repository.ProfessionalRepository
	uploader ObjectUploader
	bucket   string
}

func NewProfessionalService(repo repository.ProfessionalRepository, uploader ObjectUploader, bucket string) ProfessionalService {
	return &professionalService{repo: repo, uploader: uploader, bucket: bucket}
}

// UploadLicense stores the document in the private licenses bucket and
// resets the profile's review state. The storage path, not a public URL, is
// persisted because the bucket is private.
func (s *professionalService) UploadLicense(ctx context.Context, uid, filename, contentType string, size int64, r io.Reader) error {
	if uid == "" {
		return errors.New("professional is required")
	}
	fallbackExt, ok := licenseContentTypes[contentType]
	if !ok {
		return ErrLicenseType
	}
	if size > maxLicenseBytes {
		return ErrLicenseTooLarge
	}

	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		ext = fallbackExt
	}
	objectPath := fmt.Sprintf("%s/%d_license.%s", uid, time.Now().Unix(), ext)

	path, err := s.uploader.UploadPrivate(ctx, s.bucket, objectPath, contentType, io.LimitReader(r, maxLicenseBytes))
	if err != nil {
		return err
	}
	return s.repo.SaveLicense(ctx, uid, path)
}

func (s *professionalService) Status(ctx context.Context, uid string) (*model.ProfessionalProfile, error) {
	if uid == "" {
		return nil, errors.New("professional is required")
	}
	return s.repo.Get(ctx, uid)
}

func (s *professionalService) ListPending(ctx context.Context) ([]model.ProfessionalProfile, error) {
	return s.repo.ListPendingLicenses(ctx)
}

func (s *professionalService) Verify(ctx context.Context, uid string, approve bool, notes string) error {
	if uid == "" {
		return errors.New("professional is required")
	}
	rows, err := s.repo.SetVerification(ctx, uid, approve, notes)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
