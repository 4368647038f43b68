package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// Uploader wraps the GCS client for product images (public, token URL) and
// license documents (private, path only).
type Uploader struct {
	client *gcs.Client
}

func New(ctx context.Context, credentialsFile string) (*Uploader, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Uploader{client: client}, nil
}

// Upload writes the object with a download token and returns a public URL.
func (u *Uploader) Upload(ctx context.Context, bucket, objectPath, contentType string, r io.Reader) (string, error) {
	token := uuid.NewString()
	w := u.client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	escapedPath := url.PathEscape(objectPath)
	publicURL := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket, escapedPath, token)
	return publicURL, nil
}

// UploadPrivate writes the object without a download token and returns its
// storage path. Used for the private licenses bucket.
func (u *Uploader) UploadPrivate(ctx context.Context, bucket, objectPath, contentType string, r io.Reader) (string, error) {
	w := u.client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return objectPath, nil
}

func (u *Uploader) Close() error {
	return u.client.Close()
}
