package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// Uploader writes image blobs to a GCS bucket and hands back a public
// download URL. A nil *Uploader is valid and means uploads are disabled.
type Uploader struct {
	client *gcs.Client
	bucket string
}

func NewUploader(ctx context.Context, bucket string) (*Uploader, error) {
	if bucket == "" {
		return nil, nil
	}
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &Uploader{client: client, bucket: bucket}, nil
}

func (u *Uploader) Enabled() bool {
	return u != nil
}

func (u *Uploader) Upload(ctx context.Context, dir, filename, contentType string, data []byte) (string, error) {
	token := uuid.New().String()
	objectPath := path.Join(dir, token+"-"+filename)

	obj := u.client.Bucket(u.bucket).Object(objectPath)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	escaped := url.PathEscape(objectPath)
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s", u.bucket, escaped, token), nil
}

func (u *Uploader) Close() error {
	if u == nil {
		return nil
	}
	return u.client.Close()
}
