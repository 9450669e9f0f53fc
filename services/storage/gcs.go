package storage

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/rashinkp/byway-sub000/config"
)

// GCSStorage uploads and deletes artifacts in a Google Cloud Storage bucket
// and hands back durable public URLs.
type GCSStorage struct {
	client *storage.Client
	bucket string
}

// Storage is the global storage gateway, set by Connect
var Storage *GCSStorage

// Connect creates the GCS client from application config. Called once at
// startup, after config.LoadConfig.
func Connect() {
	ctx := context.Background()

	var opts []option.ClientOption
	if config.AppConfig.GCSCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.AppConfig.GCSCredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}

	Storage = &GCSStorage{
		client: client,
		bucket: config.AppConfig.GCSBucketName,
	}
}

// UploadFile writes data under <folder>/<filename> and returns the object's
// public URL.
func (s *GCSStorage) UploadFile(ctx context.Context, data []byte, filename, contentType, folder string, metadata map[string]string) (string, error) {
	key := filename
	if folder != "" {
		key = folder + "/" + filename
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = metadata
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer for %s: %w", key, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key), nil
}

// DeleteFile removes the object a previously returned URL points at.
func (s *GCSStorage) DeleteFile(ctx context.Context, url string) error {
	key, err := s.objectKey(url)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.client.Bucket(s.bucket).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// objectKey extracts the object key from a public URL for this bucket.
func (s *GCSStorage) objectKey(url string) (string, error) {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return "", fmt.Errorf("url %q does not belong to bucket %s", url, s.bucket)
	}
	return strings.TrimPrefix(url, prefix), nil
}
