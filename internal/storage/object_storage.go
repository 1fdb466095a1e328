package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
)

// ObjectStorage stores uploaded files and returns their public URL
type ObjectStorage interface {
	Put(ctx context.Context, objectPath, contentType string, data []byte) (string, error)
}

// BucketStorage writes objects into a Firebase Storage (Cloud Storage) bucket
type BucketStorage struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewBucketStorage(bucket *gcs.BucketHandle, bucketName string) *BucketStorage {
	return &BucketStorage{bucket: bucket, bucketName: bucketName}
}

// Put uploads data to objectPath and returns the object's public URL
func (s *BucketStorage) Put(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	w := s.bucket.Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000"

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize object %s: %w", objectPath, err)
	}
	return PublicURL(s.bucketName, objectPath), nil
}

// PublicURL is the storage.googleapis.com URL of an object, each path segment escaped
func PublicURL(bucketName, objectPath string) string {
	segments := strings.Split(objectPath, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return "https://storage.googleapis.com/" + bucketName + "/" + strings.Join(segments, "/")
}
