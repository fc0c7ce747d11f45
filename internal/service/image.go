package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pageza/bangladiet/backend/config"
)

const imageURLExpiry = 7 * 24 * time.Hour

// ImageStore keeps uploaded food photos and returns a URL to reach them.
type ImageStore interface {
	Upload(ctx context.Context, userID uuid.UUID, image []byte, filename string) (string, error)
}

// S3PutAPI is the subset of the S3 client used for uploads.
type S3PutAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ImageStore writes images under food-images/<user>/<uuid><ext>.
type S3ImageStore struct {
	client  S3PutAPI
	bucket  string
	sign    func(ctx context.Context, key string) (string, error)
	timeout time.Duration
}

// NewS3ImageStore creates an image store backed by the configured bucket.
// Returned URLs are presigned GET links.
func NewS3ImageStore(s3Config *config.S3Config, timeout time.Duration) *S3ImageStore {
	store := NewS3ImageStoreFromClient(s3Config.Client, s3Config.BucketName, timeout)
	store.sign = func(ctx context.Context, key string) (string, error) {
		return s3Config.GeneratePresignedURL(ctx, key, imageURLExpiry)
	}
	return store
}

// NewS3ImageStoreFromClient creates an image store that returns plain
// bucket URLs.
func NewS3ImageStoreFromClient(client S3PutAPI, bucket string, timeout time.Duration) *S3ImageStore {
	return &S3ImageStore{client: client, bucket: bucket, timeout: timeout}
}

func (s *S3ImageStore) Upload(ctx context.Context, userID uuid.UUID, image []byte, filename string) (string, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	key := fmt.Sprintf("food-images/%s/%s%s", userID, uuid.New(), imageExt(filename))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(image),
		ContentType: aws.String(http.DetectContentType(image)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
	if s.sign != nil {
		if url, err = s.sign(ctx, key); err != nil {
			return "", fmt.Errorf("failed to presign image URL: %w", err)
		}
	}

	log.Printf("[ImageStore] Uploaded %s", key)
	return url, nil
}

func imageExt(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return ext
	default:
		return ".jpg"
	}
}
