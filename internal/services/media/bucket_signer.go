package media

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// BucketSigner presigns GET requests for objects of a single bucket.
type BucketSigner struct {
	client *minio.Client
	bucket string
}

func NewBucketSigner(client *minio.Client, bucket string) *BucketSigner {
	return &BucketSigner{
		client: client,
		bucket: strings.Trim(strings.TrimSpace(bucket), "/"),
	}
}

func (s *BucketSigner) Bucket() string {
	return s.bucket
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *BucketSigner) EnsureBucket(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("s3 client is nil")
	}
	if s.bucket == "" {
		return fmt.Errorf("s3 bucket is empty")
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("make bucket %q: %w", s.bucket, err)
	}
	return nil
}

// PresignGet signs key for ttl. Clients may cache the photo for as long as the link lives.
func (s *BucketSigner) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("s3 client is nil")
	}
	if key == "" {
		return "", ErrValidation
	}
	if ttl <= 0 {
		ttl = defaultPresignTTL
	}

	params := url.Values{}
	params.Set("response-cache-control", "private, max-age="+strconv.Itoa(int(ttl/time.Second)))

	signed, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, params)
	if err != nil {
		return "", fmt.Errorf("presign %s/%s: %w", s.bucket, key, err)
	}
	return signed.String(), nil
}
