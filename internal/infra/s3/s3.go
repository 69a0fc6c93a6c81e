package s3

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
}

const defaultRegion = "us-east-1"

// NewClient creates a minio client for an S3-compatible endpoint. It does not dial.
func NewClient(cfg Config) (*minio.Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	endpoint = strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}

	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = defaultRegion
	}

	// A fixed region lets presigning work without a bucket location round trip.
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	return client, nil
}

// Probe checks that the bucket is reachable with the configured credentials.
func Probe(ctx context.Context, client *minio.Client, bucket string) error {
	if client == nil {
		return fmt.Errorf("s3 client is nil")
	}
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check s3 bucket %q: %w", bucket, err)
	}
	if !exists {
		return fmt.Errorf("s3 bucket %q does not exist", bucket)
	}
	return nil
}
