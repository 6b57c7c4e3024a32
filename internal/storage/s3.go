package storage

import (
	"bytes"
	"context"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/courtside/racketdb/internal/config"
)

// s3Client stores objects in an S3-compatible bucket (Cloudflare R2, MinIO,
// AWS).  Objects are served from a public base URL rather than the API
// endpoint, so the bucket is expected to sit behind a CDN or custom domain.
type s3Client struct {
	mc        *minio.Client
	bucket    string
	publicURL string
}

func newS3Client(cfg config.StorageConfig) (Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		// R2 only supports the us-east-1 alias
		Region: "auto",
	})
	if err != nil {
		return nil, err
	}
	return &s3Client{
		mc:        mc,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

func (s *s3Client) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.mc.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType:  contentType,
			CacheControl: "public, max-age=31536000, immutable",
		})
	if err != nil {
		return "", err
	}
	return s.publicURL + "/" + key, nil
}

func (s *s3Client) Delete(ctx context.Context, key string) error {
	return s.mc.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
