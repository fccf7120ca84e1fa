package media

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"social-service/configs"
)

// Storage is the binary-store contract consumed by the upload endpoints.
type Storage interface {
	Put(ctx context.Context, key, contentType string, data io.Reader, size int64) error
	Remove(ctx context.Context, key string) error
}

type S3 struct {
	client *minio.Client
	bucket string
}

func NewS3(cfg *configs.Config) (*S3, error) {
	cl, err := minio.New(strings.TrimPrefix(cfg.S3Endpoint, "http://"), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &S3{client: cl, bucket: cfg.S3Bucket}, nil
}

func (s *S3) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (s *S3) Put(ctx context.Context, key, contentType string, data io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, data, size,
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (s *S3) Remove(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
