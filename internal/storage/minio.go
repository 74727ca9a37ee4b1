package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorage implements Storage using a MinIO (or any S3-compatible) backend.
type MinioStorage struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// MinioConfig holds the settings needed to reach the backend. Region may be
// empty for backends that do not use one.
type MinioConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Region     string
	Bucket     string
	UseSSL     bool
	PublicBase string
}

// NewMinioStorage creates a MinIO client, ensures the bucket exists with a
// public-read policy, and returns a ready-to-use MinioStorage. The client is
// safe for concurrent use by all in-flight requests.
func NewMinioStorage(ctx context.Context, cfg MinioConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Region: cfg.Region,
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		opts := minio.MakeBucketOptions{Region: cfg.Region}
		if err := client.MakeBucket(ctx, cfg.Bucket, opts); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", cfg.Bucket, err)
		}
		if err := client.SetBucketPolicy(ctx, cfg.Bucket, publicReadPolicy(cfg.Bucket)); err != nil {
			return nil, fmt.Errorf("set bucket policy: %w", err)
		}
		slog.Info("storage: created bucket", "bucket", cfg.Bucket)
	}

	return &MinioStorage{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: strings.TrimRight(cfg.PublicBase, "/"),
	}, nil
}

// Put streams reader to the backend under key.
func (s *MinioStorage) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

// Get opens a streaming read for key. The object body is lazy — minio only
// issues the request on first read or Stat — so Stat is called here to
// surface a missing key before anything is written to the client.
func (s *MinioStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("get object %q: %w", key, err)
	}

	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if isNotFound(err) {
			return nil, ObjectInfo{}, ErrNotFound
		}
		return nil, ObjectInfo{}, fmt.Errorf("stat object %q: %w", key, err)
	}

	return obj, ObjectInfo{ContentType: stat.ContentType, Size: stat.Size}, nil
}

// PublicURL returns the browser-accessible URL for the given key.
func (s *MinioStorage) PublicURL(key string) string {
	return s.publicBase + "/" + key
}

// isNotFound reports whether err is the backend's missing-key error, as
// opposed to credentials, throttling, or connectivity failures.
func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey"
}

// publicReadPolicy returns an S3 bucket policy JSON that allows anonymous GET
// on all objects.
func publicReadPolicy(bucket string) string {
	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    "s3:GetObject",
				"Resource":  fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
			},
		},
	}
	b, _ := json.Marshal(policy)
	return string(b)
}
