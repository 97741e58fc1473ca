// Package storage provides object storage implementations for uploaded files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/raqueto/backend/internal/application/upload"
	infraconfig "github.com/raqueto/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure S3FileStore implements FileStore
var _ upload.FileStore = (*S3FileStore)(nil)

// S3FileStore implements FileStore using AWS S3 SDK v2.
// It works against AWS S3 and S3-compatible endpoints such as MinIO.
type S3FileStore struct {
	client  *s3.Client
	bucket  string
	fileURL string
	logger  *zap.Logger
}

// S3FileStoreOption is a functional option for configuring S3FileStore
type S3FileStoreOption func(*S3FileStore)

// WithLogger sets a custom logger for S3FileStore
func WithLogger(logger *zap.Logger) S3FileStoreOption {
	return func(s *S3FileStore) {
		s.logger = logger
	}
}

// NewS3FileStore creates a new S3FileStore from configuration
func NewS3FileStore(ctx context.Context, cfg *infraconfig.S3Config, opts ...S3FileStoreOption) (*S3FileStore, error) {
	if cfg == nil {
		return nil, errors.New("s3 configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("s3 access key id and secret access key are required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint != "" {
		if _, err := url.ParseRequestURI(endpoint); err != nil {
			return nil, fmt.Errorf("invalid s3 endpoint: %w", err)
		}
	}

	// Custom endpoints (MinIO and friends) need path-style addressing
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	fileURL, err := publicBaseURL(cfg, region, endpoint)
	if err != nil {
		return nil, err
	}

	store := &S3FileStore{
		client:  client,
		bucket:  cfg.Bucket,
		fileURL: fileURL,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// publicBaseURL picks the prefix prepended to object keys in returned URLs.
// S3_FILE_URL wins; otherwise the bucket URL is derived from the endpoint or region.
func publicBaseURL(cfg *infraconfig.S3Config, region, endpoint string) (string, error) {
	if cfg.FileURL != "" {
		if _, err := url.ParseRequestURI(cfg.FileURL); err != nil {
			return "", fmt.Errorf("invalid s3 file url: %w", err)
		}
		return strings.TrimRight(cfg.FileURL, "/"), nil
	}
	if endpoint != "" {
		return strings.TrimRight(endpoint, "/") + "/" + cfg.Bucket, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region), nil
}

// EnsureBucket creates the bucket if it doesn't exist.
// Only useful against local S3-compatible servers; call it during startup.
func (s *S3FileStore) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Upload writes the body under a new unique key and returns its public URL
func (s *S3FileStore) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (*upload.StoredFile, error) {
	key, err := ObjectKey(filename)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	s.logger.Debug("Object uploaded", zap.String("key", key), zap.Int64("size", size))
	return &upload.StoredFile{ID: key, URL: s.fileURL + "/" + key}, nil
}

// Delete removes an object. S3 reports success for missing keys.
func (s *S3FileStore) Delete(ctx context.Context, fileID string) error {
	if fileID == "" {
		return errors.New("file id is required")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fileID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// ObjectKey builds a collision-free key from an uploaded filename:
// the sanitized base name, a nanoid, and the original extension.
func ObjectKey(filename string) (string, error) {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	ext := strings.ToLower(path.Ext(base))
	name := sanitizeKeyPart(strings.TrimSuffix(base, path.Ext(base)))

	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate object key: %w", err)
	}
	if name == "" {
		return id + sanitizeKeyPart(ext), nil
	}
	return name + "-" + id + sanitizeKeyPart(ext), nil
}

func sanitizeKeyPart(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	return b.String()
}
