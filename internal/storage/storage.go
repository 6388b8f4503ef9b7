// Package storage provides S3-compatible object storage for uploaded media.
// It handles presigned URLs for direct browser uploads and downloads, object
// deletion and storage health checks.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const signingRegion = "us-east-1"

// ErrEmptyKey is returned for operations on an empty object key.
var ErrEmptyKey = errors.New("file key cannot be empty")

// Service defines the interface for storage operations
type Service interface {
	// GeneratePresignedUploadURL creates a time-limited presigned URL for uploading a file
	GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, ttl time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a time-limited presigned URL for downloading a file
	GeneratePresignedDownloadURL(ctx context.Context, key string, ttl time.Duration) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(ctx context.Context, key string) error

	// PublicURL is the unsigned URL of an object, for publicly readable buckets
	PublicURL(key string) string

	// EnsureBucketExists creates the bucket if it doesn't exist
	EnsureBucketExists(ctx context.Context) error

	// Health checks if the storage service is accessible
	Health(ctx context.Context) error
}

// Config describes the S3 or MinIO endpoint. PublicEndpoint is the host
// browsers reach; it defaults to Endpoint.
type Config struct {
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
	UseSSL         bool
}

func (c Config) validate() error {
	switch {
	case c.Endpoint == "":
		return errors.New("S3_ENDPOINT is required")
	case c.AccessKey == "":
		return errors.New("S3_ACCESS_KEY is required")
	case c.SecretKey == "":
		return errors.New("S3_SECRET_KEY is required")
	case c.Bucket == "":
		return errors.New("S3_BUCKET_NAME is required")
	}
	return nil
}

func (c Config) url(host string) string {
	if c.UseSSL {
		return "https://" + host
	}
	return "http://" + host
}

type service struct {
	client          *s3.Client
	publicPresigner *s3.PresignClient
	bucketName      string
	publicBaseURL   string
}

// New creates a storage service for an S3-compatible endpoint.
func New(ctx context.Context, cfg Config) (Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.PublicEndpoint == "" {
		cfg.PublicEndpoint = cfg.Endpoint
	}
	slog.Info("Storage endpoints configured",
		"endpoint", cfg.Endpoint,
		"public_endpoint", cfg.PublicEndpoint,
		"bucket", cfg.Bucket,
	)

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(signingRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Path-style addressing is required for MinIO.
	newClient := func(endpoint string) *s3.Client {
		return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.url(endpoint))
			o.UsePathStyle = true
		})
	}

	client := newClient(cfg.Endpoint)
	publicClient := client
	if cfg.PublicEndpoint != cfg.Endpoint {
		publicClient = newClient(cfg.PublicEndpoint)
	}

	s := &service{
		client:          client,
		publicPresigner: s3.NewPresignClient(publicClient),
		bucketName:      cfg.Bucket,
		publicBaseURL:   strings.TrimRight(cfg.url(cfg.PublicEndpoint), "/") + "/" + cfg.Bucket,
	}

	if err := s.EnsureBucketExists(ctx); err != nil {
		slog.Warn("Failed to ensure bucket exists", "bucket", cfg.Bucket, "error", err)
	}

	return s, nil
}

// EnsureBucketExists creates the bucket if it doesn't already exist
func (s *service) EnsureBucketExists(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	})
	if err == nil {
		return nil
	}

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucketName),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	slog.Info("Created S3 bucket", "bucket", s.bucketName)
	return nil
}

// GeneratePresignedUploadURL creates a presigned URL for uploading
func (s *service) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	if contentType == "" {
		return "", fmt.Errorf("content type cannot be empty")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("TTL must be positive")
	}

	request, err := s.publicPresigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned upload URL for key %s: %w", key, err)
	}

	return request.URL, nil
}

// GeneratePresignedDownloadURL creates a presigned URL for downloading
func (s *service) GeneratePresignedDownloadURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	if ttl <= 0 {
		return "", fmt.Errorf("TTL must be positive")
	}

	request, err := s.publicPresigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL for key %s: %w", key, err)
	}

	return request.URL, nil
}

// DeleteFile removes a file from storage
func (s *service) DeleteFile(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file %s: %w", key, err)
	}

	return nil
}

func (s *service) PublicURL(key string) string {
	return s.publicBaseURL + "/" + strings.TrimLeft(key, "/")
}

// Health checks if the storage service is accessible
func (s *service) Health(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	})
	if err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	return nil
}
