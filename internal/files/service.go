// Package files issues presigned storage URLs so the admin area can upload
// photos, videos and covers straight to the bucket.
package files

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"folio/internal/storage"

	"github.com/google/uuid"
)

var (
	// ErrInvalidFile wraps every validation failure on an upload request.
	ErrInvalidFile = errors.New("invalid file")
	// ErrStorageUnavailable is returned when no storage backend is configured.
	ErrStorageUnavailable = errors.New("storage service is not available")
)

// Service handles business logic for file operations
type Service struct {
	storage storage.Service
	now     func() time.Time
	newID   func() string
}

// NewService creates a new files service. A nil storage makes every
// operation fail with ErrStorageUnavailable.
func NewService(store storage.Service) *Service {
	return &Service{
		storage: store,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// Available reports whether a storage backend is configured.
func (s *Service) Available() bool {
	return s.storage != nil
}

// ValidateFilename checks if filename is safe and valid
func ValidateFilename(filename string) error {
	if filename == "" {
		return fmt.Errorf("%w: filename cannot be empty", ErrInvalidFile)
	}
	if len(filename) > MaxFilenameLength {
		return fmt.Errorf("%w: filename too long (max %d characters)", ErrInvalidFile, MaxFilenameLength)
	}
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, "/\\") {
		return fmt.Errorf("%w: filename contains invalid characters", ErrInvalidFile)
	}
	if filepath.Ext(filename) == "" {
		return fmt.Errorf("%w: filename must have an extension", ErrInvalidFile)
	}
	return nil
}

// ValidateContentType checks the content type and returns its size limit.
func ValidateContentType(contentType string) (int64, error) {
	if contentType == "" {
		return 0, fmt.Errorf("%w: content type cannot be empty", ErrInvalidFile)
	}
	limit, ok := AllowedContentTypes[contentType]
	if !ok {
		return 0, fmt.Errorf("%w: content type %s is not allowed", ErrInvalidFile, contentType)
	}
	return limit, nil
}

// GenerateUploadURL creates a presigned URL for file upload
func (s *Service) GenerateUploadURL(ctx context.Context, req *GenerateUploadURLRequest) (*GenerateUploadURLResponse, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}
	if err := ValidateFilename(req.Filename); err != nil {
		return nil, err
	}
	limit, err := ValidateContentType(req.ContentType)
	if err != nil {
		return nil, err
	}
	if req.MaxSize > limit {
		return nil, fmt.Errorf("%w: max file size cannot exceed %d bytes", ErrInvalidFile, limit)
	}

	fileKey := fmt.Sprintf("%s/%s-%s", req.Folder, s.newID(), req.Filename)
	if !storage.IsObjectKey(fileKey) {
		return nil, fmt.Errorf("%w: unknown folder %q", ErrInvalidFile, req.Folder)
	}

	uploadURL, err := s.storage.GeneratePresignedUploadURL(ctx, fileKey, req.ContentType, UploadURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	return &GenerateUploadURLResponse{
		UploadURL: uploadURL,
		FileKey:   fileKey,
		PublicURL: s.storage.PublicURL(fileKey),
		ExpiresAt: s.now().Add(UploadURLTTL).Unix(),
	}, nil
}

// GenerateDownloadURL creates a presigned URL for file download
func (s *Service) GenerateDownloadURL(ctx context.Context, req *GenerateDownloadURLRequest) (*GenerateDownloadURLResponse, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}
	if req.FileKey == "" {
		return nil, fmt.Errorf("%w: file key cannot be empty", ErrInvalidFile)
	}

	downloadURL, err := s.storage.GeneratePresignedDownloadURL(ctx, req.FileKey, DownloadURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate download URL: %w", err)
	}

	return &GenerateDownloadURLResponse{
		DownloadURL: downloadURL,
		ExpiresAt:   s.now().Add(DownloadURLTTL).Unix(),
	}, nil
}

// DeleteFile removes a file from storage
func (s *Service) DeleteFile(ctx context.Context, fileKey string) error {
	if s.storage == nil {
		return ErrStorageUnavailable
	}
	if !storage.IsObjectKey(fileKey) {
		return fmt.Errorf("%w: %q is not an uploaded file key", ErrInvalidFile, fileKey)
	}

	if err := s.storage.DeleteFile(ctx, fileKey); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
