package files

import "time"

// GenerateUploadURLRequest represents request for upload URL generation
type GenerateUploadURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder" binding:"required,oneof=photos videos covers"`
	MaxSize     int64  `json:"max_size,omitempty"` // Optional: max file size in bytes
}

// GenerateUploadURLResponse represents response with presigned upload URL
type GenerateUploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	FileKey   string `json:"file_key"`
	PublicURL string `json:"public_url"`
	ExpiresAt int64  `json:"expires_at"` // Unix timestamp
}

// GenerateDownloadURLRequest represents request for download URL generation
type GenerateDownloadURLRequest struct {
	FileKey string `json:"file_key" binding:"required"`
}

// GenerateDownloadURLResponse represents response with presigned download URL
type GenerateDownloadURLResponse struct {
	DownloadURL string `json:"download_url"`
	ExpiresAt   int64  `json:"expires_at"` // Unix timestamp
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// Constants for file operations
const (
	MaxFilenameLength = 255
	MaxImageSize      = 20 * 1024 * 1024  // 20MB
	MaxVideoSize      = 500 * 1024 * 1024 // 500MB
	UploadURLTTL      = 15 * time.Minute
	DownloadURLTTL    = 1 * time.Hour
)

// AllowedContentTypes maps each accepted content type to its size limit.
var AllowedContentTypes = map[string]int64{
	"image/jpeg":      MaxImageSize,
	"image/png":       MaxImageSize,
	"image/gif":       MaxImageSize,
	"image/webp":      MaxImageSize,
	"image/avif":      MaxImageSize,
	"video/mp4":       MaxVideoSize,
	"video/webm":      MaxVideoSize,
	"video/quicktime": MaxVideoSize,
	"application/pdf": MaxImageSize, // resume
}
