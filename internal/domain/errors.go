package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnsupportedMediaType = errors.New("unsupported image type")
	ErrEmptyUpload          = errors.New("empty file")
	ErrFileTooLarge         = errors.New("file too large")
	ErrInvalidImage         = errors.New("invalid image data")
	ErrImageTooLarge        = errors.New("image too large")
	ErrRecognitionTimeout   = errors.New("OCR timed out")
	ErrInvalidExportFormat  = errors.New("invalid export format")
	ErrDatabaseUnavailable  = errors.New("database not configured or unreachable")
)
