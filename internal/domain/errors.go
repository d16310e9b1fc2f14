package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrInvalidOCRBackend   = errors.New("unknown OCR backend")
	ErrOCRFailed           = errors.New("text recognition failed")
	ErrScanNotExtracted    = errors.New("scan has no stored OCR lines")
)
