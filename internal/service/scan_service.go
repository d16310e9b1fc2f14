package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"invoscan/internal/config"
	"invoscan/internal/domain"
	"invoscan/internal/engine"
	"invoscan/internal/port"
)

// ScanUploadInput is the DTO for scan submissions. Backend optionally
// overrides the configured default OCR backend for this scan.
type ScanUploadInput struct {
	File    multipart.File
	Header  *multipart.FileHeader
	Backend string
}

// ScanService owns the document lifecycle: store the original, run it
// through a line source, extract the invoice record, and persist everything.
type ScanService interface {
	Submit(ctx context.Context, input ScanUploadInput) (*domain.Scan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Scan, error)
	List(ctx context.Context, offset, limit int) ([]domain.Scan, int, error)
	GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reextract(ctx context.Context, id uuid.UUID) (*domain.Scan, error)
}

type scanService struct {
	repo           port.ScanRepository
	storage        port.ObjectStorage
	sources        map[domain.OCRBackend]port.LineSource
	eng            *engine.Engine
	cfg            *config.S3Config
	defaultBackend domain.OCRBackend
}

// NewScanService creates a new ScanService implementation. sources maps each
// selectable OCR backend to its LineSource.
func NewScanService(
	repo port.ScanRepository,
	storage port.ObjectStorage,
	sources map[domain.OCRBackend]port.LineSource,
	eng *engine.Engine,
	cfg *config.S3Config,
	defaultBackend domain.OCRBackend,
) ScanService {
	return &scanService{
		repo:           repo,
		storage:        storage,
		sources:        sources,
		eng:            eng,
		cfg:            cfg,
		defaultBackend: defaultBackend,
	}
}

func (s *scanService) Submit(ctx context.Context, input ScanUploadInput) (*domain.Scan, error) {
	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	backend, err := s.resolveBackend(input.Backend)
	if err != nil {
		return nil, err
	}

	// The document has to flow through both S3 and the OCR backend, so read
	// it fully up front. Size is already bounded by MaxFileSizeMB.
	doc, err := io.ReadAll(input.File)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	// Magic-byte content type detection
	detectedType := http.DetectContentType(doc)
	if _, valid := domain.AllowedContentTypes[detectedType]; !valid {
		return nil, domain.ErrUnsupportedFileType
	}

	scanID := uuid.New()
	contentType := domain.AllowedFileTypes[fileType]
	scan := &domain.Scan{
		ID:           scanID,
		FileName:     scanID.String() + "." + ext,
		OriginalName: input.Header.Filename,
		FileType:     fileType,
		FileSize:     int64(len(doc)),
		ContentType:  contentType,
		S3Bucket:     s.cfg.Bucket,
		S3Key:        fmt.Sprintf("scans/%s/%s", scanID, input.Header.Filename),
		OCRBackend:   backend,
		Status:       domain.ScanStatusPending,
	}

	log.Printf("scanService.Submit: scan %s (%s, %d bytes) via %s",
		scan.ID, contentType, scan.FileSize, backend)

	if err := s.repo.Create(ctx, scan); err != nil {
		return nil, fmt.Errorf("creating scan: %w", err)
	}

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      scan.S3Bucket,
		Key:         scan.S3Key,
		Body:        bytes.NewReader(doc),
		ContentType: contentType,
		Size:        scan.FileSize,
	})
	if err != nil {
		log.Printf("scanService.Submit: S3 upload failed for scan %s: %v", scan.ID, err)
		return nil, domain.ErrUploadFailed
	}

	// Extraction failures are recorded on the scan rather than failing the
	// upload; the original document is already stored and can be replayed
	// through Reextract once the problem is fixed.
	if err := s.extract(ctx, scan, doc); err != nil {
		return nil, err
	}
	return scan, nil
}

// extract runs the scan's document through its OCR backend and the field
// extraction engine, then persists the outcome on the scan row. Recognition
// failures are recorded on the scan and do not return an error; only
// persistence failures do.
func (s *scanService) extract(ctx context.Context, scan *domain.Scan, doc []byte) error {
	source, ok := s.sources[scan.OCRBackend]
	if !ok {
		return s.markFailed(ctx, scan, domain.ErrInvalidOCRBackend)
	}

	lines, err := source.Lines(ctx, doc, scan.ContentType)
	if err != nil {
		return s.markFailed(ctx, scan, err)
	}

	record := s.eng.Extract(lines)

	rawJSON, err := json.Marshal(lines)
	if err != nil {
		return s.markFailed(ctx, scan, fmt.Errorf("encoding raw lines: %w", err))
	}
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return s.markFailed(ctx, scan, fmt.Errorf("encoding record: %w", err))
	}

	scan.Status = domain.ScanStatusExtracted
	scan.RawLines = rawJSON
	scan.Record = recordJSON
	scan.ScanError = ""
	if err := s.repo.UpdateResult(ctx, scan); err != nil {
		return fmt.Errorf("persisting extraction result: %w", err)
	}
	return nil
}

func (s *scanService) markFailed(ctx context.Context, scan *domain.Scan, cause error) error {
	log.Printf("scanService: extraction failed for scan %s: %v", scan.ID, cause)
	scan.Status = domain.ScanStatusFailed
	scan.ScanError = cause.Error()
	if err := s.repo.UpdateResult(ctx, scan); err != nil {
		return fmt.Errorf("persisting failure for scan %s: %w", scan.ID, err)
	}
	return nil
}

func (s *scanService) resolveBackend(override string) (domain.OCRBackend, error) {
	if override == "" {
		return s.defaultBackend, nil
	}
	backend := domain.OCRBackend(override)
	if !domain.ValidOCRBackends[backend] {
		return "", domain.ErrInvalidOCRBackend
	}
	return backend, nil
}

func (s *scanService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Scan, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *scanService) List(ctx context.Context, offset, limit int) ([]domain.Scan, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *scanService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	scan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, scan.S3Bucket, scan.S3Key, s.cfg.PresignExpiry)
}

func (s *scanService) Delete(ctx context.Context, id uuid.UUID) error {
	scan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, scan.S3Bucket, scan.S3Key); err != nil {
		log.Printf("scanService.Delete: failed to delete from S3: %v", err)
		return fmt.Errorf("deleting from storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

// Reextract downloads the stored document and runs extraction again, picking
// up engine or keyword-set changes without a re-upload.
func (s *scanService) Reextract(ctx context.Context, id uuid.UUID) (*domain.Scan, error) {
	scan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	doc, err := s.storage.Download(ctx, scan.S3Bucket, scan.S3Key)
	if err != nil {
		return nil, fmt.Errorf("downloading scan %s: %w", scan.ID, err)
	}

	if err := s.extract(ctx, scan, doc); err != nil {
		return nil, err
	}
	return scan, nil
}
