package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invoscan/internal/domain"
	"invoscan/internal/port"
)

type scanRepo struct {
	db *sqlx.DB
}

// NewScanRepo creates a new PostgreSQL-backed ScanRepository.
func NewScanRepo(db *sqlx.DB) port.ScanRepository {
	return &scanRepo{db: db}
}

func (r *scanRepo) Create(ctx context.Context, scan *domain.Scan) error {
	now := time.Now().UTC()
	scan.CreatedAt = now
	scan.UpdatedAt = now

	query := `INSERT INTO scans
		(id, file_name, original_name, file_type, file_size, content_type,
		 s3_bucket, s3_key, ocr_backend, status, raw_lines, record, scan_error,
		 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		scan.ID, scan.FileName, scan.OriginalName, scan.FileType, scan.FileSize,
		scan.ContentType, scan.S3Bucket, scan.S3Key, scan.OCRBackend, scan.Status,
		scan.RawLines, scan.Record, scan.ScanError, scan.CreatedAt, scan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("scanRepo.Create: %w", err)
	}
	return nil
}

func (r *scanRepo) UpdateResult(ctx context.Context, scan *domain.Scan) error {
	scan.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE scans
		 SET status = $1, raw_lines = $2, record = $3, scan_error = $4, updated_at = $5
		 WHERE id = $6`,
		scan.Status, scan.RawLines, scan.Record, scan.ScanError, scan.UpdatedAt, scan.ID)
	if err != nil {
		return fmt.Errorf("scanRepo.UpdateResult: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *scanRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Scan, error) {
	var scan domain.Scan
	err := r.db.GetContext(ctx, &scan, "SELECT * FROM scans WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanRepo.GetByID: %w", err)
	}
	return &scan, nil
}

func (r *scanRepo) List(ctx context.Context, offset, limit int) ([]domain.Scan, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM scans")
	if err != nil {
		return nil, 0, fmt.Errorf("scanRepo.List count: %w", err)
	}

	var scans []domain.Scan
	err = r.db.SelectContext(ctx, &scans,
		"SELECT * FROM scans ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("scanRepo.List: %w", err)
	}
	return scans, total, nil
}

func (r *scanRepo) ListAll(ctx context.Context) ([]domain.Scan, error) {
	var scans []domain.Scan
	err := r.db.SelectContext(ctx, &scans, "SELECT * FROM scans ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("scanRepo.ListAll: %w", err)
	}
	return scans, nil
}

func (r *scanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM scans WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("scanRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
