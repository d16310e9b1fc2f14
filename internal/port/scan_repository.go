package port

import (
	"context"

	"github.com/google/uuid"

	"invoscan/internal/domain"
)

// ScanRepository abstracts persistence of scans and their extraction results.
type ScanRepository interface {
	Create(ctx context.Context, scan *domain.Scan) error
	UpdateResult(ctx context.Context, scan *domain.Scan) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Scan, error)
	List(ctx context.Context, offset, limit int) ([]domain.Scan, int, error)
	ListAll(ctx context.Context) ([]domain.Scan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
