package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"invoscan/internal/domain"
	"invoscan/internal/service"
	"invoscan/mocks"
)

func TestReextractWorker_RunAll(t *testing.T) {
	scans := new(mocks.MockScanService)
	worker := service.NewReextractWorker(scans, service.ReextractConfig{Concurrency: 2})

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		scans.On("Reextract", mock.Anything, id).
			Return(&domain.Scan{ID: id, Status: domain.ScanStatusExtracted}, nil)
	}

	completed := worker.Run(context.Background(), ids)
	assert.Equal(t, 3, completed)
	scans.AssertExpectations(t)
}

func TestReextractWorker_CountsOnlyCompleted(t *testing.T) {
	scans := new(mocks.MockScanService)
	worker := service.NewReextractWorker(scans, service.ReextractConfig{Concurrency: 1})

	good, bad := uuid.New(), uuid.New()
	scans.On("Reextract", mock.Anything, good).
		Return(&domain.Scan{ID: good, Status: domain.ScanStatusExtracted}, nil)
	scans.On("Reextract", mock.Anything, bad).
		Return(nil, domain.ErrNotFound)

	completed := worker.Run(context.Background(), []uuid.UUID{good, bad})
	assert.Equal(t, 1, completed)
}

func TestReextractWorker_StopsOnCanceledContext(t *testing.T) {
	scans := new(mocks.MockScanService)
	worker := service.NewReextractWorker(scans, service.ReextractConfig{Concurrency: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	completed := worker.Run(ctx, []uuid.UUID{uuid.New(), uuid.New()})
	assert.Zero(t, completed)
	scans.AssertNotCalled(t, "Reextract", mock.Anything, mock.Anything)
}