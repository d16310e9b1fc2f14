package mocks

import (
	"bytes"
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	args := m.Called(ctx, w)
	return args.Int(0), args.Error(1)
}

func (m *MockExportService) ExportXLSX(ctx context.Context) (*bytes.Buffer, int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*bytes.Buffer), args.Int(1), args.Error(2)
}

func (m *MockExportService) EmailCSV(ctx context.Context, toEmail string) error {
	args := m.Called(ctx, toEmail)
	return args.Error(0)
}
