package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockLineSource is a mock implementation of port.LineSource.
type MockLineSource struct {
	mock.Mock
	SourceName string
}

func (m *MockLineSource) Lines(ctx context.Context, doc []byte, contentType string) ([]string, error) {
	args := m.Called(ctx, doc, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLineSource) Name() string {
	if m.SourceName != "" {
		return m.SourceName
	}
	return "mock"
}
