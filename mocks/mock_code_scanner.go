package mocks

import (
	"context"
	"image"

	"github.com/stretchr/testify/mock"

	"medverify/internal/domain"
)

// MockCodeScanner is a mock implementation of port.CodeScanner.
type MockCodeScanner struct {
	mock.Mock
}

func (m *MockCodeScanner) Scan(ctx context.Context, plane *image.Gray) (domain.CodePayload, error) {
	args := m.Called(ctx, plane)
	return args.Get(0).(domain.CodePayload), args.Error(1)
}
