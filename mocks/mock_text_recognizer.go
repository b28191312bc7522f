package mocks

import (
	"context"
	"image"

	"github.com/stretchr/testify/mock"

	"medverify/internal/domain"
)

// MockTextRecognizer is a mock implementation of port.TextRecognizer.
type MockTextRecognizer struct {
	mock.Mock
}

func (m *MockTextRecognizer) Recognize(ctx context.Context, plane *image.Gray) ([]domain.RecognizedWord, error) {
	args := m.Called(ctx, plane)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecognizedWord), args.Error(1)
}
