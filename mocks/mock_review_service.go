package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"medverify/internal/domain"
)

// MockReviewService is a mock implementation of service.ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) List(ctx context.Context, filter domain.VerificationFilter) ([]domain.VerificationRecord, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.VerificationRecord), args.Int(1), args.Error(2)
}

func (m *MockReviewService) GetByID(ctx context.Context, id uuid.UUID) (*domain.VerificationRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationRecord), args.Error(1)
}

func (m *MockReviewService) Export(ctx context.Context, format domain.ExportFormat, needsReview *bool, w io.Writer) error {
	args := m.Called(ctx, format, needsReview, w)
	return args.Error(0)
}
