package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medverify/internal/domain"
)

// MockReviewNotifier is a mock implementation of port.ReviewNotifier.
type MockReviewNotifier struct {
	mock.Mock
}

func (m *MockReviewNotifier) NotifyReview(ctx context.Context, rec *domain.VerificationRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
