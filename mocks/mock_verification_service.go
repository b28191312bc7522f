package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medverify/internal/domain"
	"medverify/internal/service"
)

// MockVerificationService is a mock implementation of service.VerificationService.
type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) Verify(ctx context.Context, input service.VerifyInput) (*domain.VerificationVerdict, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationVerdict), args.Error(1)
}
