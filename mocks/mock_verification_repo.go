package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"medverify/internal/domain"
)

// MockVerificationRepo is a mock implementation of port.VerificationRepository.
type MockVerificationRepo struct {
	mock.Mock
}

func (m *MockVerificationRepo) Create(ctx context.Context, rec *domain.VerificationRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockVerificationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.VerificationRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationRecord), args.Error(1)
}

func (m *MockVerificationRepo) List(ctx context.Context, filter domain.VerificationFilter) ([]domain.VerificationRecord, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.VerificationRecord), args.Int(1), args.Error(2)
}

func (m *MockVerificationRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
