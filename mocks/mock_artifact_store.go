package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medverify/internal/port"
)

// MockArtifactStore is a mock implementation of port.ArtifactStore.
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Save(ctx context.Context, input port.ArtifactInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}
