package port

import (
	"context"

	"github.com/google/uuid"

	"medverify/internal/domain"
)

// VerificationRepository persists the audit trail of processed uploads.
type VerificationRepository interface {
	Create(ctx context.Context, rec *domain.VerificationRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.VerificationRecord, error)
	List(ctx context.Context, filter domain.VerificationFilter) ([]domain.VerificationRecord, int, error)
	Ping(ctx context.Context) error
}
