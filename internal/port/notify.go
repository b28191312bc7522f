package port

import (
	"context"

	"medverify/internal/domain"
)

// ReviewNotifier tells human reviewers that a verification needs inspection.
type ReviewNotifier interface {
	NotifyReview(ctx context.Context, rec *domain.VerificationRecord) error
}
