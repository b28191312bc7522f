package noop

import (
	"context"
	"log"

	"medverify/internal/domain"
	"medverify/internal/port"
)

type noopNotifier struct {
	reviewURL string
}

// NewNoopNotifier creates a no-op ReviewNotifier that logs review links to stdout.
func NewNoopNotifier(reviewURL string) port.ReviewNotifier {
	return &noopNotifier{reviewURL: reviewURL}
}

func (n *noopNotifier) NotifyReview(_ context.Context, rec *domain.VerificationRecord) error {
	log.Printf("[NOOP NOTIFY] Review needed for %s (%s): %s?id=%s", rec.Filename, rec.ID, n.reviewURL, rec.ID)
	return nil
}
