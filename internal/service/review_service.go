package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"medverify/internal/domain"
	"medverify/internal/export"
	"medverify/internal/port"
)

// exportPageSize is the page size used while collecting records for an export.
const exportPageSize = 500

// ReviewService defines the review queue contract.
type ReviewService interface {
	List(ctx context.Context, filter domain.VerificationFilter) ([]domain.VerificationRecord, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.VerificationRecord, error)
	Export(ctx context.Context, format domain.ExportFormat, needsReview *bool, w io.Writer) error
}

type reviewService struct {
	repo port.VerificationRepository
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(repo port.VerificationRepository) ReviewService {
	return &reviewService{repo: repo}
}

func (s *reviewService) List(ctx context.Context, filter domain.VerificationFilter) ([]domain.VerificationRecord, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *reviewService) GetByID(ctx context.Context, id uuid.UUID) (*domain.VerificationRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *reviewService) Export(ctx context.Context, format domain.ExportFormat, needsReview *bool, w io.Writer) error {
	var write func(io.Writer, []domain.VerificationRecord) error
	switch format {
	case domain.ExportFormatCSV:
		write = export.WriteCSV
	case domain.ExportFormatXLSX:
		write = export.WriteXLSX
	default:
		return domain.ErrInvalidExportFormat
	}

	var all []domain.VerificationRecord
	for offset := 0; ; offset += exportPageSize {
		page, total, err := s.repo.List(ctx, domain.VerificationFilter{
			NeedsReview: needsReview,
			Offset:      offset,
			Limit:       exportPageSize,
		})
		if err != nil {
			return fmt.Errorf("listing records: %w", err)
		}
		all = append(all, page...)
		if len(page) < exportPageSize || len(all) >= total {
			break
		}
	}

	log.Printf("reviewService.Export: exporting %d records as %s", len(all), format)
	return write(w, all)
}
