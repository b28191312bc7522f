package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medverify/internal/domain"
	"medverify/internal/service"
	"medverify/mocks"
)

func TestReviewService_GetByID_NotFound(t *testing.T) {
	repo := new(mocks.MockVerificationRepo)
	svc := service.NewReviewService(repo)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	rec, err := svc.GetByID(context.Background(), id)

	assert.Nil(t, rec)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReviewService_List(t *testing.T) {
	repo := new(mocks.MockVerificationRepo)
	svc := service.NewReviewService(repo)
	yes := true
	filter := domain.VerificationFilter{NeedsReview: &yes, Offset: 0, Limit: 20}

	repo.On("List", mock.Anything, filter).Return([]domain.VerificationRecord{{ID: uuid.New()}}, 1, nil)

	recs, total, err := svc.List(context.Background(), filter)

	require.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, 1, total)
}

func TestReviewService_Export_CSV(t *testing.T) {
	repo := new(mocks.MockVerificationRepo)
	svc := service.NewReviewService(repo)
	yes := true

	repo.On("List", mock.Anything, domain.VerificationFilter{NeedsReview: &yes, Offset: 0, Limit: 500}).
		Return([]domain.VerificationRecord{{ID: uuid.New(), Filename: "a.jpg"}, {ID: uuid.New(), Filename: "b.jpg"}}, 2, nil)

	var buf bytes.Buffer
	err := svc.Export(context.Background(), domain.ExportFormatCSV, &yes, &buf)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "a.jpg")
	assert.Contains(t, buf.String(), "b.jpg")
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestReviewService_Export_Paginates(t *testing.T) {
	repo := new(mocks.MockVerificationRepo)
	svc := service.NewReviewService(repo)

	first := make([]domain.VerificationRecord, 500)
	for i := range first {
		first[i] = domain.VerificationRecord{ID: uuid.New()}
	}
	repo.On("List", mock.Anything, domain.VerificationFilter{Offset: 0, Limit: 500}).Return(first, 501, nil)
	repo.On("List", mock.Anything, domain.VerificationFilter{Offset: 500, Limit: 500}).
		Return([]domain.VerificationRecord{{ID: uuid.New(), Filename: "last.jpg"}}, 501, nil)

	var buf bytes.Buffer
	err := svc.Export(context.Background(), domain.ExportFormatXLSX, nil, &buf)

	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
	repo.AssertExpectations(t)
}

func TestReviewService_Export_InvalidFormat(t *testing.T) {
	repo := new(mocks.MockVerificationRepo)
	svc := service.NewReviewService(repo)

	err := svc.Export(context.Background(), domain.ExportFormat("pdf"), nil, &bytes.Buffer{})

	assert.ErrorIs(t, err, domain.ErrInvalidExportFormat)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
