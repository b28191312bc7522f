package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medverify/internal/domain"
	"medverify/internal/handler"
	"medverify/mocks"
)

func TestReviewHandler_List(t *testing.T) {
	mockSvc := new(mocks.MockReviewService)
	h := handler.NewReviewHandler(mockSvc)
	yes := true

	mockSvc.On("List", mock.Anything, domain.VerificationFilter{NeedsReview: &yes, Offset: 5, Limit: 10}).
		Return([]domain.VerificationRecord{{ID: uuid.New(), Filename: "a.jpg"}}, 6, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/verifications?needs_review=true&offset=5&limit=10", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 6, resp.Meta.Total)
	mockSvc.AssertExpectations(t)
}

func TestReviewHandler_List_DatabaseUnavailable(t *testing.T) {
	mockSvc := new(mocks.MockReviewService)
	h := handler.NewReviewHandler(mockSvc)

	mockSvc.On("List", mock.Anything, domain.VerificationFilter{Offset: 0, Limit: 20}).
		Return(nil, 0, domain.ErrDatabaseUnavailable)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/verifications", nil)

	h.List(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestReviewHandler_GetByID(t *testing.T) {
	mockSvc := new(mocks.MockReviewService)
	h := handler.NewReviewHandler(mockSvc)
	id := uuid.New()

	mockSvc.On("GetByID", mock.Anything, id).Return(&domain.VerificationRecord{ID: id}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/verifications/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReviewHandler_GetByID_InvalidID(t *testing.T) {
	h := handler.NewReviewHandler(new(mocks.MockReviewService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/verifications/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewHandler_GetByID_NotFound(t *testing.T) {
	mockSvc := new(mocks.MockReviewService)
	h := handler.NewReviewHandler(mockSvc)
	id := uuid.New()

	mockSvc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/verifications/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewHandler_Export_DefaultsToReviewQueueCSV(t *testing.T) {
	mockSvc := new(mocks.MockReviewService)
	h := handler.NewReviewHandler(mockSvc)
	yes := true

	mockSvc.On("Export", mock.Anything, domain.ExportFormatCSV, &yes, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(3).(io.Writer), "ID,Filename\n")
		}).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/verifications/export", nil)

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "review_queue_")
	assert.Equal(t, "ID,Filename\n", w.Body.String())
}

func TestReviewHandler_Export_InvalidFormat(t *testing.T) {
	mockSvc := new(mocks.MockReviewService)
	h := handler.NewReviewHandler(mockSvc)

	mockSvc.On("Export", mock.Anything, domain.ExportFormat("pdf"), mock.Anything, mock.Anything).
		Return(domain.ErrInvalidExportFormat)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/verifications/export?format=PDF", nil)

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthHandler(t *testing.T) {
	h := handler.NewHealthHandler(stubPinger{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/health", nil)
	h.Health(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Time)
}

func TestHealthHandler_Readiness(t *testing.T) {
	ready := handler.NewHealthHandler(stubPinger{})
	down := handler.NewHealthHandler(stubPinger{err: errors.New("refused")})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", nil)
	ready.Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", nil)
	down.Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
