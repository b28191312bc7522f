package handler

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"medverify/internal/domain"
	"medverify/internal/export"
	"medverify/internal/service"
)

// ReviewHandler exposes the verification history and review queue.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// List handles GET /api/v1/verifications
// @Summary List verifications
// @Description Lists stored verification records, newest first.
// @Tags review
// @Produce json
// @Param needs_review query bool false "Only records that need (true) or do not need (false) review"
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.VerificationRecord} "Verification records"
// @Failure 503 {object} ErrorResponseBody "Database unavailable"
// @Router /v1/verifications [get]
func (h *ReviewHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	filter := domain.VerificationFilter{
		NeedsReview: parseOptionalBool(c, "needs_review"),
		Offset:      offset,
		Limit:       limit,
	}

	recs, total, err := h.reviewService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}
	if recs == nil {
		recs = []domain.VerificationRecord{}
	}

	RespondPaginated(c, recs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/verifications/:id
// @Summary Get a verification
// @Tags review
// @Produce json
// @Param id path string true "Verification ID"
// @Success 200 {object} Response{data=domain.VerificationRecord} "Verification record"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Failure 503 {object} ErrorResponseBody "Database unavailable"
// @Router /v1/verifications/{id} [get]
func (h *ReviewHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid verification ID")
		return
	}

	rec, err := h.reviewService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rec)
}

// Export handles GET /api/v1/verifications/export
// @Summary Export the review queue
// @Description Downloads verification records as CSV (UTF-8 with BOM) or XLSX. Defaults to records that need review.
// @Tags review
// @Produce octet-stream
// @Param format query string false "csv or xlsx" default(csv)
// @Param needs_review query bool false "Filter on needs_review" default(true)
// @Success 200 {file} file "Export file"
// @Failure 400 {object} ErrorResponseBody "Invalid format"
// @Failure 503 {object} ErrorResponseBody "Database unavailable"
// @Router /v1/verifications/export [get]
func (h *ReviewHandler) Export(c *gin.Context) {
	format := domain.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(domain.ExportFormatCSV))))
	needsReview := parseOptionalBool(c, "needs_review")
	if _, ok := c.GetQuery("needs_review"); !ok {
		yes := true
		needsReview = &yes
	}

	// Buffer so a failure mid-export still produces a clean error response.
	var buf bytes.Buffer
	if err := h.reviewService.Export(c.Request.Context(), format, needsReview, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("review_queue", format, time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}
