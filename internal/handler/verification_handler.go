package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"medverify/internal/domain"
	"medverify/internal/service"
)

// multipartOverhead is the slack allowed on top of the file size limit for
// multipart boundaries and headers.
const multipartOverhead = 1 << 20

// VerificationHandler handles label verification uploads.
type VerificationHandler struct {
	verificationService service.VerificationService
	maxUploadBytes      int64
}

// NewVerificationHandler creates a new VerificationHandler.
func NewVerificationHandler(verificationService service.VerificationService, maxUploadBytes int64) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService, maxUploadBytes: maxUploadBytes}
}

// Check handles POST /api/ocr-check
// @Summary Verify a label image
// @Description Runs OCR and 2D-code decoding on a medicine label photo and returns the verdict object directly.
// @Description The tamper flag comes from a left/right histogram asymmetry heuristic, not a forensic detector.
// @Tags verification
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Label image (JPEG, PNG or WebP)"
// @Success 200 {object} VerdictResponse "Verification verdict"
// @Failure 400 {object} ErrorResponseBody "Missing, empty or undecodable file"
// @Failure 408 {object} ErrorResponseBody "OCR timed out"
// @Failure 413 {object} ErrorResponseBody "File or image too large"
// @Failure 415 {object} ErrorResponseBody "Unsupported image type"
// @Failure 500 {object} ErrorResponseBody "Internal error"
// @Router /ocr-check [post]
func (h *VerificationHandler) Check(c *gin.Context) {
	verdict, ok := h.verify(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, verdict)
}

// Create handles POST /api/v1/verifications
// @Summary Verify a label image
// @Description Same as /ocr-check, with the verdict wrapped in the standard response envelope.
// @Tags verification
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Label image (JPEG, PNG or WebP)"
// @Success 200 {object} Response{data=VerdictResponse} "Verification verdict"
// @Failure 400 {object} ErrorResponseBody "Missing, empty or undecodable file"
// @Failure 408 {object} ErrorResponseBody "OCR timed out"
// @Failure 413 {object} ErrorResponseBody "File or image too large"
// @Failure 415 {object} ErrorResponseBody "Unsupported image type"
// @Failure 500 {object} ErrorResponseBody "Internal error"
// @Router /v1/verifications [post]
func (h *VerificationHandler) Create(c *gin.Context) {
	verdict, ok := h.verify(c)
	if !ok {
		return
	}
	RespondOK(c, verdict)
}

// verify reads the upload and runs the pipeline. It writes the error
// response itself and reports false on failure.
func (h *VerificationHandler) verify(c *gin.Context) (*domain.VerificationVerdict, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			HandleError(c, domain.ErrFileTooLarge)
			return nil, false
		}
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return nil, false
	}
	defer func() { _ = file.Close() }()

	// One byte past the limit is enough to tell "too large" apart.
	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		HandleError(c, err)
		return nil, false
	}

	verdict, err := h.verificationService.Verify(c.Request.Context(), service.VerifyInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	return verdict, true
}
