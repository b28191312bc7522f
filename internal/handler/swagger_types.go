package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// VerdictResponse documents the verification verdict.
type VerdictResponse struct {
	Expiry      *string `json:"expiry" example:"2026-05-31"`
	Batch       *string `json:"batch" example:"AB1234"`
	QRExpiry    *string `json:"qr_expiry" example:"2026-05-31"`
	Expired     bool    `json:"expired" example:"false"`
	Tampered    bool    `json:"tampered" example:"false"`
	Confidence  float64 `json:"confidence" example:"0.8731"`
	NeedsReview bool    `json:"needs_review" example:"false"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Time   string `json:"time" example:"2026-10-15T09:30:00Z"`
}

// Response wraps a successful response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
