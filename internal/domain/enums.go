package domain

import "strings"

// AllowedContentTypes lists the image MIME types accepted for verification.
var AllowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

// IsAllowedContentType reports whether ct is an accepted upload content type.
// Parameters such as "; charset=..." are ignored and matching is case-insensitive.
func IsAllowedContentType(ct string) bool {
	if ct == "" {
		return false
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	_, ok := AllowedContentTypes[strings.ToLower(strings.TrimSpace(ct))]
	return ok
}

// DateSource identifies where a date candidate was found.
type DateSource string

const (
	DateSourceText DateSource = "from_text"
	DateSourceCode DateSource = "from_code"
)

// ArtifactBackend selects where review artifacts are written.
type ArtifactBackend string

const (
	ArtifactBackendLocal ArtifactBackend = "local"
	ArtifactBackendS3    ArtifactBackend = "s3"
)

// ExportFormat selects the review queue export encoding.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)
