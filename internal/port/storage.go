package port

import (
	"context"
	"io"
)

// ArtifactInput describes a review artifact to store.
type ArtifactInput struct {
	Name        string
	Body        io.Reader
	ContentType string
	Size        int64
}

// ArtifactStore writes review artifacts and returns their location.
type ArtifactStore interface {
	Save(ctx context.Context, input ArtifactInput) (string, error)
}
