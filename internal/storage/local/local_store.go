// Package local writes review artifacts to a directory on the local disk.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"medverify/internal/port"
)

type artifactStore struct {
	dir string
}

// NewArtifactStore creates a filesystem ArtifactStore rooted at dir. The
// directory is created on first write.
func NewArtifactStore(dir string) port.ArtifactStore {
	return &artifactStore{dir: dir}
}

// Save writes the artifact to dir/<base name> and returns the file path.
// Directory components in the name are discarded.
func (s *artifactStore) Save(ctx context.Context, input port.ArtifactInput) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating artifact dir: %w", err)
	}

	dst := filepath.Join(s.dir, filepath.Base(input.Name))
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("creating artifact: %w", err)
	}
	if _, err := io.Copy(f, input.Body); err != nil {
		f.Close()
		return "", fmt.Errorf("writing artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing artifact: %w", err)
	}
	return dst, nil
}
