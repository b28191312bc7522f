package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medverify/internal/port"
)

type fakeUploader struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	f.input = input
	b, _ := io.ReadAll(input.Body)
	f.body = string(b)
	if f.err != nil {
		return nil, f.err
	}
	return &manager.UploadOutput{}, nil
}

func TestArtifactStore_Save(t *testing.T) {
	up := &fakeUploader{}
	store := newArtifactStore(up, "review-bucket", "review/")

	loc, err := store.Save(context.Background(), port.ArtifactInput{
		Name:        "../../label-20261015-140309.txt",
		Body:        strings.NewReader("EXP 05/2026"),
		ContentType: "text/plain; charset=utf-8",
	})

	require.NoError(t, err)
	assert.Equal(t, "s3://review-bucket/review/label-20261015-140309.txt", loc)
	assert.Equal(t, "review-bucket", *up.input.Bucket)
	assert.Equal(t, "review/label-20261015-140309.txt", *up.input.Key)
	assert.Equal(t, "EXP 05/2026", up.body)
}

func TestArtifactStore_Save_Error(t *testing.T) {
	store := newArtifactStore(&fakeUploader{err: errors.New("access denied")}, "b", "review/")

	_, err := store.Save(context.Background(), port.ArtifactInput{Name: "x.txt", Body: strings.NewReader("")})

	assert.ErrorContains(t, err, "access denied")
}
