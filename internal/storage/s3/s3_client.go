package s3

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"medverify/internal/config"
	"medverify/internal/port"
)

// uploader is the subset of manager.Uploader used here.
type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type artifactStore struct {
	uploader uploader
	bucket   string
	prefix   string
}

// NewArtifactStore creates an S3-backed ArtifactStore writing review
// artifacts under prefix in the configured bucket.
func NewArtifactStore(cfg *config.S3Config, prefix string) (port.ArtifactStore, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return newArtifactStore(manager.NewUploader(client), cfg.Bucket, prefix), nil
}

func newArtifactStore(u uploader, bucket, prefix string) *artifactStore {
	return &artifactStore{uploader: u, bucket: bucket, prefix: prefix}
}

// Save uploads the artifact and returns its s3:// location.
func (s *artifactStore) Save(ctx context.Context, input port.ArtifactInput) (string, error) {
	key := path.Join(s.prefix, path.Base(input.Name))
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        input.Body,
		ContentType: aws.String(input.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
