package sinks

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/flowbaker/copysmith/pkg/aggregate"
)

// S3Sink uploads artifacts under <prefix>/<run id>/<artifact name>.
type S3Sink struct {
	client s3iface.S3API
	bucket string
	prefix string
}

type S3SinkDependencies struct {
	Client s3iface.S3API
	Bucket string
	Prefix string
}

func NewS3Sink(deps S3SinkDependencies) *S3Sink {
	return &S3Sink{
		client: deps.Client,
		bucket: deps.Bucket,
		prefix: deps.Prefix,
	}
}

// NewS3Client builds a client from the default credential chain.
func NewS3Client(region string) (*s3.S3, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}

	return s3.New(sess), nil
}

func (s *S3Sink) Name() string {
	return "s3"
}

func (s *S3Sink) Store(ctx context.Context, runID string, artifact *aggregate.Artifact) (string, error) {
	key := path.Join(s.prefix, runID, artifact.Name)

	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(artifact.Data),
		ContentType: aws.String(artifact.ContentType),
		Metadata: map[string]*string{
			"run-id": aws.String(runID),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to s3 bucket %s: %w", key, s.bucket, err)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
