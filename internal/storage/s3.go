package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store keeps images in an S3 bucket under a fixed key prefix while
// returning the same relative reference paths the local backend does, so
// switching backends does not invalidate stored references.
type S3Store struct {
	client     *s3.Client
	bucket     string
	keyPrefix  string
	publicPath string
}

func NewS3Store(ctx context.Context, bucket, region, keyPrefix, publicPath string) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Store{
		client:     s3.NewFromConfig(awsCfg),
		bucket:     bucket,
		keyPrefix:  strings.Trim(keyPrefix, "/"),
		publicPath: publicPath,
	}, nil
}

func (s *S3Store) Save(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	key := s.keyPrefix + "/" + path.Base(filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return path.Join(s.publicPath, path.Base(filename)), nil
}

func (s *S3Store) Delete(ctx context.Context, refPath string) error {
	if refPath == "" {
		return nil
	}
	key := s.keyPrefix + "/" + path.Base(refPath)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}
