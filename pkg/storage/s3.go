package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BlobStore re-hosts generated images under a durable public URL.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type S3Config struct {
	BaseEndpoint string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	// PublicBase is the URL prefix for anonymous object reads; defaults to
	// <BaseEndpoint>/<Bucket> for S3-compatible stores.
	PublicBase string
}

type s3Store struct {
	client *s3.Client
	cfg    S3Config
}

func NewS3Store(cfg S3Config) (BlobStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Store{client: client, cfg: cfg}, nil
}

func (s *s3Store) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.publicURL(key), nil
}

func (s *s3Store) publicURL(key string) string {
	base := s.cfg.PublicBase
	if base == "" {
		base = strings.TrimSuffix(s.cfg.BaseEndpoint, "/") + "/" + s.cfg.Bucket
	}
	return strings.TrimSuffix(base, "/") + "/" + key
}
