package infra

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	appconfig "github.com/pedroluizchagas/thv/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"
)

// ObjectStorage uploads product photos to an S3-compatible backend (AWS S3,
// MinIO, Supabase Storage, etc.). Objects are served directly from the
// bucket's public URL; the API never proxies image bytes.
type ObjectStorage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewObjectStorage builds the S3 client from configuration. Returns an error
// when credentials are missing so the caller can run without photo support.
func NewObjectStorage(cfg *appconfig.Config) (*ObjectStorage, error) {
	if cfg.StorageAccessKey == "" || cfg.StorageSecretKey == "" {
		return nil, errors.New("storage credentials not configured")
	}
	if cfg.StorageBucket == "" {
		return nil, errors.New("storage bucket not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.StorageRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.StorageUsePathStyle
		if cfg.StorageEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.StorageEndpoint)
		}
	})

	return &ObjectStorage{
		client:    client,
		bucket:    cfg.StorageBucket,
		publicURL: strings.TrimRight(cfg.StoragePublicURL, "/"),
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet. Returns whether
// a bucket was actually created.
func (s *ObjectStorage) EnsureBucket(ctx context.Context) (bool, error) {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return false, nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return false, fmt.Errorf("head bucket: %w", err)
	}

	log.Info().Str("bucket", s.bucket).Msg("creating storage bucket")
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		// Lost a creation race — the bucket is there, which is all we want.
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return false, nil
		}
		return false, fmt.Errorf("create bucket: %w", err)
	}
	return true, nil
}

// Upload stores the object and returns its public URL.
func (s *ObjectStorage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.publicURL + "/" + key, nil
}
