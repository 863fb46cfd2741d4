package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// Config holds credentials for the CV bucket. Endpoint is optional and
// switches the client to path-style addressing for S3-compatible providers.
type Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
	URLTTL    time.Duration
}

type cvStore struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	urlTTL  time.Duration
}

// NewCVStore builds the S3-backed CV asset store.
func NewCVStore(ctx context.Context, cfg Config) (domain.CVStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	ttl := cfg.URLTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &cvStore{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		urlTTL:  ttl,
	}, nil
}

// PutProfileCV writes the canonical per-user CV. The key is fixed per
// user, so every upload overwrites the previous one.
func (s *cvStore) PutProfileCV(ctx context.Context, userID string, up *domain.CVUpload) (*domain.CVRef, error) {
	return s.put(ctx, domain.ProfileCVKey(userID), up)
}

// PutApplicationCV writes the immutable per-application snapshot. The
// application ID is freshly minted per submission, so the key is never
// reused and the object is never overwritten.
func (s *cvStore) PutApplicationCV(ctx context.Context, applicationID string, up *domain.CVUpload) (*domain.CVRef, error) {
	return s.put(ctx, domain.ApplicationCVKey(applicationID), up)
}

func (s *cvStore) put(ctx context.Context, key string, up *domain.CVUpload) (*domain.CVRef, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(up.Data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return nil, mapStorageError(err)
	}

	url, err := s.FreshURL(ctx, key)
	if err != nil {
		return nil, err
	}

	return &domain.CVRef{
		URL:        url,
		Name:       up.Filename,
		Key:        key,
		UploadedAt: time.Now(),
	}, nil
}

// FreshURL presigns a short-lived GET. Callers must re-request rather
// than cache the result.
func (s *cvStore) FreshURL(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.urlTTL))
	if err != nil {
		return "", mapStorageError(err)
	}
	return req.URL, nil
}

func mapStorageError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return apperror.Forbidden("storage access denied; check bucket credentials")
		case "NoSuchKey":
			return apperror.NotFound("CV not found in storage")
		}
	}
	return apperror.Unavailable("storage temporarily unavailable", err)
}
