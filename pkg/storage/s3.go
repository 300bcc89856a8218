package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignedUpload is what the client needs to upload a file directly to
// object storage and reference it afterwards.
type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expires_in"`
}

// Uploader hands out presigned PUT URLs for media uploads
type Uploader interface {
	PresignPut(ctx context.Context, key, contentType string) (*PresignedUpload, error)
}

// S3Config holds the connection settings for an S3-compatible bucket
type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // optional, for S3-compatible stores
}

// S3Uploader implements Uploader against S3 or any S3-compatible store
type S3Uploader struct {
	presign *s3.PresignClient
	cfg     S3Config
	expiry  time.Duration
}

// NewS3Uploader builds the S3 client from static credentials
func NewS3Uploader(cfg S3Config) *S3Uploader {
	opts := s3.Options{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	client := s3.New(opts)

	return &S3Uploader{
		presign: s3.NewPresignClient(client),
		cfg:     cfg,
		expiry:  15 * time.Minute,
	}
}

// PresignPut returns a presigned PUT URL for the given object key
func (u *S3Uploader) PresignPut(ctx context.Context, key, contentType string) (*PresignedUpload, error) {
	req, err := u.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(u.expiry))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	fileURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
	if u.cfg.Endpoint != "" {
		fileURL = fmt.Sprintf("%s/%s/%s", u.cfg.Endpoint, u.cfg.Bucket, key)
	}

	return &PresignedUpload{
		UploadURL: req.URL,
		FileURL:   fileURL,
		Key:       key,
		ExpiresIn: int(u.expiry.Seconds()),
	}, nil
}
