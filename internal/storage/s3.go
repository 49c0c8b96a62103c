package storage

import (
	"alcyxob/loadx/internal/config"
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const photoKeyPrefix = "photos"

// objectPutter is the part of *s3.Client the photo storage needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3PhotoStorage implements PhotoEncoder by uploading the image to an S3-compatible bucket
// and returning the object's URL as the handle.
type s3PhotoStorage struct {
	client     objectPutter
	bucketName string
	baseURL    string
	maxBytes   int64
}

// NewS3PhotoStorage creates a PhotoEncoder backed by the configured bucket.
func NewS3PhotoStorage(ctx context.Context, cfg config.S3Config, maxBytes int64) (PhotoEncoder, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("s3 bucket name is required")
	}

	// Custom resolver for S3-compatible endpoints (like MinIO, DigitalOcean Spaces)
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           cfg.Endpoint,
				SigningRegion: cfg.Region,
			}, nil
		}
		// Fallback to default AWS endpoint resolution if no custom endpoint is set
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(ctx,
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsCfg.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	// Force path-style addressing required by most S3-compatible services (like MinIO)
	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	log.WithFields(log.Fields{
		"endpoint": cfg.Endpoint,
		"bucket":   cfg.BucketName,
	}).Info("S3 photo storage initialized")

	return newS3PhotoStorage(s3Client, cfg, maxBytes), nil
}

func newS3PhotoStorage(client objectPutter, cfg config.S3Config, maxBytes int64) *s3PhotoStorage {
	return &s3PhotoStorage{
		client:     client,
		bucketName: cfg.BucketName,
		baseURL:    objectBaseURL(cfg),
		maxBytes:   maxBytes,
	}
}

// objectBaseURL is the path-style URL prefix objects of the bucket are served from.
func objectBaseURL(cfg config.S3Config) string {
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.BucketName
	}
	return fmt.Sprintf("https://s3.%s.amazonaws.com/%s", cfg.Region, cfg.BucketName)
}

// Encode uploads the image under a fresh key and returns its URL.
func (s *s3PhotoStorage) Encode(ctx context.Context, image []byte) (string, error) {
	mime, err := detectImage(image, s.maxBytes)
	if err != nil {
		return "", err
	}

	objectKey := path.Join(photoKeyPrefix, uuid.NewString()+mime.Extension())
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucketName),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(image),
		ContentType:   aws.String(mime.String()),
		ContentLength: aws.Int64(int64(len(image))),
	})
	if err != nil {
		log.Errorf("failed to upload photo '%s' to bucket '%s': %s", objectKey, s.bucketName, err)
		return "", fmt.Errorf("upload photo: %w", err)
	}

	log.Debugf("uploaded photo '%s' to bucket '%s'", objectKey, s.bucketName)
	return s.baseURL + "/" + objectKey, nil
}
