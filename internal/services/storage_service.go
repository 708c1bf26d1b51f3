// internal/services/storage_service.go
package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/xpbeats/xpbeats-backend/internal/config"
)

// StorageService turns stored asset URLs into time-limited presigned links
// when the assets live in our S3 bucket. Without AWS credentials it passes
// stored URLs through unchanged, which keeps local development working
// against plain HTTP fixtures.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		return &StorageService{config: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

// SignedDownloadURL presigns the given asset URL for the configured link
// TTL. URLs that do not point into the bucket, and any presign failure,
// fall back to the stored URL so the purchaser always gets a working link.
func (s *StorageService) SignedDownloadURL(rawURL string) string {
	if s.s3Client == nil || rawURL == "" {
		return rawURL
	}

	key := s.keyFromURL(rawURL)
	if key == "" {
		return rawURL
	}

	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})

	ttl := time.Duration(s.config.Downloads.LinkTTL) * time.Minute
	signed, err := req.Presign(ttl)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Failed to presign download URL")
		return rawURL
	}

	return signed
}

// keyFromURL extracts the object key when the URL points at our bucket or
// its CloudFront distribution; otherwise it returns "".
func (s *StorageService) keyFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	host := u.Host
	if s.config.AWS.CloudFrontURL != "" {
		if cf, err := url.Parse(s.config.AWS.CloudFrontURL); err == nil && cf.Host == host {
			return strings.TrimPrefix(u.Path, "/")
		}
	}

	if strings.HasPrefix(host, s.config.AWS.S3Bucket+".s3") {
		return strings.TrimPrefix(u.Path, "/")
	}

	return ""
}
