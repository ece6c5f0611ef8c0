package spaces

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/mitraternak/kandang-backend/pkg/config"
	"github.com/mitraternak/kandang-backend/pkg/logger"
)

const pingTimeout = 5 * time.Second

// Client wraps the AWS SDK v2 S3 client tuned for S3-compatible Spaces
// endpoints. Uploads are public-read; the returned URL is what gets stored
// on image rows.
type Client struct {
	api           *s3.Client
	bucket        string
	publicBaseURL string
}

// Pinger exposes the health check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ObjectStore is the surface services depend on.
type ObjectStore interface {
	Upload(ctx context.Context, body io.Reader, size int64, name, category string) (string, error)
	Delete(ctx context.Context, key, category string) error
}

// NewClient initialises a Spaces client from configuration.
func NewClient(ctx context.Context, cfg config.SpacesConfig, logg *logger.Logger) (*Client, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("spaces bucket is required")
	}
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("spaces endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("spaces access key and secret key are required")
	}

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.ForcePathStyle
		o.BaseEndpoint = aws.String(endpoint)
	})

	client := &Client{
		api:           api,
		bucket:        cfg.Bucket,
		publicBaseURL: publicBaseURL(cfg, endpoint),
	}

	if logg != nil {
		logg.Info(ctx, "spaces client initialized")
	}

	return client, nil
}

func publicBaseURL(cfg config.SpacesConfig, endpoint string) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return strings.TrimRight(endpoint, "/") + "/" + cfg.Bucket
	}
	if cfg.ForcePathStyle {
		return fmt.Sprintf("%s://%s/%s", u.Scheme, u.Host, cfg.Bucket)
	}
	return fmt.Sprintf("%s://%s.%s", u.Scheme, cfg.Bucket, u.Host)
}

// Upload stores the object under "<category>/<name>" with public-read ACL and
// returns its public URL. Single attempt, no retry.
func (c *Client) Upload(ctx context.Context, body io.Reader, size int64, name, category string) (string, error) {
	if c == nil {
		return "", errors.New("nil client")
	}
	key := ObjectKey(name, category)

	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &c.bucket,
		Key:           &key,
		Body:          body,
		ContentLength: &size,
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", key, err)
	}

	return c.publicBaseURL + "/" + key, nil
}

// Delete removes the object stored under "<category>/<key>".
func (c *Client) Delete(ctx context.Context, key, category string) error {
	if c == nil {
		return errors.New("nil client")
	}
	objectKey := ObjectKey(key, category)

	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &c.bucket,
		Key:    &objectKey,
	})
	if err != nil {
		return fmt.Errorf("delete object %q: %w", objectKey, err)
	}
	return nil
}

// Ping verifies the bucket is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.api == nil {
		return errors.New("spaces client not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	_, err := c.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: &c.bucket})
	if err != nil {
		return fmt.Errorf("head bucket %q: %w", c.bucket, err)
	}
	return nil
}

// ObjectKey builds the storage key for a file name within a category folder.
func ObjectKey(name, category string) string {
	name = strings.TrimLeft(strings.TrimSpace(name), "/")
	category = strings.Trim(strings.TrimSpace(category), "/")
	if category == "" {
		return name
	}
	return category + "/" + name
}

// KeyFromURL derives the bare object name from a stored public URL. The
// original system stores full URLs on image rows and recovers the key as the
// last path segment when deleting.
func KeyFromURL(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return ""
	}
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
