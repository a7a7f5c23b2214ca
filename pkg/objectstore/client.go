// Package objectstore fetches source assets from an S3-compatible
// object store using resolved storage addresses.
//
// The package is a collaborator of pkg/resolve, not part of it: a fetch
// failure (bucket or key not found, transport error) is the store's own
// error and is never re-mapped onto a resolution outcome.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/uvalib/imagesource/pkg/resolve"
)

// ErrNoAddress is returned when a fetch is attempted with the
// resolution-failure sentinel. Callers should have treated the sentinel
// as "asset not found" before reaching the store.
var ErrNoAddress = errors.New("objectstore: address is the resolution-failure sentinel")

// Client fetches objects from an S3-compatible store.
type Client struct {
	client   *s3.Client
	cfg      *Config
	logger   hclog.Logger
	retryMax uint64
}

// NewClient creates an object store client.
func NewClient(ctx context.Context, cfg *Config, logger hclog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid object store configuration: %w", err)
	}
	cfg.SetDefaults()

	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	awsCfg, err := createAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// Path-style addressing for MinIO and friends.
			o.UsePathStyle = true
		}
	})

	return &Client{
		client:   client,
		cfg:      cfg,
		logger:   logger.Named("objectstore"),
		retryMax: uint64(cfg.RetryMaxAttempts),
	}, nil
}

// createAWSConfig creates AWS SDK configuration from store config.
func createAWSConfig(ctx context.Context, cfg *Config) (aws.Config, error) {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithHTTPClient(httpClient),
	}

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	return awsconfig.LoadDefaultConfig(ctx, opts...)
}

// Fetch retrieves the asset bytes at a resolved address. Transient
// errors are retried with bounded exponential backoff; a missing object
// is permanent and returned immediately.
func (c *Client) Fetch(ctx context.Context, addr resolve.Address) ([]byte, error) {
	if addr.IsNone() {
		return nil, ErrNoAddress
	}

	var content []byte
	operation := func() error {
		result, err := c.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(addr.Bucket),
			Key:    aws.String(addr.Key),
		})
		if err != nil {
			if isNotFound(err) {
				return backoff.Permanent(err)
			}
			c.logger.Warn("transient object fetch failure",
				"bucket", addr.Bucket,
				"key", addr.Key,
				"error", err)
			return err
		}
		defer result.Body.Close()

		content, err = io.ReadAll(result.Body)
		if err != nil {
			return err
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.retryMax), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("failed to fetch object %s: %w", addr, err)
	}

	c.logger.Debug("fetched object",
		"bucket", addr.Bucket,
		"key", addr.Key,
		"bytes", len(content))
	return content, nil
}

// Exists reports whether an object exists at a resolved address.
func (c *Client) Exists(ctx context.Context, addr resolve.Address) (bool, error) {
	if addr.IsNone() {
		return false, ErrNoAddress
	}

	_, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(addr.Bucket),
		Key:    aws.String(addr.Key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to head object %s: %w", addr, err)
	}
	return true, nil
}

// isNotFound reports whether an S3 error means the object is absent.
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noSuchKey) || errors.As(err, &notFound)
}
