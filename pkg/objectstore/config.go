package objectstore

import "fmt"

// Config contains connection settings for the object store.
type Config struct {
	// Endpoint overrides the default S3 endpoint, for MinIO or other
	// S3-compatible stores. When set, path-style addressing is forced.
	Endpoint string

	// Region is the AWS region.
	Region string

	// Static credentials. When empty the default AWS credential chain
	// applies.
	AccessKey string
	SecretKey string

	// RequestTimeoutSeconds bounds each request (default: 30).
	RequestTimeoutSeconds int

	// RetryMaxAttempts bounds transient-error retries per fetch
	// (default: 3).
	RetryMaxAttempts int
}

// Validate validates the object store configuration.
func (c *Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return fmt.Errorf("access key and secret key must be provided together")
	}
	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request timeout cannot be negative")
	}
	if c.RetryMaxAttempts < 0 {
		return fmt.Errorf("retry max attempts cannot be negative")
	}
	return nil
}

// SetDefaults fills in default values for optional fields.
func (c *Config) SetDefaults() {
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = 30
	}
	if c.RetryMaxAttempts == 0 {
		c.RetryMaxAttempts = 3
	}
}
