// Package config loads and validates service configuration.
//
// Bucket names, object-store connection settings, and the optional
// schemes file path come from the process environment. Validation
// failures are fatal at startup: a missing bucket name or a malformed
// scheme definition would otherwise silently break every request.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/uvalib/imagesource/pkg/objectstore"
	"github.com/uvalib/imagesource/pkg/resolve"
)

// Config is the process configuration for the image source service.
type Config struct {
	// Storage targets for the resolver. The same scheme set points at
	// different buckets per deployment (staging vs. production).
	PrimaryBucket   string `env:"IMAGESOURCE_PRIMARY_BUCKET"`
	SecondaryBucket string `env:"IMAGESOURCE_SECONDARY_BUCKET"`

	// SchemesFile optionally overrides the built-in rule table with an
	// HCL scheme definition file.
	SchemesFile string `env:"IMAGESOURCE_SCHEMES_FILE"`

	// Object store connection settings.
	Endpoint  string `env:"IMAGESOURCE_S3_ENDPOINT"`
	Region    string `env:"IMAGESOURCE_S3_REGION" envDefault:"us-east-1"`
	AccessKey string `env:"IMAGESOURCE_S3_ACCESS_KEY"`
	SecretKey string `env:"IMAGESOURCE_S3_SECRET_KEY"`

	// RequestTimeoutSeconds bounds each object store request.
	RequestTimeoutSeconds int `env:"IMAGESOURCE_S3_TIMEOUT_SECONDS" envDefault:"30"`

	// LogLevel sets the hclog level for the process.
	LogLevel string `env:"IMAGESOURCE_LOG_LEVEL" envDefault:"info"`
}

// FromEnv loads configuration from environment variables and validates
// it.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.PrimaryBucket, validation.Required),
		validation.Field(&c.SecondaryBucket, validation.Required),
		validation.Field(&c.Region, validation.Required),
		validation.Field(&c.RequestTimeoutSeconds, validation.Required, validation.Min(1)),
	)
}

// Targets returns the resolver storage targets.
func (c *Config) Targets() resolve.Targets {
	return resolve.Targets{
		Primary:   c.PrimaryBucket,
		Secondary: c.SecondaryBucket,
	}
}

// ObjectStore returns the object store connection settings.
func (c *Config) ObjectStore() *objectstore.Config {
	return &objectstore.Config{
		Endpoint:              c.Endpoint,
		Region:                c.Region,
		AccessKey:             c.AccessKey,
		SecretKey:             c.SecretKey,
		RequestTimeoutSeconds: c.RequestTimeoutSeconds,
	}
}
