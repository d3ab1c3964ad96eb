// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/snapdiff/snapdiff/internal/log"
)

// options holds optional overrides for AWS config loading.
type options struct {
	profile     string
	region      string
	maxAttempts int
	retryer     func() awsv2.Retryer
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// LoadAWSConfig loads AWS SDK v2 config. By default it inherits the shell's
// AWS setup. Options override profile, region and retry behavior.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("aws opts: profile=%s region=%s attempts=%d", o.profile, o.region, o.maxAttempts)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.maxAttempts > 0 {
		loadOpts = append(loadOpts, config.WithRetryMaxAttempts(o.maxAttempts))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Debugf("aws config load failed: %v", err)
		return awsv2.Config{}, err
	}
	return cfg, nil
}

// NewS3 constructs an S3 client from cfg. Service options such as
// WithEndpoint and WithPathStyle are applied in order.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	client := s3v2.NewFromConfig(cfg, optFns...)
	log.Debugf("s3 client created: region=%s", cfg.Region)
	return client
}

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithMaxAttempts caps the SDK retryer's attempts per request.
func WithMaxAttempts(n int) Option {
	return func(o *options) { o.maxAttempts = n }
}

// WithRetryer injects a custom retryer; if not set, SDK defaults are used.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// WithEndpoint points the S3 client at an S3-compatible service such as
// MinIO or the GCS interoperability API. Empty leaves the AWS default.
func WithEndpoint(url string) func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		if url != "" {
			o.BaseEndpoint = awsv2.String(url)
		}
	}
}

// WithPathStyle selects path-style addressing (endpoint/bucket/key), which
// most S3-compatible services require.
func WithPathStyle(enabled bool) func(*s3v2.Options) {
	return func(o *s3v2.Options) { o.UsePathStyle = enabled }
}
