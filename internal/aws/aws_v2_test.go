// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the shared config chain at files under t.TempDir so the
// developer's own AWS setup never leaks into a test.
func isolate(t *testing.T, configBody string) {
	t.Helper()
	dir := t.TempDir()

	cfgFile := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(cfgFile, []byte(configBody), 0o600))
	credFile := filepath.Join(dir, "credentials")
	require.NoError(t, os.WriteFile(credFile, nil, 0o600))

	t.Setenv("AWS_CONFIG_FILE", cfgFile)
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", credFile)
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want options
	}{
		{name: "none", want: options{}},
		{name: "profile", opts: []Option{WithProfile("snaps")}, want: options{profile: "snaps"}},
		{name: "region", opts: []Option{WithRegion("eu-west-1")}, want: options{region: "eu-west-1"}},
		{name: "attempts", opts: []Option{WithMaxAttempts(5)}, want: options{maxAttempts: 5}},
		{
			name: "later wins",
			opts: []Option{WithRegion("us-east-1"), WithRegion("us-west-2"), WithProfile("a")},
			want: options{region: "us-west-2", profile: "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o options
			for _, opt := range tt.opts {
				opt(&o)
			}
			assert.Equal(t, tt.want, o)
		})
	}
}

func TestWithRetryer(t *testing.T) {
	var o options
	WithRetryer(func() awsv2.Retryer { return retry.NewStandard() })(&o)
	require.NotNil(t, o.retryer)
	assert.NotNil(t, o.retryer())
}

func TestLoadAWSConfig_Region(t *testing.T) {
	isolate(t, "")

	cfg, err := LoadAWSConfig(context.Background(), WithRegion("ap-southeast-2"))
	require.NoError(t, err)
	assert.Equal(t, "ap-southeast-2", cfg.Region)
}

func TestLoadAWSConfig_Profile(t *testing.T) {
	isolate(t, "[profile snaps]\nregion = eu-west-2\n")

	cfg, err := LoadAWSConfig(context.Background(), WithProfile("snaps"))
	require.NoError(t, err)
	assert.Equal(t, "eu-west-2", cfg.Region)

	cfg, err = LoadAWSConfig(context.Background(), WithProfile("snaps"), WithRegion("us-east-2"))
	require.NoError(t, err)
	assert.Equal(t, "us-east-2", cfg.Region)
}

func TestLoadAWSConfig_MissingProfile(t *testing.T) {
	isolate(t, "")

	_, err := LoadAWSConfig(context.Background(), WithProfile("does-not-exist"))
	assert.Error(t, err)
}

func TestLoadAWSConfig_MaxAttempts(t *testing.T) {
	isolate(t, "")

	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-east-1"), WithMaxAttempts(7))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.RetryMaxAttempts)
}

func TestNewS3(t *testing.T) {
	isolate(t, "")

	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-east-1"))
	require.NoError(t, err)

	t.Run("defaults", func(t *testing.T) {
		client := NewS3(cfg, WithEndpoint(""), WithPathStyle(false))
		opts := client.Options()
		assert.Nil(t, opts.BaseEndpoint)
		assert.False(t, opts.UsePathStyle)
		assert.Equal(t, "us-east-1", opts.Region)
	})

	t.Run("s3 compatible", func(t *testing.T) {
		client := NewS3(cfg, WithEndpoint("http://localhost:9000"), WithPathStyle(true))
		opts := client.Options()
		require.NotNil(t, opts.BaseEndpoint)
		assert.Equal(t, "http://localhost:9000", *opts.BaseEndpoint)
		assert.True(t, opts.UsePathStyle)
	})

	t.Run("raw service options", func(t *testing.T) {
		client := NewS3(cfg, func(o *s3v2.Options) { o.Region = "sa-east-1" })
		assert.Equal(t, "sa-east-1", client.Options().Region)
	})
}
