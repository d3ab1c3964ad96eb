// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package bucket

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	awsx "github.com/snapdiff/snapdiff/internal/aws"
)

// s3API is the subset of *s3.Client the provider calls.
type s3API interface {
	s3v2.ListObjectsV2APIClient
	PutObject(ctx context.Context, params *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// S3Provider stores objects in S3 or an S3-compatible service.
type S3Provider struct {
	name      string
	region    string
	profile   string
	endpoint  string
	baseURL   string
	pathStyle bool
	client    s3API
}

// S3Option configures an S3Provider.
type S3Option func(*S3Provider)

// NewS3 returns an S3 provider. Credentials and any unset region come from
// the usual AWS config chain.
func NewS3(ctx context.Context, opts ...S3Option) (*S3Provider, error) {
	p := &S3Provider{name: S3}
	for _, opt := range opts {
		opt(p)
	}

	if p.client == nil {
		cfg, err := awsx.LoadAWSConfig(ctx, awsx.WithRegion(p.region), awsx.WithProfile(p.profile))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		p.region = cfg.Region
		p.client = awsx.NewS3(cfg, awsx.WithEndpoint(p.endpoint), awsx.WithPathStyle(p.pathStyle))
	}

	return p, nil
}

// WithName sets the name reported by String.
func WithName(name string) S3Option {
	return func(p *S3Provider) { p.name = name }
}

func WithRegion(region string) S3Option {
	return func(p *S3Provider) { p.region = region }
}

func WithProfile(profile string) S3Option {
	return func(p *S3Provider) { p.profile = profile }
}

func WithEndpoint(endpoint string) S3Option {
	return func(p *S3Provider) { p.endpoint = strings.TrimSuffix(endpoint, "/") }
}

func WithPathStyle(enabled bool) S3Option {
	return func(p *S3Provider) { p.pathStyle = enabled }
}

// WithBaseURL sets the public URL of the store root, for example a CDN.
func WithBaseURL(url string) S3Option {
	return func(p *S3Provider) { p.baseURL = strings.TrimSuffix(url, "/") }
}

func withClient(c s3API) S3Option {
	return func(p *S3Provider) { p.client = c }
}

func (p *S3Provider) UploadFile(ctx context.Context, bucketName, filePath, destination string) (Response, error) {
	key, err := checkUpload(bucketName, filePath, destination)
	if err != nil {
		return Response{}, err
	}

	f, err := os.Open(filePath)
	if err != nil {
		return Response{}, fmt.Errorf("upload %s: %w", filePath, err)
	}
	defer f.Close()

	_, err = p.client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:      awsv2.String(bucketName),
		Key:         awsv2.String(key),
		Body:        f,
		ContentType: awsv2.String(ContentType(key)),
	})
	if err != nil {
		return Response{}, fmt.Errorf("upload %s to %s/%s: %w", filePath, bucketName, key, err)
	}
	log.Debugf("put s3://%s/%s", bucketName, key)

	return Response{
		Status:  http.StatusOK,
		Message: fmt.Sprintf("File %q was uploaded successfully to bucket %q", filePath, bucketName),
	}, nil
}

func (p *S3Provider) DownloadFile(ctx context.Context, bucketName, remoteKey, localPath string) (Response, error) {
	if err := checkDownload(bucketName, remoteKey, localPath); err != nil {
		return Response{}, err
	}
	key := cleanKey(remoteKey)

	out, err := p.client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(bucketName),
		Key:    awsv2.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return Response{Status: http.StatusNotFound}, fmt.Errorf("download %s/%s: %w: %w", bucketName, key, fs.ErrNotExist, err)
		}
		return Response{}, fmt.Errorf("download %s/%s: %w", bucketName, key, err)
	}
	defer out.Body.Close()

	if err := saveFile(localPath, out.Body); err != nil {
		return Response{}, fmt.Errorf("download %s/%s: %w", bucketName, key, err)
	}
	log.Debugf("got s3://%s/%s -> %s", bucketName, key, localPath)

	return Response{
		Status:  http.StatusOK,
		Message: fmt.Sprintf("File %q was downloaded successfully from bucket %q", key, bucketName),
	}, nil
}

// List returns every key in bucketName starting with prefix.
func (p *S3Provider) List(ctx context.Context, bucketName, prefix string) ([]string, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("%w: empty bucket", ErrInvalidParameters)
	}

	paginator := s3v2.NewListObjectsV2Paginator(p.client, &s3v2.ListObjectsV2Input{
		Bucket: awsv2.String(bucketName),
		Prefix: awsv2.String(prefix),
	})

	keys := []string{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %s/%s: %w", bucketName, prefix, err)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
	}

	return keys, nil
}

// BaseURL is the configured baseUrl, else the endpoint, else the regional
// AWS endpoint.
func (p *S3Provider) BaseURL() string {
	switch {
	case p.baseURL != "":
		return p.baseURL
	case p.endpoint != "":
		return p.endpoint
	case p.region != "":
		return "https://s3." + p.region + ".amazonaws.com"
	default:
		return "https://s3.amazonaws.com"
	}
}

func (p *S3Provider) BucketURL(bucketName string) string {
	return p.BaseURL() + "/" + bucketName
}

func (p *S3Provider) String() string {
	if p.endpoint != "" {
		return p.name + "(" + p.endpoint + ")"
	}
	return p.name
}
