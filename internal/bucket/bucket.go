// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package bucket

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apex/log"

	"github.com/snapdiff/snapdiff/internal/config"
)

// ErrInvalidParameters is returned when a required argument is empty.
var ErrInvalidParameters = errors.New("invalid parameters")

// Response reports the outcome of a single transfer.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
}

// Provider is a blob store holding snapshot images, manifests and reports.
// Keys always use forward slashes.
type Provider interface {
	UploadFile(ctx context.Context, bucketName, filePath, destination string) (Response, error)
	DownloadFile(ctx context.Context, bucketName, remoteKey, localPath string) (Response, error)
	List(ctx context.Context, bucketName, prefix string) ([]string, error)
	// BaseURL is where the store root is reachable.
	BaseURL() string
	// BucketURL is where keys of bucketName are reachable.
	BucketURL(bucketName string) string
	String() string
}

// Provider names accepted by New.
const (
	Folder = "folder"
	S3     = "s3"
	GCS    = "gcs"
)

// New returns the provider called name configured from options. Unknown
// names and missing required options fail with config.ErrConfig.
func New(ctx context.Context, name string, options map[string]string) (Provider, error) {
	log.Debugf("bucket.New: name=%s options=%v", name, redact(options))

	switch strings.ToLower(name) {
	case Folder:
		folderPath := options["folderPath"]
		if folderPath == "" {
			return nil, fmt.Errorf("%w: folder provider requires bucketProvider.options.folderPath", config.ErrConfig)
		}
		return NewFolder(folderPath)

	case S3, GCS:
		endpoint := options["endpoint"]
		isGCS := strings.EqualFold(name, GCS)
		if isGCS && endpoint == "" {
			return nil, fmt.Errorf("%w: gcs provider requires an S3-compatible bucketProvider.options.endpoint", config.ErrConfig)
		}

		pathStyle := isGCS
		if v, ok := options["usePathStyle"]; ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("%w: usePathStyle: %v", config.ErrConfig, err)
			}
			pathStyle = b
		}

		region := options["region"]
		if region == "" && isGCS {
			region = "auto"
		}

		return NewS3(ctx,
			WithName(strings.ToLower(name)),
			WithRegion(region),
			WithProfile(options["profile"]),
			WithEndpoint(endpoint),
			WithPathStyle(pathStyle),
			WithBaseURL(options["baseUrl"]),
		)

	case "":
		return nil, fmt.Errorf("%w: no bucketProvider.name configured", config.ErrConfig)

	default:
		return nil, fmt.Errorf("%w: unknown bucket provider %q", config.ErrConfig, name)
	}
}

// checkUpload validates upload arguments and resolves the destination key.
func checkUpload(bucketName, filePath, destination string) (string, error) {
	if bucketName == "" || filePath == "" {
		return "", fmt.Errorf("%w: bucket=%q file=%q", ErrInvalidParameters, bucketName, filePath)
	}
	if destination == "" {
		destination = filepath.Base(filePath)
	}
	return cleanKey(destination), nil
}

func checkDownload(bucketName, remoteKey, localPath string) error {
	if bucketName == "" || remoteKey == "" || localPath == "" {
		return fmt.Errorf("%w: bucket=%q key=%q path=%q", ErrInvalidParameters, bucketName, remoteKey, localPath)
	}
	return nil
}

// cleanKey normalizes a key to forward slashes without a leading slash.
// saveFile streams r into dst through a temp file in dst's directory, so a
// failed transfer never leaves a partial file at dst.
func saveFile(dst string, r io.Reader) error {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil { //nolint:mnd
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

func cleanKey(key string) string {
	key = path.Clean(filepath.ToSlash(key))
	return strings.TrimPrefix(key, "/")
}

// ContentType infers a MIME type from the key's extension.
func ContentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".png":
		return "image/png"
	case ".json":
		return "application/json"
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// redact hides values that look like credentials in debug output.
func redact(options map[string]string) map[string]string {
	out := make(map[string]string, len(options))
	for k, v := range options {
		lk := strings.ToLower(k)
		if strings.Contains(lk, "secret") || (strings.Contains(lk, "key") && !strings.Contains(lk, "prefix")) {
			v = "****"
		}
		out[k] = v
	}
	return out
}
