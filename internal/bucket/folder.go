// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package bucket

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
)

// FolderProvider stores buckets as directories below Root. The object for
// key in bucket b lives at {Root}/{b}/{key}.
type FolderProvider struct {
	Root string
}

// NewFolder returns a folder provider rooted at folderPath, made absolute.
func NewFolder(folderPath string) (*FolderProvider, error) {
	root, err := filepath.Abs(folderPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve folder %s: %w", folderPath, err)
	}
	log.Debugf("folder provider root: %s", root)
	return &FolderProvider{Root: root}, nil
}

func (p *FolderProvider) UploadFile(ctx context.Context, bucketName, filePath, destination string) (Response, error) {
	key, err := checkUpload(bucketName, filePath, destination)
	if err != nil {
		return Response{}, err
	}
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	target := p.objectPath(bucketName, key)
	if err := copyFile(filePath, target); err != nil {
		return Response{}, fmt.Errorf("upload %s to %s/%s: %w", filePath, bucketName, key, err)
	}

	return Response{
		Status:  http.StatusOK,
		Message: fmt.Sprintf("File %q was uploaded successfully to bucket %q", filePath, bucketName),
	}, nil
}

func (p *FolderProvider) DownloadFile(ctx context.Context, bucketName, remoteKey, localPath string) (Response, error) {
	if err := checkDownload(bucketName, remoteKey, localPath); err != nil {
		return Response{}, err
	}
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	key := cleanKey(remoteKey)
	if err := copyFile(p.objectPath(bucketName, key), localPath); err != nil {
		status := http.StatusInternalServerError
		if os.IsNotExist(err) {
			status = http.StatusNotFound
		}
		return Response{Status: status}, fmt.Errorf("download %s/%s: %w", bucketName, key, err)
	}

	return Response{
		Status:  http.StatusOK,
		Message: fmt.Sprintf("File %q was downloaded successfully from bucket %q", key, bucketName),
	}, nil
}

// List returns the keys in bucketName starting with prefix, sorted.
func (p *FolderProvider) List(ctx context.Context, bucketName, prefix string) ([]string, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("%w: empty bucket", ErrInvalidParameters)
	}

	base := filepath.Join(p.Root, bucketName)
	keys := []string{}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == base {
				return fs.SkipDir
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		if key := filepath.ToSlash(rel); strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s/%s: %w", bucketName, prefix, err)
	}

	return keys, nil
}

func (p *FolderProvider) BaseURL() string { return p.Root }

func (p *FolderProvider) BucketURL(bucketName string) string {
	return filepath.Join(p.Root, bucketName)
}

func (p *FolderProvider) String() string { return "folder(" + p.Root + ")" }

func (p *FolderProvider) objectPath(bucketName, key string) string {
	return filepath.Join(p.Root, bucketName, filepath.FromSlash(key))
}

// copyFile copies src to dst, creating dst's parent directories.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	return saveFile(dst, in)
}
