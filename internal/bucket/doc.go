// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package bucket moves snapshot files between the local store and a remote
// blob store.
//
// Two providers exist. The folder provider keeps each bucket as a directory
// and is handy for CI caches and tests. The s3 provider talks to S3 or any
// S3-compatible service (MinIO, GCS interoperability) through aws-sdk-go-v2.
// New picks one from the bucketProvider section of the config file.
package bucket
