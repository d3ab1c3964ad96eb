// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws loads AWS SDK v2 configuration and builds the S3 clients used
// by the s3 bucket provider, including S3-compatible endpoints.
package aws
