// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// ErrUnknownAlgorithm is returned by New for unsupported names.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

// Supported algorithm names.
const (
	SHA256  = "sha256"
	Blake2b = "blake2b"
	XXH3    = "xxh3"
)

// Hasher turns image bytes into the content hash used as its store key.
type Hasher interface {
	Sum(data []byte) string
	Name() string
}

type hasherFunc struct {
	name string
	fn   func([]byte) []byte
}

func (h hasherFunc) Sum(data []byte) string { return hex.EncodeToString(h.fn(data)) }
func (h hasherFunc) Name() string           { return h.name }

// New returns the Hasher for name. An empty name selects sha256.
func New(name string) (Hasher, error) {
	switch strings.ToLower(name) {
	case "", SHA256:
		return hasherFunc{SHA256, func(b []byte) []byte {
			s := sha256.Sum256(b)
			return s[:]
		}}, nil
	case Blake2b:
		return hasherFunc{Blake2b, func(b []byte) []byte {
			s := blake2b.Sum256(b)
			return s[:]
		}}, nil
	case XXH3:
		// Not cryptographic; fine for a private store, weaker for a shared one.
		return hasherFunc{XXH3, func(b []byte) []byte {
			s := xxh3.Hash128(b).Bytes()
			return s[:]
		}}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}
