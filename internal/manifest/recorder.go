// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/apex/log"
)

// ErrFinalized is returned when recording into a finalized Recorder.
var ErrFinalized = errors.New("recorder already finalized")

// Recorder accumulates captured snapshots for one test run. It is owned by
// the run's orchestrator and is safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	snapshots Manifest
	finalized bool
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{snapshots: Manifest{}}
}

// Record appends hash to the entry for tc.FullTitle. The first record for a
// title fixes its context.
func (r *Recorder) Record(tc TestContext, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finalized {
		return ErrFinalized
	}

	e, ok := r.snapshots[tc.FullTitle]
	if !ok {
		e = Entry{Context: tc}
	}
	e.Images = append(e.Images, hash)
	r.snapshots[tc.FullTitle] = e
	return nil
}

// Snapshot returns a copy of everything recorded so far.
func (r *Recorder) Snapshot() Manifest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshots.Clone()
}

// Finalize writes the accumulated manifest to path. Further Record calls
// fail. Finalizing twice rewrites the same content.
func (r *Recorder) Finalize(path string) error {
	r.mu.Lock()
	r.finalized = true
	m := r.snapshots.Clone()
	r.mu.Unlock()

	if err := m.Save(path); err != nil {
		return fmt.Errorf("failed to finalize snapshots: %w", err)
	}
	log.Debugf("wrote %d test entries to %s", len(m), path)
	return nil
}
