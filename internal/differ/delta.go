// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/snapdiff/snapdiff/internal/manifest"
)

// Delta writes a human-readable structural diff of two manifest documents to
// w. Unlike Compare it works on the raw JSON, so context changes are shown
// too. It returns whether the documents differ.
func Delta(expected, actual []byte, w io.Writer, coloring bool) (bool, error) {
	log.Debugf("delta: len(expected)=%d len(actual)=%d", len(expected), len(actual))

	// Both sides must at least be manifests.
	if _, err := manifest.Parse(expected); err != nil {
		return false, fmt.Errorf("expected: %w", err)
	}
	if _, err := manifest.Parse(actual); err != nil {
		return false, fmt.Errorf("actual: %w", err)
	}

	delta, err := gojsondiff.New().Compare(expected, actual)
	if err != nil {
		return false, fmt.Errorf("failed to compare manifests: %w", err)
	}

	if !delta.Modified() {
		fmt.Fprintln(w, "The manifests are identical.")
		return false, nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(expected, &jdoc); err != nil {
		return true, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	f := formatter.NewAsciiFormatter(jdoc, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       coloring,
	})
	diffString, err := f.Format(delta)
	if err != nil {
		return true, err
	}

	fmt.Fprint(w, diffString)
	return true, nil
}
