// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"
	"strings"

	"github.com/snapdiff/snapdiff/internal/layout"
	"github.com/snapdiff/snapdiff/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{output.FormatText, output.FormatJSON, output.FormatYAML}
	if s, ok := value.(string); !ok || !slices.Contains(validOutputFlagValues, s) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func ConcurrencyValidator(value any) error {
	if n, ok := value.(int); !ok || n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

// NameValidator accepts a single non-empty path segment.
func NameValidator(value any) error {
	s, _ := value.(string)
	switch {
	case s == "":
		return fmt.Errorf("name must not be empty")
	case s == "." || s == ".." || strings.ContainsAny(s, `/\`):
		return fmt.Errorf("%q must be a plain name", s)
	}
	return nil
}

// TargetValidator rejects target names that would overwrite one of the
// store's own meta files.
func TargetValidator(value any) error {
	if err := NameValidator(value); err != nil {
		return err
	}
	if s := value.(string); s == layout.LocalManifest || s == layout.DiffResult {
		return fmt.Errorf("target %q is reserved", s)
	}
	return nil
}
