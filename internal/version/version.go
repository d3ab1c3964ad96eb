// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other snapdiff packages to avoid import cycles.

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Name is the binary name used in help text and user agents.
const Name = "snapdiff"

var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}()

// String renders the version line printed by --version.
func String() string {
	return fmt.Sprintf("%s %s (%s %s/%s)", Name, Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
