// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import "runtime"

// Version is the client version reported to remote services.
// Overridden at build time via ldflags.
var Version = "dev"

// ClientName identifies this blog software in outbound payloads.
const ClientName = "Solo"

// RuntimeEnv returns the runtime environment tag reported to remote
// services.
func RuntimeEnv() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}
