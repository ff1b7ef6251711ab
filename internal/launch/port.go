// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package launch

import "github.com/platform-engineering-labs/devlaunch/internal/config"

// ResolvePort picks the port to bind. A non-empty PORT in the environment wins
// over the positional argument, which wins over fallback. The value is not
// validated; the server rejects what it cannot bind.
func ResolvePort(getenv func(string) string, args []string, fallback string) string {
	if getenv != nil {
		if port := getenv(config.EnvPort); port != "" {
			return port
		}
	}
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return fallback
}
