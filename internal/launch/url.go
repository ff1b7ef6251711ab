// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package launch

import (
	"fmt"
	"strings"
)

// runSegment is the path segment the reverse proxy inserts into
// DOMINO_RUN_HOST_PATH that must not appear in the public URL.
const runSegment = "r"

// CleanRunHostPath drops every "/r" segment from path.
func CleanRunHostPath(path string) string {
	segments := strings.Split(path, "/")
	kept := make([]string, 0, len(segments))
	for i, s := range segments {
		if i > 0 && s == runSegment {
			continue
		}
		kept = append(kept, s)
	}
	return strings.Join(kept, "/")
}

// ProxyURL concatenates domain, cleaned prefix and the proxy suffix verbatim;
// no separator is inserted between the prefix and "proxy".
func ProxyURL(domain, runHostPath, port string) string {
	return "https://" + domain + CleanRunHostPath(runHostPath) + "proxy/" + port + "/"
}

func LocalURL(port string) string {
	return fmt.Sprintf("http://localhost:%s/", port)
}

// PublicURL returns the URL to announce and whether it goes through the proxy.
func PublicURL(domain, runHostPath, port string) (string, bool) {
	if runHostPath == "" {
		return LocalURL(port), false
	}
	return ProxyURL(domain, runHostPath, port), true
}
