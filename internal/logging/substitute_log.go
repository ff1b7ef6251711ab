// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"log/slog"
	"strings"
)

// slogWriter turns stdlib log lines into slog records, honouring a leading
// level word the way most libraries emit it ("ERROR ...", "WARN ...").
type slogWriter struct{}

func (w *slogWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimRight(string(p), "\n")

	switch {
	case strings.HasPrefix(msg, "ERROR "):
		slog.Error(msg[len("ERROR "):])
	case strings.HasPrefix(msg, "WARN "):
		slog.Warn(msg[len("WARN "):])
	case strings.HasPrefix(msg, "INFO "):
		slog.Info(msg[len("INFO "):])
	default:
		slog.Debug(msg)
	}

	return len(p), nil
}
