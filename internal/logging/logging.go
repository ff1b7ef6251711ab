// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/platform-engineering-labs/devlaunch/internal/util"
)

const NoLoggingLevel = slog.Level(100) // A level higher than any standard level to disable logging

// Console logs go to stderr; stdout belongs to the proxy URL and the served process.
var consoleWriter io.Writer = os.Stderr

func SetupInitialLogging() {
	slog.SetDefault(slog.New(
		tint.NewHandler(consoleWriter, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.RFC3339,
		}),
	))

	redirectStandardLog()
}

// SetupLauncherLogging installs the console handler at the given level and, when
// logFilePath is not empty, a rotating file handler that records everything from
// debug upwards.
func SetupLauncherLogging(level slog.Level, logFilePath string) error {
	handler := &MultiLevelHandler{
		consoleHandler: tint.NewHandler(consoleWriter, &tint.Options{
			Level:      level,
			TimeFormat: time.RFC3339,
		}),
	}

	if logFilePath != "" {
		logFilePath = util.ExpandHomePath(logFilePath)
		if err := util.EnsureFileFolderHierarchy(logFilePath); err != nil {
			return fmt.Errorf("failed to create log folder hierarchy: %w", err)
		}

		handler.fileHandler = tint.NewHandler(&lumberjack.Logger{
			Filename: logFilePath,
			Compress: true,
		}, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}

	slog.SetDefault(slog.New(handler))
	redirectStandardLog()

	return nil
}

// ParseLevel maps the names accepted by --log-level onto slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "off", "none":
		return NoLoggingLevel, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (debug | info | warn | error | off)", s)
	}
}

// overwrite standard log so it's always redirected to slog, in case some deep dep is using it
func redirectStandardLog() {
	lw := &slogWriter{}
	log.Default().SetOutput(lw)
	log.SetOutput(lw)
}

type MultiLevelHandler struct {
	consoleHandler slog.Handler
	fileHandler    slog.Handler
}

func (h *MultiLevelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.consoleHandler.Enabled(ctx, level) {
		return true
	}
	if h.fileHandler != nil && h.fileHandler.Enabled(ctx, level) {
		return true
	}
	return false
}

func (h *MultiLevelHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.consoleHandler.Enabled(ctx, r.Level) {
		if err := h.consoleHandler.Handle(ctx, r); err != nil {
			return err
		}
	}

	if h.fileHandler != nil && h.fileHandler.Enabled(ctx, r.Level) {
		if err := h.fileHandler.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}

	return nil
}

func (h *MultiLevelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := &MultiLevelHandler{
		consoleHandler: h.consoleHandler.WithAttrs(attrs),
	}

	if h.fileHandler != nil {
		newHandler.fileHandler = h.fileHandler.WithAttrs(attrs)
	}

	return newHandler
}

func (h *MultiLevelHandler) WithGroup(name string) slog.Handler {
	newHandler := &MultiLevelHandler{
		consoleHandler: h.consoleHandler.WithGroup(name),
	}

	if h.fileHandler != nil {
		newHandler.fileHandler = h.fileHandler.WithGroup(name)
	}

	return newHandler
}
