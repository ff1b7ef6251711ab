// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package reclaim frees a TCP port before the development server binds it.
// Every operation here is best-effort: failures are logged and swallowed.
package reclaim

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"regexp"
	"time"

	"github.com/platform-engineering-labs/devlaunch/internal/config"
)

type Reclaimer struct {
	inspector  Inspector
	inspectErr error
	killer     Killer
	processes  func(ctx context.Context) ([]Process, error)
	settle     time.Duration
	sleep      func(ctx context.Context, d time.Duration)
	self       int32
}

func New(cfg *config.Config) *Reclaimer {
	inspector, err := NewInspector(cfg.Inspector)
	return &Reclaimer{
		inspector:  inspector,
		inspectErr: err,
		killer:     ProcessKiller{},
		processes:  ListProcesses,
		settle:     cfg.Settle,
		sleep:      sleepContext,
		self:       int32(os.Getpid()),
	}
}

// ReclaimPort kills whatever listens on port and then waits for the settle
// interval so the kernel can release the socket. Without an inspector it does
// nothing.
func (r *Reclaimer) ReclaimPort(ctx context.Context, port string) {
	if r.inspector == nil {
		if errors.Is(r.inspectErr, ErrInspectorUnavailable) {
			slog.Debug("Skipping port reclamation", "port", port, "reason", r.inspectErr)
		} else {
			slog.Warn("Skipping port reclamation", "port", port, "error", r.inspectErr)
		}
		return
	}

	listeners, err := r.inspector.Listeners(ctx, port)
	if err != nil {
		slog.Warn("Failed to inspect port", "port", port, "inspector", r.inspector.Name(), "error", err)
	}

	for _, l := range listeners {
		if l.PID == r.self {
			continue
		}
		if err := r.killer.Kill(ctx, l.PID); err != nil {
			slog.Warn("Failed to kill port holder", "port", port, "pid", l.PID, "error", err)
			continue
		}
		slog.Info("Killed port holder", "port", port, "pid", l.PID)
	}

	r.sleep(ctx, r.settle)
}

// KillStrays terminates earlier server invocations whose command line matches
// pattern, a regular expression as accepted by pkill -f.
func (r *Reclaimer) KillStrays(ctx context.Context, pattern string) {
	if pattern == "" {
		return
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		slog.Warn("Invalid stray process pattern", "pattern", pattern, "error", err)
		return
	}

	procs, err := r.processes(ctx)
	if err != nil {
		slog.Warn("Failed to list processes", "error", err)
		return
	}

	for _, pid := range matchStrays(procs, re, r.self) {
		if err := r.killer.Terminate(ctx, pid); err != nil {
			slog.Debug("Failed to terminate stray process", "pid", pid, "error", err)
			continue
		}
		slog.Info("Terminated stray process", "pid", pid, "pattern", pattern)
	}
}

func matchStrays(procs []Process, re *regexp.Regexp, self int32) []int32 {
	var pids []int32
	for _, p := range procs {
		if p.PID == self || !re.MatchString(p.Cmdline) {
			continue
		}
		pids = append(pids, p.PID)
	}
	return pids
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
