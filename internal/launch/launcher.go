// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package launch turns a configuration and the command line into a running
// development server: resolve the port, reclaim it, announce the URL, exec.
package launch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/platform-engineering-labs/devlaunch/internal/cli/display"
	"github.com/platform-engineering-labs/devlaunch/internal/config"
)

// Reclaimer frees the port before launch. Implementations must not fail the
// launch; they log and move on.
type Reclaimer interface {
	ReclaimPort(ctx context.Context, port string)
	KillStrays(ctx context.Context, pattern string)
}

// Plan is everything needed to start the server, computed without side effects.
type Plan struct {
	Port    string
	URL     string
	Proxied bool
	Argv    []string
	Env     map[string]string
}

type Launcher struct {
	cfg       *config.Config
	reclaimer Reclaimer
	execer    Execer
	out       io.Writer
	getenv    func(string) string
	environ   func() []string
}

func NewLauncher(cfg *config.Config, reclaimer Reclaimer, out io.Writer) *Launcher {
	return &Launcher{
		cfg:       cfg,
		reclaimer: reclaimer,
		execer:    SyscallExecer{},
		out:       out,
		getenv:    os.Getenv,
		environ:   os.Environ,
	}
}

func (l *Launcher) Plan(args []string) *Plan {
	port := ResolvePort(l.getenv, args, l.cfg.DefaultPort)
	url, proxied := PublicURL(l.cfg.Domain, l.cfg.RunHostPath, port)

	return &Plan{
		Port:    port,
		URL:     url,
		Proxied: proxied,
		Argv:    []string{l.cfg.Runner, "run", "--host", l.cfg.Host, "--port", port},
		Env: map[string]string{
			config.EnvFlaskApp: l.cfg.FlaskApp,
			config.EnvFlaskEnv: l.cfg.FlaskEnv,
		},
	}
}

// Run executes the plan. It only returns on failure: a successful exec
// replaces the process.
func (l *Launcher) Run(ctx context.Context, args []string) error {
	plan := l.Plan(args)

	fmt.Fprintln(l.out, display.Gold("==> Freeing port "+plan.Port))
	l.reclaimer.ReclaimPort(ctx, plan.Port)
	l.reclaimer.KillStrays(ctx, l.cfg.StrayPattern)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("launch interrupted: %w", err)
	}

	l.Announce(plan)

	fmt.Fprintln(l.out, display.Gold("==> Starting "+strings.Join(plan.Argv, " ")))
	slog.Debug("Replacing process", "argv", plan.Argv, "env", plan.Env)

	return l.execer.Exec(plan.Argv, MergeEnv(l.environ(), plan.Env))
}

// Announce prints the URL under which the server will be reachable.
func (l *Launcher) Announce(plan *Plan) {
	if plan.Proxied {
		fmt.Fprintln(l.out, display.Green("App URL: ")+plan.URL)
		return
	}
	fmt.Fprintln(l.out, display.Grey("DOMINO_RUN_HOST_PATH not set, running locally at ")+plan.URL)
}

// DryRun prints the plan instead of acting on it.
func (l *Launcher) DryRun(args []string) {
	plan := l.Plan(args)

	l.Announce(plan)
	for _, key := range slices.Sorted(maps.Keys(plan.Env)) {
		fmt.Fprintf(l.out, "%s=%s\n", key, plan.Env[key])
	}
	fmt.Fprintln(l.out, strings.Join(plan.Argv, " "))
}

// MergeEnv overlays overrides on a KEY=VALUE environment, replacing existing
// keys in place and appending new ones in sorted order.
func MergeEnv(base []string, overrides map[string]string) []string {
	merged := make([]string, 0, len(base)+len(overrides))
	applied := make(map[string]bool, len(overrides))

	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if v, ok := overrides[key]; ok {
			if applied[key] {
				continue
			}
			merged = append(merged, key+"="+v)
			applied[key] = true
			continue
		}
		merged = append(merged, kv)
	}

	for _, key := range slices.Sorted(maps.Keys(overrides)) {
		if !applied[key] {
			merged = append(merged, key+"="+overrides[key])
		}
	}

	return merged
}
