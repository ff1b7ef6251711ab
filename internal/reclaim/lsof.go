// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package reclaim

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// LsofInspector asks lsof for the PIDs listening on a TCP port.
type LsofInspector struct {
	path string
	run  commandRunner
}

func NewLsofInspector(path string) *LsofInspector {
	return &LsofInspector{path: path, run: runCommand}
}

func (i *LsofInspector) Name() string { return "lsof" }

func (i *LsofInspector) Listeners(ctx context.Context, port string) ([]Listener, error) {
	out, err := i.run(ctx, i.path, "-nP", "-t", "-iTCP:"+port, "-sTCP:LISTEN")
	if err != nil {
		// lsof exits 1 when nothing matches
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && len(bytes.TrimSpace(out)) == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("lsof failed for port %s: %w", port, err)
	}

	return parseLsofPIDs(out, port)
}

func parseLsofPIDs(out []byte, port string) ([]Listener, error) {
	var listeners []Listener
	seen := make(map[int32]bool)

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		pid, err := strconv.ParseInt(line, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("unexpected lsof output %q: %w", line, err)
		}
		if seen[int32(pid)] {
			continue
		}
		seen[int32(pid)] = true

		listeners = append(listeners, Listener{PID: int32(pid), Addr: "*:" + port})
	}

	return listeners, scanner.Err()
}
