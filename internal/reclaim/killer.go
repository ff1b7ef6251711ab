// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package reclaim

import (
	"context"

	"github.com/shirou/gopsutil/v4/process"
)

type Killer interface {
	// Kill sends SIGKILL.
	Kill(ctx context.Context, pid int32) error
	// Terminate sends SIGTERM.
	Terminate(ctx context.Context, pid int32) error
}

type ProcessKiller struct{}

func (ProcessKiller) Kill(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return err
	}
	return p.KillWithContext(ctx)
}

func (ProcessKiller) Terminate(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return err
	}
	return p.TerminateWithContext(ctx)
}
