// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package reclaim

import (
	"context"
	"fmt"
	"net"
	"strconv"

	gnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// ProcInspector reads the kernel's socket table through gopsutil and needs no
// external utility.
type ProcInspector struct {
	connections func(ctx context.Context) ([]gnet.ConnectionStat, error)
}

func NewProcInspector() *ProcInspector {
	return &ProcInspector{
		connections: func(ctx context.Context) ([]gnet.ConnectionStat, error) {
			return gnet.ConnectionsWithContext(ctx, "tcp")
		},
	}
}

func (i *ProcInspector) Name() string { return "proc" }

func (i *ProcInspector) Listeners(ctx context.Context, port string) ([]Listener, error) {
	want, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("port %q is not a TCP port number: %w", port, err)
	}

	conns, err := i.connections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tcp connections: %w", err)
	}

	var listeners []Listener
	seen := make(map[int32]bool)
	for _, c := range conns {
		if c.Status != "LISTEN" || c.Laddr.Port != uint32(want) || c.Pid <= 0 {
			continue
		}
		if seen[c.Pid] {
			continue
		}
		seen[c.Pid] = true

		listeners = append(listeners, Listener{
			PID:  c.Pid,
			Addr: net.JoinHostPort(c.Laddr.IP, strconv.FormatUint(uint64(c.Laddr.Port), 10)),
		})
	}

	return listeners, nil
}

// Process describes a running process for display and pattern matching.
type Process struct {
	PID     int32
	Name    string
	Cmdline string
}

// Describe fills in name and command line for pid. Missing details (exited
// processes, permission errors) are left empty.
func Describe(ctx context.Context, pid int32) Process {
	desc := Process{PID: pid}

	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return desc
	}
	desc.Name, _ = p.NameWithContext(ctx)
	desc.Cmdline, _ = p.CmdlineWithContext(ctx)

	return desc
}

// ListProcesses returns every process whose command line is readable.
func ListProcesses(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	result := make([]Process, 0, len(procs))
	for _, p := range procs {
		cmdline, err := p.CmdlineWithContext(ctx)
		if err != nil || cmdline == "" {
			continue
		}
		name, _ := p.NameWithContext(ctx)
		result = append(result, Process{PID: p.Pid, Name: name, Cmdline: cmdline})
	}

	return result, nil
}
