// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package reclaim

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/platform-engineering-labs/devlaunch/internal/config"
)

// ErrInspectorUnavailable means no way of listing port holders exists on this
// host. Reclamation is skipped silently in that case.
var ErrInspectorUnavailable = errors.New("port inspector unavailable")

// Listener is a process holding a listening socket on the inspected port.
type Listener struct {
	PID  int32
	Addr string
}

type Inspector interface {
	Name() string
	Listeners(ctx context.Context, port string) ([]Listener, error)
}

// NewInspector builds the inspector selected by kind (see config.Inspector*).
func NewInspector(kind string) (Inspector, error) {
	switch kind {
	case config.InspectorAuto, config.InspectorLsof:
		path, err := exec.LookPath("lsof")
		if err != nil {
			return nil, fmt.Errorf("%w: lsof not found on PATH", ErrInspectorUnavailable)
		}
		return NewLsofInspector(path), nil
	case config.InspectorProc:
		return NewProcInspector(), nil
	case config.InspectorNone:
		return nil, fmt.Errorf("%w: disabled by configuration", ErrInspectorUnavailable)
	default:
		return nil, fmt.Errorf("unknown inspector %q", kind)
	}
}
