// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build !unix

package launch

import (
	"errors"
	"runtime"
)

type Execer interface {
	Exec(argv []string, env []string) error
}

type SyscallExecer struct{}

func (SyscallExecer) Exec(argv []string, _ []string) error {
	return &ExecError{Runner: argv[0], Code: 1, Err: errors.New("process replacement is not supported on " + runtime.GOOS)}
}
