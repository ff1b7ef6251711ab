// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unix

package launch

import (
	"errors"
	"os/exec"
	"syscall"
)

// Execer replaces the running process with argv. On success it never returns.
type Execer interface {
	Exec(argv []string, env []string) error
}

type SyscallExecer struct{}

func (SyscallExecer) Exec(argv []string, env []string) error {
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return &ExecError{Runner: argv[0], Code: ExitNotFound, Err: err}
	}

	if err := syscall.Exec(path, argv, env); err != nil {
		code := 1
		if errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.ENOEXEC) {
			code = ExitCannotExecute
		}
		return &ExecError{Runner: argv[0], Code: code, Err: err}
	}

	return nil
}
