// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package launch

import "fmt"

const (
	ExitCannotExecute = 126
	ExitNotFound      = 127
)

// ExecError reports a failed process replacement together with the exit
// status a shell would have produced for it.
type ExecError struct {
	Runner string
	Code   int
	Err    error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Runner, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
