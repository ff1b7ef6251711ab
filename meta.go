// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package devlaunch

var Version = "0.0.0"

const (
	DefaultPort   = "8888"
	DefaultDomain = "ksm.domino.tech"
	DefaultHost   = "0.0.0.0"
)
