// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

const (
	Tool   = "devlaunch"
	Banner = `
  ___  ___ __ __ _    __ _ _ _ _  _  ___ _  _
 |   \| __|\ V /| |  /  \ | | | \| |/ __| || |
 | |) | _|  \ / | |_| () | |_| | .' | (__| __ |
 |___/|___|  \_/ |____\__/ \___/|_|\_|\___|_||_|  vversion
`
)
