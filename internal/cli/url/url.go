// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package url

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/devlaunch/internal/cli/cmd"
	"github.com/platform-engineering-labs/devlaunch/internal/launch"
)

func URLCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "url [PORT]",
		Short: "Print the URL the app will be reachable at",
		Args:  cmd.PortArgs,
		RunE: func(command *cobra.Command, args []string) error {
			cfg, err := cmd.ConfigFromContext(command.Context())
			if err != nil {
				return err
			}

			plan := launch.NewLauncher(cfg, nil, command.OutOrStdout()).Plan(args)
			_, err = fmt.Fprintln(command.OutOrStdout(), plan.URL)
			return err
		},
		Annotations: map[string]string{
			"type":     "Tooling",
			"args":     "[PORT]",
			"examples": "{{.Name}} {{.Command}}",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	return command
}
