// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package run

import (
	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/devlaunch/internal/cli/cmd"
	"github.com/platform-engineering-labs/devlaunch/internal/launch"
	"github.com/platform-engineering-labs/devlaunch/internal/reclaim"
)

func RunCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "run [PORT]",
		Short: "Free the port, print the app URL and start the development server",
		Long: `Free the port, print the app URL and start the development server.

The port comes from the PORT environment variable, then the PORT argument,
then the configured default (8888). Whatever listens on the port is killed
first, along with earlier server invocations. The launcher then replaces
itself with the server, so its exit status is the server's.`,
		Args: cmd.PortArgs,
		RunE: func(command *cobra.Command, args []string) error {
			dryRun, _ := command.Flags().GetBool("dry-run")
			return Launch(command, args, dryRun)
		},
		Annotations: map[string]string{
			"type":     "Command",
			"args":     "[PORT]",
			"examples": "{{.Name}} {{.Command}} 8888",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().Bool("dry-run", false, "Print the URL, environment and server command without freeing the port or starting anything")

	return command
}

// Launch runs the launcher for command. On success it does not return.
func Launch(command *cobra.Command, args []string, dryRun bool) error {
	cfg, err := cmd.ConfigFromContext(command.Context())
	if err != nil {
		return err
	}

	if dryRun {
		launch.NewLauncher(cfg, nil, command.OutOrStdout()).DryRun(args)
		return nil
	}

	launcher := launch.NewLauncher(cfg, reclaim.New(cfg), command.OutOrStdout())
	return launcher.Run(command.Context(), args)
}
