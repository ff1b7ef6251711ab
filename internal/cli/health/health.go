// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package health

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/devlaunch/internal/cli/cmd"
	"github.com/platform-engineering-labs/devlaunch/internal/cli/display"
	"github.com/platform-engineering-labs/devlaunch/internal/health"
	"github.com/platform-engineering-labs/devlaunch/internal/launch"
)

type HealthOptions struct {
	Port    string
	URL     string
	Wait    time.Duration
	Timeout time.Duration
}

func HealthCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "health [PORT]",
		Short: "Check that the running app answers its health route",
		Args:  cmd.PortArgs,
		RunE: func(command *cobra.Command, args []string) error {
			cfg, err := cmd.ConfigFromContext(command.Context())
			if err != nil {
				return err
			}

			opts := &HealthOptions{}
			opts.URL, _ = command.Flags().GetString("url")
			opts.Wait, _ = command.Flags().GetDuration("wait")
			opts.Timeout, _ = command.Flags().GetDuration("timeout")
			opts.Port = launch.ResolvePort(os.Getenv, args, cfg.DefaultPort)
			if opts.URL == "" {
				opts.URL = health.URL(opts.Port, cfg.HealthPath)
			}

			if err := Validate(opts); err != nil {
				return err
			}

			prober := health.NewProber(opts.Timeout)
			//nolint:errcheck
			defer prober.Close()

			if opts.Wait > 0 {
				err = prober.WaitHealthy(command.Context(), opts.URL, opts.Wait)
			} else {
				err = prober.Check(command.Context(), opts.URL)
			}
			if err != nil {
				return err
			}

			display.Success(command.OutOrStdout(), "Healthy: "+opts.URL)
			return nil
		},
		Annotations: map[string]string{
			"type":     "Tooling",
			"args":     "[PORT]",
			"examples": "{{.Name}} {{.Command}} --wait 30s",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().String("url", "", "Probe this URL instead of the local health route")
	command.Flags().Duration("wait", 0, "Keep polling once per second until healthy or this much time has passed")
	command.Flags().Duration("timeout", 5*time.Second, "Timeout for a single request")

	return command
}

func Validate(opts *HealthOptions) error {
	if opts.Wait < 0 {
		return cmd.FlagErrorf("--wait must not be negative")
	}
	if opts.Timeout <= 0 {
		return cmd.FlagErrorf("--timeout must be positive")
	}
	return nil
}
