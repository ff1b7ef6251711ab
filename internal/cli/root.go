// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/platform-engineering-labs/devlaunch"
	"github.com/platform-engineering-labs/devlaunch/internal/cli/cmd"
	"github.com/platform-engineering-labs/devlaunch/internal/cli/display"
	"github.com/platform-engineering-labs/devlaunch/internal/cli/health"
	"github.com/platform-engineering-labs/devlaunch/internal/cli/ports"
	"github.com/platform-engineering-labs/devlaunch/internal/cli/run"
	"github.com/platform-engineering-labs/devlaunch/internal/cli/url"
	"github.com/platform-engineering-labs/devlaunch/internal/launch"
)

func longDescription() string {
	return display.Tool + ": " + display.Green("free the port, print the app URL, start the development server")
}

func init() {
	cobra.AddTemplateFunc("typeMap", func(cmds []*cobra.Command) map[string][]*cobra.Command {
		m := make(map[string][]*cobra.Command)
		for _, c := range cmds {
			if c.IsAvailableCommand() {
				t := c.Annotations["type"]
				if t == "" {
					t = "Tooling"
				}

				m[t] = append(m[t], c)
			}
		}
		return m
	})

	cobra.AddTemplateFunc("formatExamples", func(examples string, cmd *cobra.Command) string {
		cliName := cmd.Root().Name()
		cmdName := cmd.Name()
		replaced := strings.ReplaceAll(examples, "{{.Name}}", cliName)
		return strings.ReplaceAll(replaced, "{{.Command}}", cmdName)
	})

	cobra.AddTemplateFunc("optionsUsage", func(f *pflag.FlagSet) []string {
		var usage []string
		longestFlagName := 0

		f.VisitAll(func(flag *pflag.Flag) {
			length := len(flag.Name)
			if flag.Shorthand != "" {
				length += 6
			}

			if length > longestFlagName {
				longestFlagName = length
			}
		})

		longestFlagName += 10

		f.VisitAll(func(flag *pflag.Flag) {
			s := fmt.Sprintf("      --%s ", flag.Name)
			if flag.Shorthand != "" {
				s = fmt.Sprintf("  -%s, --%s ", flag.Shorthand, flag.Name)
			}

			s = fmt.Sprintf("%-*s%s", longestFlagName, s, flag.Usage)
			if flag.DefValue != "" &&
				flag.DefValue != "false" &&
				flag.DefValue != "0s" &&
				flag.Name != "help" &&
				flag.Name != "version" {
				s += display.Grey(fmt.Sprintf(" [default: %q]", flag.DefValue))
			}

			usage = append(usage, s)
		})
		return usage
	})
}

// NewRootCmd builds the command tree. Running the root command without a
// subcommand behaves like "run", so "devlaunch 8888" works as a drop-in for
// the old launcher script.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     display.Tool + " [PORT]",
		Short:   display.Tool + " CLI",
		Long:    longDescription(),
		Version: devlaunch.Version,
		Args:    cmd.PortArgs,
		PersistentPreRunE: func(command *cobra.Command, args []string) error {
			return cmd.LoadConfig(command)
		},
		RunE: func(command *cobra.Command, args []string) error {
			return run.Launch(command, args, false)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	hp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(command *cobra.Command, args []string) {
		display.PrintBanner(command.OutOrStdout())
		hp(command, args)
	})

	rootCmd.SetHelpCommand(&cobra.Command{
		Hidden: true,
	})

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SetUsageTemplate(cmd.RootCmdUsageTemplate)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cmd.FlagErrorWrap(err)
	})

	rootCmd.AddCommand(run.RunCmd())
	rootCmd.AddCommand(url.URLCmd())
	rootCmd.AddCommand(ports.PortsCmd())
	rootCmd.AddCommand(health.HealthCmd())

	rootCmd.PersistentFlags().String("config", "", "Path to the configuration file (default ~/.config/devlaunch/devlaunch.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Console log level (debug | info | warn | error | off)")
	rootCmd.PersistentFlags().String("log-file", "", "Also write debug logs to this file")

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for "+display.Tool)
	for _, command := range rootCmd.Commands() {
		command.PersistentFlags().BoolP("help", "h", false, fmt.Sprintf("Show help for %s command", command.Name()))
		command.SilenceUsage = true
	}

	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show "+display.Tool+" version information")
	rootCmd.SetVersionTemplate(fmt.Sprintf("devlaunch version: %s\ngo version: %s\n", devlaunch.Version, runtime.Version()))

	return rootCmd
}

func Start() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	command, err := NewRootCmd().ExecuteContextC(ctx)
	stop()

	os.Exit(exitCode(command, err))
}

func exitCode(command *cobra.Command, err error) int {
	if err == nil {
		return 0
	}

	display.Error(os.Stderr, err.Error())

	var flagErr *cmd.FlagError
	if errors.As(err, &flagErr) && command != nil {
		_ = command.Usage()
	}

	var execErr *launch.ExecError
	if errors.As(err, &execErr) {
		return execErr.Code
	}

	return 1
}
