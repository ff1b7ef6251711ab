// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/devlaunch/internal/cli/display"
	"github.com/platform-engineering-labs/devlaunch/internal/config"
	"github.com/platform-engineering-labs/devlaunch/internal/logging"
)

var RootCmdUsageTemplate = display.Grey("Usage: ") + display.Green("{{.CommandPath}} [OPTIONS]{{if .HasAvailableSubCommands}} [COMMAND]{{end}}\n") +
	"{{if .HasAvailableSubCommands}}\n" + display.Gold("Commands:") + "{{$types := typeMap .Commands}}" +
	"{{$first := true}}{{range $type, $cmds := $types}}" +
	"{{if $first}}{{$first = false}}{{else}}\n{{end}}\n  " + display.Gold("{{$type}}:") +
	"{{range $cmd := $cmds}}\n    " + display.Green("{{rpad $cmd.Name $cmd.NamePadding}}") + "     {{$cmd.Short}}" +
	"{{if (index $cmd.Annotations \"examples\")}}\n                   " +
	display.Grey("  {{formatExamples (index $cmd.Annotations \"examples\") $cmd}}") + "{{end}}" +
	"{{end}}{{end}}\n{{end}}" +
	"{{if .HasAvailableLocalFlags}}\n" + display.Gold("Options:\n") +
	"{{range .LocalFlags | optionsUsage}}{{.}}\n{{end}}" +
	"{{end}}\n"

var SimpleCmdUsageTemplate = display.Grey("Usage: ") + display.Green("{{.CommandPath}}{{if .HasAvailableLocalFlags}} [OPTIONS]{{end}}") +
	display.Green("{{if index .Annotations \"args\"}} {{index .Annotations \"args\"}}{{end}}") + "\n" +
	"{{if .HasAvailableLocalFlags}}\n" + display.Gold("Options:\n") +
	"{{range .LocalFlags | optionsUsage}}{{.}}\n{{end}}" +
	"{{end}}" +
	"{{if .HasAvailableInheritedFlags}}\n" + display.Gold("Global options:\n") +
	"{{range .InheritedFlags | optionsUsage}}{{.}}\n{{end}}" +
	"{{end}}\n"

type contextKey string

const configKey contextKey = "config"

// LoadConfig reads the persistent --config/--log-level/--log-file flags,
// loads the configuration, sets up logging and stores the result on the
// command's context.
func LoadConfig(command *cobra.Command) error {
	path, _ := command.Flags().GetString("config")
	explicit := path != ""
	if !explicit {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(path, explicit, os.Getenv)
	if err != nil {
		return err
	}

	if command.Flags().Changed("log-level") {
		cfg.LogLevel, _ = command.Flags().GetString("log-level")
	}
	if command.Flags().Changed("log-file") {
		cfg.LogFile, _ = command.Flags().GetString("log-file")
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return FlagErrorWrap(err)
	}
	if err := logging.SetupLauncherLogging(level, cfg.LogFile); err != nil {
		return err
	}

	ctx := command.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	command.SetContext(context.WithValue(ctx, configKey, cfg))

	return nil
}

var ErrConfigNotLoaded = errors.New("configuration not loaded")

func ConfigFromContext(ctx context.Context) (*config.Config, error) {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
			return cfg, nil
		}
	}

	return nil, ErrConfigNotLoaded
}

// PortArgs accepts zero or one positional port argument.
func PortArgs(command *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(command, args); err != nil {
		return FlagErrorWrap(err)
	}
	return nil
}
