// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package ports

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/devlaunch/internal/cli/cmd"
	"github.com/platform-engineering-labs/devlaunch/internal/cli/printer"
	"github.com/platform-engineering-labs/devlaunch/internal/cli/renderer"
	"github.com/platform-engineering-labs/devlaunch/internal/launch"
	"github.com/platform-engineering-labs/devlaunch/internal/reclaim"
)

func PortsCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "ports [PORT]",
		Short: "Show which processes hold the port",
		Args:  cmd.PortArgs,
		RunE: func(command *cobra.Command, args []string) error {
			cfg, err := cmd.ConfigFromContext(command.Context())
			if err != nil {
				return err
			}

			opts := &PortsOptions{}
			outputConsumer, _ := command.Flags().GetString("output-consumer")
			opts.OutputConsumer = printer.Consumer(outputConsumer)
			opts.OutputSchema, _ = command.Flags().GetString("output-schema")
			if err := Validate(opts); err != nil {
				return err
			}

			port := launch.ResolvePort(os.Getenv, args, cfg.DefaultPort)

			inspector, err := reclaim.NewInspector(cfg.Inspector)
			if errors.Is(err, reclaim.ErrInspectorUnavailable) {
				slog.Debug("Falling back to the process table", "reason", err)
				inspector, err = reclaim.NewProcInspector(), nil
			}
			if err != nil {
				return err
			}

			holders, err := PortHolders(command.Context(), inspector, port)
			if err != nil {
				return err
			}

			report := &renderer.PortReport{Port: port, Holders: holders}
			if opts.OutputConsumer == printer.ConsumerMachine {
				return printer.NewMachineReadablePrinter[renderer.PortReport](command.OutOrStdout(), opts.OutputSchema).Print(report)
			}
			return printer.NewHumanReadablePrinter[renderer.PortReport](command.OutOrStdout()).Print(report)
		},
		Annotations: map[string]string{
			"type":     "Tooling",
			"args":     "[PORT]",
			"examples": "{{.Name}} {{.Command}} 8888",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().String("output-consumer", string(printer.ConsumerHuman), "Consumer of the command result (human | machine)")
	command.Flags().String("output-schema", "json", "The schema to use for the machine output (json | yaml)")

	return command
}

type PortsOptions struct {
	OutputConsumer printer.Consumer
	OutputSchema   string
}

func Validate(opts *PortsOptions) error {
	if opts.OutputConsumer != printer.ConsumerHuman && opts.OutputConsumer != printer.ConsumerMachine {
		return cmd.FlagErrorf("output consumer must be either 'human' or 'machine'")
	}
	if opts.OutputConsumer == printer.ConsumerMachine {
		if opts.OutputSchema != "json" && opts.OutputSchema != "yaml" {
			return cmd.FlagErrorf("output schema must be either 'json' or 'yaml' for machine consumer")
		}
	}

	return nil
}

func PortHolders(ctx context.Context, inspector reclaim.Inspector, port string) ([]renderer.PortHolder, error) {
	listeners, err := inspector.Listeners(ctx, port)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect port %s: %w", port, err)
	}

	holders := make([]renderer.PortHolder, 0, len(listeners))
	for _, l := range listeners {
		p := reclaim.Describe(ctx, l.PID)
		holders = append(holders, renderer.PortHolder{
			PID:     l.PID,
			Name:    p.Name,
			Addr:    l.Addr,
			Cmdline: p.Cmdline,
		})
	}

	return holders, nil
}
