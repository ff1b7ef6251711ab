// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/platform-engineering-labs/devlaunch/internal/cli/display"
)

// PortHolder is one row of the ports table.
type PortHolder struct {
	PID     int32  `json:"pid" yaml:"pid"`
	Name    string `json:"name" yaml:"name"`
	Addr    string `json:"addr" yaml:"addr"`
	Cmdline string `json:"cmdline" yaml:"cmdline"`
}

type PortReport struct {
	Port    string       `json:"port" yaml:"port"`
	Holders []PortHolder `json:"holders" yaml:"holders"`
}

const maxCmdlineWidth = 60

func RenderPortHolders(port string, holders []PortHolder) (string, error) {
	if len(holders) == 0 {
		return display.Green(fmt.Sprintf("Port %s is free.\n", port)), nil
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRowAutoWrap(tw.WrapBreak),
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.Off}},
		})))

	table.Header(display.LightBlue("PID"), "Name", "Address", display.Grey("Command"))

	data := make([][]any, len(holders))
	for i, h := range holders {
		data[i] = []any{
			display.LightBlue(fmt.Sprintf("%d", h.PID)),
			h.Name,
			h.Addr,
			display.Grey(truncate(h.Cmdline, maxCmdlineWidth)),
		}
	}

	if err := table.Bulk(data); err != nil {
		return "", fmt.Errorf("error formatting port holders: %v", err)
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("error rendering port holders: %v", err)
	}

	return display.Gold(fmt.Sprintf("Port %s is held by:\n", port)) + buf.String(), nil
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
