// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/devlaunch/internal/cli/renderer"
)

func TestMachineReadablePrinter(t *testing.T) {
	report := renderer.PortReport{
		Port: "8888",
		Holders: []renderer.PortHolder{
			{PID: 4711, Name: "python3", Addr: "0.0.0.0:8888", Cmdline: "flask run --port 8888"},
		},
	}

	t.Run("prints json objects", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		printer := NewMachineReadablePrinter[renderer.PortReport](buf, "json")
		err := printer.Print(&report)
		assert.NoError(t, err)
		expected := `{"port":"8888","holders":[{"pid":4711,"name":"python3","addr":"0.0.0.0:8888","cmdline":"flask run --port 8888"}]}` + "\n"
		assert.Equal(t, expected, buf.String())
	})

	t.Run("prints yaml", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		printer := NewMachineReadablePrinter[renderer.PortReport](buf, "yaml")
		err := printer.Print(&report)
		assert.NoError(t, err)

		var result renderer.PortReport
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, report, result)
		assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		printer := NewMachineReadablePrinter[renderer.PortReport](bytes.NewBuffer(nil), "xml")
		assert.ErrorContains(t, printer.Print(&report), "unsupported format: xml")
	})
}

func TestHumanReadablePrinter(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	printer := NewHumanReadablePrinter[renderer.PortReport](buf)

	require.NoError(t, printer.Print(&renderer.PortReport{Port: "8888"}))
	assert.Contains(t, buf.String(), "Port 8888 is free.")

	other := NewHumanReadablePrinter[string](buf)
	s := "nope"
	assert.ErrorContains(t, other.Print(&s), "unsupported type")
}
