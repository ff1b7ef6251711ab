// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), false, envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "ksm.domino.tech", cfg.Domain)
	assert.Equal(t, "8888", cfg.DefaultPort)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, time.Second, cfg.Settle)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), true, envOf(nil))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
domain: example.domino.tech
default_port: "9000"
settle: 250ms
stray_pattern: "gunicorn app"
inspector: proc
`)

	cfg, err := Load(path, true, envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, "example.domino.tech", cfg.Domain)
	assert.Equal(t, "9000", cfg.DefaultPort)
	assert.Equal(t, 250*time.Millisecond, cfg.Settle)
	assert.Equal(t, "gunicorn app", cfg.StrayPattern)
	assert.Equal(t, InspectorProc, cfg.Inspector)
	assert.Equal(t, "flask", cfg.Runner)
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	path := writeConfig(t, "domain: file.domino.tech\n")

	cfg, err := Load(path, true, envOf(map[string]string{
		EnvDomain:      "env.domino.tech",
		EnvRunHostPath: "/r/myrun/r",
	}))
	require.NoError(t, err)

	assert.Equal(t, "env.domino.tech", cfg.Domain)
	assert.Equal(t, "/r/myrun/r", cfg.RunHostPath)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeConfig(t, "domain: [unterminated\n")

	_, err := Load(path, true, envOf(nil))
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Inspector = "netstat"
	assert.ErrorContains(t, cfg.Validate(), "inspector must be one of")

	cfg = Default()
	cfg.Settle = -time.Second
	assert.ErrorContains(t, cfg.Validate(), "settle must not be negative")

	cfg = Default()
	cfg.LogLevel = "chatty"
	assert.ErrorContains(t, cfg.Validate(), "unknown log level")

	assert.NoError(t, Default().Validate())
}
