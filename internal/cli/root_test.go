// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package cli

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-engineering-labs/devlaunch/internal/cli/cmd"
	"github.com/platform-engineering-labs/devlaunch/internal/launch"
)

func stripAnsiCodes(t *testing.T, s string) string {
	t.Helper()

	ansi := regexp.MustCompile("\x1b\\[[0-9;]*m")
	return ansi.ReplaceAllString(s, "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--log-level", "off"}, args...))

	err := root.Execute()
	return stripAnsiCodes(t, out.String()), err
}

func emptyConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "devlaunch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0600))
	return path
}

func TestURLCommand_ProxyURL(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DOMINO_DOMAIN", "")
	t.Setenv("DOMINO_RUN_HOST_PATH", "/r/myrun/r")

	out, err := execute(t, "--config", emptyConfig(t), "url")
	require.NoError(t, err)

	assert.Equal(t, "https://ksm.domino.tech/myrunproxy/8888/\n", out)
}

func TestURLCommand_LocalFallbackWithPositionalPort(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DOMINO_RUN_HOST_PATH", "")

	out, err := execute(t, "--config", emptyConfig(t), "url", "5000")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/\n", out)
}

func TestURLCommand_PortEnvironmentWins(t *testing.T) {
	t.Setenv("PORT", "7100")
	t.Setenv("DOMINO_DOMAIN", "other.domino.tech")
	t.Setenv("DOMINO_RUN_HOST_PATH", "/r/abc/r")

	out, err := execute(t, "--config", emptyConfig(t), "url", "5000")
	require.NoError(t, err)

	assert.Equal(t, "https://other.domino.tech/abcproxy/7100/\n", out)
}

func TestRunCommand_DryRun(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DOMINO_RUN_HOST_PATH", "")

	out, err := execute(t, "--config", emptyConfig(t), "run", "--dry-run", "6001")
	require.NoError(t, err)

	assert.Contains(t, out, "http://localhost:6001/")
	assert.Contains(t, out, "FLASK_APP=app.py")
	assert.Contains(t, out, "flask run --host 0.0.0.0 --port 6001")
}

func TestRootCommand_TooManyArguments(t *testing.T) {
	_, err := execute(t, "--config", emptyConfig(t), "url", "1", "2")

	var flagErr *cmd.FlagError
	assert.ErrorAs(t, err, &flagErr)
}

func TestRootCommand_MissingExplicitConfig(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "url")

	assert.ErrorContains(t, err, "failed to read config file")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil, nil))
	assert.Equal(t, 1, exitCode(nil, errors.New("boom")))
	assert.Equal(t, launch.ExitNotFound, exitCode(nil, &launch.ExecError{Runner: "flask", Code: launch.ExitNotFound, Err: errors.New("not found")}))
}

func TestHealthCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/_stcore/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	out, err := execute(t, "--config", emptyConfig(t), "health", "--url", srv.URL+"/_stcore/health")
	require.NoError(t, err)
	assert.Contains(t, out, "Healthy: "+srv.URL+"/_stcore/health")

	_, err = execute(t, "--config", emptyConfig(t), "health", "--url", srv.URL+"/missing")
	assert.ErrorContains(t, err, "unexpected status code: 404")

	_, err = execute(t, "--config", emptyConfig(t), "health", "--timeout", "0s")
	var flagErr *cmd.FlagError
	assert.ErrorAs(t, err, &flagErr)
}
