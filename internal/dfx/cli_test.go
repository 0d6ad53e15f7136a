package dfx

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeStubBinary places a shell script named "dfx" into a temp dir and
// prepends that dir to PATH, so CLI invocations hit the stub instead of a
// real dfx installation.
func writeStubBinary(t *testing.T, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub shell script not supported on windows")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "dfx")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("Failed to write stub binary: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestWhoamiTrimsOutput(t *testing.T) {
	writeStubBinary(t, `echo "alice"`)

	cli := NewCLI("")
	got, err := cli.Whoami()
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
}

func TestRunCapturesExitCodeAndOutput(t *testing.T) {
	writeStubBinary(t, `echo "boom"; exit 3`)

	cli := NewCLI("")
	err := cli.Build("foo")
	require.Error(t, err)

	var execErr *ExecError
	require.True(t, errors.As(err, &execErr), "error should wrap *ExecError, got %v", err)
	assert.Equal(t, 3, execErr.ExitCode)
	assert.Contains(t, execErr.Output, "boom")
	assert.Equal(t, []string{"build", "foo"}, execErr.Args)
}

func TestInstallPassesArgumentFileContent(t *testing.T) {
	dir := t.TempDir()
	recorded := filepath.Join(dir, "invocation.txt")
	argFile := filepath.Join(dir, "init.candid")
	require.NoError(t, os.WriteFile(argFile, []byte(`(record { owner = principal "aaaa" })`), 0o644))

	writeStubBinary(t, `printf '%s\n' "$@" > `+recorded)

	cli := NewCLI("")
	require.NoError(t, cli.Install("foo", argFile))

	data, err := os.ReadFile(recorded)
	require.NoError(t, err)
	assert.Contains(t, string(data), "--argument")
	assert.Contains(t, string(data), `owner = principal "aaaa"`)
}

func TestInstallWithoutArgumentFile(t *testing.T) {
	dir := t.TempDir()
	recorded := filepath.Join(dir, "invocation.txt")
	writeStubBinary(t, `printf '%s\n' "$@" > `+recorded)

	cli := NewCLI("")
	require.NoError(t, cli.Install("foo", ""))

	data, err := os.ReadFile(recorded)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "--argument")
}

func TestInstallMissingArgumentFile(t *testing.T) {
	writeStubBinary(t, `exit 0`)

	cli := NewCLI("")
	err := cli.Install("foo", filepath.Join(t.TempDir(), "does-not-exist.candid"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "argument file")
}

func TestExecErrorMessageIncludesOutput(t *testing.T) {
	err := &ExecError{Args: []string{"canister", "create", "foo"}, ExitCode: 255, Output: "no wallet configured\n"}
	assert.Contains(t, err.Error(), "canister create foo")
	assert.Contains(t, err.Error(), "255")
	assert.Contains(t, err.Error(), "no wallet configured")
}
