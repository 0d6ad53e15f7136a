package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forria64/dolphinex/internal/harness"
)

func resetRunFlags() {
	runFile = ""
	runOutput = "text"
	runVerbose = false
	runDfxBin = ""
	runArgsDir = ""
	runAdmin = ""
	runKeep = false
	runVars = nil
}

// writeStubDfx writes a shell script standing in for dfx and returns its
// path.
func writeStubDfx(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub shell script not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "dfx")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

const happyStub = `case "$1 $2" in
"identity whoami") echo default ;;
"identity get-principal") echo aaaaa-aa ;;
"canister id") echo rrkah-fqaaa-aaaaa-aaaaq-cai ;;
*) : ;;
esac
exit 0
`

func TestNewRunCmd(t *testing.T) {
	cmd := newRunCmd()
	assert.Equal(t, "run", cmd.Name())
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.RunE)
	for _, flag := range []string{"file", "output", "verbose", "dfx-bin", "args-dir", "admin-identity", "keep-resources", "var"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %s should be registered", flag)
	}
}

func TestLoadDescriptorInline(t *testing.T) {
	resetRunFlags()

	d, err := loadDescriptor([]string{`{"canisters": {"foo": {}}, "selected_canister": "foo"}`})
	require.NoError(t, err)
	assert.Equal(t, "foo", d.SelectedCanister)
}

func TestLoadDescriptorFromFile(t *testing.T) {
	resetRunFlags()
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"canisters": {"bar": {}}, "selected_canister": "bar"}`), 0o644))
	runFile = path
	defer resetRunFlags()

	d, err := loadDescriptor(nil)
	require.NoError(t, err)
	assert.Equal(t, "bar", d.SelectedCanister)
}

func TestLoadDescriptorErrorsAreStartupErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T)
		args  []string
	}{
		{"no input at all", func(t *testing.T) {}, nil},
		{"malformed inline JSON", func(t *testing.T) {}, []string{`{"canisters": `}},
		{"unreadable file", func(t *testing.T) {
			runFile = filepath.Join(t.TempDir(), "absent.json")
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetRunFlags()
			defer resetRunFlags()
			tt.setup(t)

			_, err := loadDescriptor(tt.args)
			var startupErr *harness.StartupError
			assert.True(t, errors.As(err, &startupErr), "expected StartupError, got %v", err)
		})
	}
}

func TestBuildReporter(t *testing.T) {
	for _, output := range []string{"text", "quiet", "json"} {
		r, err := buildReporter(output, false)
		assert.NoError(t, err, "output format %s", output)
		assert.NotNil(t, r)
	}

	_, err := buildReporter("xml", false)
	assert.Error(t, err)
}

func TestRunRunEndToEnd(t *testing.T) {
	resetRunFlags()
	defer resetRunFlags()
	runDfxBin = writeStubDfx(t, happyStub)
	runArgsDir = filepath.Join(t.TempDir(), "args")
	runOutput = "quiet"

	err := runRun(nil, []string{`{"canisters": {"foo": {}}, "selected_canister": "foo"}`})
	assert.NoError(t, err)
}

func TestRunRunBuildFailure(t *testing.T) {
	resetRunFlags()
	defer resetRunFlags()
	runDfxBin = writeStubDfx(t, `case "$1 $2" in
"identity whoami") echo default ;;
esac
[ "$1" = "build" ] && exit 1
exit 0
`)
	runArgsDir = filepath.Join(t.TempDir(), "args")
	runOutput = "quiet"

	err := runRun(nil, []string{`{"canisters": {"foo": {}}, "selected_canister": "foo"}`})
	assert.ErrorIs(t, err, errValidationFailed)
}

func TestRunRunMissingSelectedCanister(t *testing.T) {
	resetRunFlags()
	defer resetRunFlags()
	runOutput = "quiet"

	err := runRun(nil, []string{`{"canisters": {"foo": {}}}`})
	var startupErr *harness.StartupError
	assert.True(t, errors.As(err, &startupErr))
}

func TestRunRunInvalidVar(t *testing.T) {
	resetRunFlags()
	defer resetRunFlags()
	runVars = []string{"not-a-pair"}

	err := runRun(nil, []string{`{"canisters": {"foo": {}}, "selected_canister": "foo"}`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key=value")
}
