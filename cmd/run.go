package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forria64/dolphinex/internal/config"
	"github.com/forria64/dolphinex/internal/dfx"
	"github.com/forria64/dolphinex/internal/harness"
	"github.com/forria64/dolphinex/internal/reporting"
	"github.com/forria64/dolphinex/pkg/logging"
)

// errValidationFailed signals a run that completed but recorded at least
// one failed validation.
var errValidationFailed = errors.New("one or more validations failed")

var (
	runFile    string
	runOutput  string
	runVerbose bool
	runDfxBin  string
	runArgsDir string
	runAdmin   string
	runKeep    bool
	runVars    []string
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [descriptor-json]",
		Short: "Deploy the selected canister and validate the outcome",
		Long: `Run one end-to-end validation: materialize init-argument templates,
deploy the selected canister through dfx (create, build, install, id),
record the pass/fail result, and tear down every canister and identity
the run created.

The run descriptor is a JSON document passed inline or via --file:

  dolphinex run '{"canisters": {"hello": {}}, "selected_canister": "hello"}'

Exit codes: 0 all validations passed, 1 validation failure, 2 startup
error (malformed or missing descriptor).`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRun,
	}

	cmd.Flags().StringVarP(&runFile, "file", "f", "", "Read the run descriptor from a file instead of the command line")
	cmd.Flags().StringVarP(&runOutput, "output", "o", "text", "Output format: text, quiet, or json")
	cmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Report every lifecycle step")
	cmd.Flags().StringVar(&runDfxBin, "dfx-bin", "", "Path to the dfx binary (overrides settings)")
	cmd.Flags().StringVar(&runArgsDir, "args-dir", "", "Directory for materialized argument files (overrides settings)")
	cmd.Flags().StringVar(&runAdmin, "admin-identity", "", "Administrative dfx identity (overrides settings)")
	cmd.Flags().BoolVar(&runKeep, "keep-resources", false, "Skip teardown, leaving canisters and identities in place")
	cmd.Flags().StringArrayVar(&runVars, "var", nil, "Template variable as key=value (repeatable, overrides settings)")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	level := logging.LevelWarn
	if runVerbose {
		level = logging.LevelDebug
	}
	logging.Init(level, os.Stderr)

	descriptor, err := loadDescriptor(args)
	if err != nil {
		return err
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return &harness.StartupError{Reason: err.Error()}
	}
	if runDfxBin != "" {
		settings.DfxBinary = runDfxBin
	}
	if runArgsDir != "" {
		settings.ArgsDir = runArgsDir
	}
	if runAdmin != "" {
		settings.AdminIdentity = runAdmin
	}
	for _, kv := range runVars {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			return fmt.Errorf("invalid --var '%s': expected key=value", kv)
		}
		if settings.TemplateVars == nil {
			settings.TemplateVars = make(map[string]string)
		}
		settings.TemplateVars[key] = value
	}

	reporter, err := buildReporter(runOutput, runVerbose)
	if err != nil {
		return err
	}

	h := harness.New(descriptor, harness.Options{
		Settings:      settings,
		Reporter:      reporter,
		Tool:          dfx.NewCLI(settings.DfxBinary),
		KeepResources: runKeep,
	})

	code, err := h.Run()
	if err != nil {
		return err
	}
	if code != harness.ExitOK {
		return errValidationFailed
	}
	return nil
}

// loadDescriptor reads the descriptor from --file or the inline argument.
// Every failure here is a startup error.
func loadDescriptor(args []string) (config.Descriptor, error) {
	var data []byte
	switch {
	case runFile != "":
		content, err := os.ReadFile(runFile)
		if err != nil {
			return config.Descriptor{}, &harness.StartupError{Reason: fmt.Sprintf("cannot read descriptor file: %v", err)}
		}
		data = content
	case len(args) == 1:
		data = []byte(args[0])
	default:
		return config.Descriptor{}, &harness.StartupError{Reason: "no descriptor provided: pass it inline or via --file"}
	}

	descriptor, err := config.ParseDescriptor(data)
	if err != nil {
		return config.Descriptor{}, &harness.StartupError{Reason: err.Error()}
	}
	return descriptor, nil
}

func buildReporter(output string, verbose bool) (reporting.Reporter, error) {
	switch output {
	case "text":
		return reporting.NewConsoleReporter(os.Stdout, verbose), nil
	case "quiet":
		return reporting.NewQuietReporter(os.Stdout), nil
	case "json":
		return reporting.NewJSONReporter(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unknown output format '%s': expected text, quiet, or json", output)
	}
}
