package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/forria64/dolphinex/internal/harness"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dolphinex",
	Short: "Integration-test Internet Computer canisters through dfx",
	Long: `dolphinex drives the dfx tool through a full canister lifecycle
(create, build, install, id resolution), records pass/fail validations,
and guarantees teardown of every canister and ephemeral identity it
created, restoring your active dfx identity on every path.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid descriptors, failed deployments)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). Exit codes: 0 when all
// validations passed, 1 for a failed validation or command error, 2 for a
// startup error (malformed/missing input).
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "dolphinex version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		var startupErr *harness.StartupError
		if errors.As(err, &startupErr) {
			os.Exit(harness.ExitStartup)
		}
		// Cobra prints the error, we just exit non-zero
		os.Exit(harness.ExitValidationFailed)
	}
}

func init() {
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
