package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes. Fatal errors and threshold failures share ExitFailure.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

var rootCmd = &cobra.Command{
	Use:   "driftgate",
	Short: "Gate CI on environment configuration drift",
	Long: "driftgate asks a drift-monitoring API to compare environments against a baseline, " +
		"prints the result with CI annotations, and fails when the risk meets the fail-on threshold.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		runCheck(cmd)
		return nil
	},
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// Run executes the root command and returns an exit code.
func Run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	exitCode = ExitSuccess
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Cobra already prints the error
		return ExitFailure
	}
	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print driftgate version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "driftgate version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	addCheckFlags(rootCmd)
}
