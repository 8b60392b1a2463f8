package cli

import (
	"fmt"
	"os"

	"github.com/dshills/driftgate/internal/api"
	"github.com/dshills/driftgate/internal/config"
	"github.com/dshills/driftgate/internal/gate"
	"github.com/dshills/driftgate/internal/github"
	"github.com/dshills/driftgate/internal/redact"
	"github.com/spf13/cobra"
)

// Check flags, shared by the root command and "check".
var (
	flagAPIURL        string
	flagBaseline      string
	flagEnvironments  string
	flagFailOn        string
	flagNoAnnotate    bool
	flagTimeout       string
	flagStrict        bool
	flagReportFile    string
	flagNoStepSummary bool
)

func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Drift API base URL")
	cmd.Flags().StringVar(&flagBaseline, "baseline", "", "Baseline environment (default production)")
	cmd.Flags().StringVar(&flagEnvironments, "environments", "", "Environments to compare (comma-separated)")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Fail when risk is at or above this level (low, medium, high)")
	cmd.Flags().BoolVar(&flagNoAnnotate, "no-annotate", false, "Do not emit ::error::/::warning::/::notice:: annotations")
	cmd.Flags().StringVar(&flagTimeout, "timeout", "", "Request timeout, e.g. 30s (default: wait indefinitely)")
	cmd.Flags().BoolVar(&flagStrict, "strict", false, "Reject unknown risk levels instead of treating them as low")
	cmd.Flags().StringVar(&flagReportFile, "report-file", "", "Write the JSON report to this path")
	cmd.Flags().BoolVar(&flagNoStepSummary, "no-step-summary", false, "Do not append to $GITHUB_STEP_SUMMARY")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagAPIURL != "" {
		m["apiUrl"] = flagAPIURL
	}
	if flagBaseline != "" {
		m["baseline"] = flagBaseline
	}
	if flagEnvironments != "" {
		m["environments"] = flagEnvironments
	}
	if flagFailOn != "" {
		m["failOn"] = flagFailOn
	}
	if flagNoAnnotate {
		m["annotate"] = "false"
	}
	if flagTimeout != "" {
		m["timeout"] = flagTimeout
	}
	if flagStrict {
		m["strict"] = "true"
	}
	if flagReportFile != "" {
		m["reportFile"] = flagReportFile
	}
	if flagNoStepSummary {
		m["stepSummary"] = "false"
	}
	return m
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the drift check (same as running driftgate with no command)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runCheck(cmd)
		return nil
	},
}

func runCheck(cmd *cobra.Command) {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, err := config.Load(os.Getenv, buildOverrides())
	if err != nil {
		fail(cmd, err, cfg.APIKey)
		return
	}

	runner := &gate.Runner{
		Config:   cfg,
		Comparer: api.NewClient(cfg.APIURL, cfg.APIKey, cfg.Timeout),
		Host:     github.HostFromEnv(os.Getenv),
		Out:      stdout,
		Err:      stderr,
		Version:  version,
	}

	report, err := runner.Run(cmd.Context())
	if err != nil {
		fail(cmd, err, cfg.APIKey)
		return
	}
	if report.Failed {
		exitCode = ExitFailure
	}
}

// fail prints a fatal diagnostic with secrets masked and sets the exit code.
// Inside GitHub Actions the message is also raised as an error annotation.
func fail(cmd *cobra.Command, err error, apiKey string) {
	msg := redact.Message(err.Error(), apiKey)
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", msg)
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		fmt.Fprintln(cmd.OutOrStdout(), github.FormatCommand(github.CommandError, msg))
	}
	exitCode = ExitFailure
}

func init() {
	addCheckFlags(checkCmd)
}
