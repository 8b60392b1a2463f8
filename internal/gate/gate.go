package gate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/dshills/driftgate/internal/api"
	"github.com/dshills/driftgate/internal/config"
	"github.com/dshills/driftgate/internal/drift"
	"github.com/dshills/driftgate/internal/github"
	"github.com/dshills/driftgate/internal/output"
)

// Comparer performs the comparison request. *api.Client implements it.
type Comparer interface {
	Compare(ctx context.Context, req api.CompareRequest) (*drift.Response, error)
}

// Runner executes one drift check.
type Runner struct {
	Config   config.Config
	Comparer Comparer
	Host     github.Host
	Out      io.Writer
	Err      io.Writer
	Version  string
}

// outputKeys are the step outputs written to GITHUB_OUTPUT, in order.
var outputKeys = []string{"risk", "pairs", "issues", "failed"}

// Run validates the configuration, requests the comparison, prints the
// report and applies the threshold. A threshold failure is reported through
// Report.Failed, not as an error; every returned error is fatal.
func (r *Runner) Run(ctx context.Context) (*drift.Report, error) {
	cfg := r.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fmt.Fprintf(r.Err, "Comparing %v against baseline %q...\n", cfg.Environments, cfg.Baseline)
	resp, err := r.Comparer.Compare(ctx, api.CompareRequest{
		Environments: cfg.Environments,
		Baseline:     cfg.Baseline,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Strict {
		if err := resp.Validate(); err != nil {
			return nil, fmt.Errorf("strict mode: %w", err)
		}
	}

	report := drift.BuildReport(resp, cfg.Baseline, cfg.Environments, cfg.FailOnLevel())
	report.Tool = "driftgate"
	report.Version = r.Version

	if err := (&output.TextWriter{}).Write(r.Out, report); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}
	if cfg.Annotate {
		if err := (&output.AnnotationWriter{}).Write(r.Out, report); err != nil {
			return nil, fmt.Errorf("writing annotations: %w", err)
		}
	}

	r.publish(report)

	if report.Failed {
		msg := fmt.Sprintf("Drift risk %s meets or exceeds fail_on threshold %s",
			report.Summary.Risk.Upper(), report.FailOn.Upper())
		fmt.Fprintln(r.Out, github.FormatCommand(github.CommandError, msg))
	}
	return report, nil
}

// publish writes the optional report file, step summary and step outputs.
// Failures here are warnings; the gate decision does not depend on them.
func (r *Runner) publish(report *drift.Report) {
	cfg := r.Config
	if cfg.ReportFile != "" {
		if err := output.WriteToFile(report, "json", cfg.ReportFile); err != nil {
			fmt.Fprintf(r.Err, "Warning: could not write report file: %v\n", err)
		}
	}

	if cfg.StepSummary {
		var buf bytes.Buffer
		if err := (&output.MarkdownWriter{}).Write(&buf, report); err == nil {
			if err := r.Host.AppendSummary(buf.String()); err != nil {
				fmt.Fprintf(r.Err, "Warning: could not write step summary: %v\n", err)
			}
		}
	}

	s := report.Summary
	err := r.Host.SetOutputs(outputKeys, map[string]string{
		"risk":   string(s.Risk),
		"pairs":  strconv.Itoa(s.Pairs),
		"issues": strconv.Itoa(s.Issues),
		"failed": strconv.FormatBool(report.Failed),
	})
	if err != nil {
		fmt.Fprintf(r.Err, "Warning: could not set step outputs: %v\n", err)
	}
}
