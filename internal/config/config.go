package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dshills/driftgate/internal/drift"
	"github.com/dshills/driftgate/internal/github"
	"github.com/dshills/driftgate/internal/redact"
)

// envPrefix is the fallback prefix for running outside GitHub Actions.
const envPrefix = "DRIFTGATE_"

// Input names, as declared in action.yml.
const (
	InputAPIKey       = "api_key"
	InputAPIURL       = "api_url"
	InputBaseline     = "baseline"
	InputEnvironments = "environments"
	InputFailOn       = "fail_on"
	InputAnnotate     = "annotate"
	InputTimeout      = "timeout"
	InputStrict       = "strict"
	InputReportFile   = "report_file"
	InputStepSummary  = "step_summary"
)

// Config represents the driftgate configuration.
type Config struct {
	APIKey       string        `json:"apiKey"`
	APIURL       string        `json:"apiUrl"`
	Baseline     string        `json:"baseline"`
	Environments []string      `json:"environments"`
	FailOn       string        `json:"failOn"`
	Annotate     bool          `json:"annotate"`
	Timeout      time.Duration `json:"-"`
	Strict       bool          `json:"strict"`
	ReportFile   string        `json:"reportFile,omitempty"`
	StepSummary  bool          `json:"stepSummary"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Baseline:     "production",
		Environments: []string{"staging", "production"},
		FailOn:       string(drift.LevelHigh),
		Annotate:     true,
		StepSummary:  true,
	}
}

// ConfigError reports inputs that are missing or malformed.
type ConfigError struct {
	Missing  []string
	Problems []string
}

func (e *ConfigError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required input: "+strings.Join(e.Missing, ", "))
	}
	parts = append(parts, e.Problems...)
	return "configuration error: " + strings.Join(parts, "; ")
}

// IsConfigError checks if an error is a configuration error.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// Load builds the effective config by merging: defaults <- env <- overrides.
// getenv is usually os.Getenv. The overrides map comes from CLI flags (only
// flags the user set should be present).
func Load(getenv func(string) string, overrides map[string]string) (Config, error) {
	cfg := Default()
	cerr := &ConfigError{}

	for _, name := range []string{
		InputAPIKey, InputAPIURL, InputBaseline, InputEnvironments, InputFailOn,
		InputAnnotate, InputTimeout, InputStrict, InputReportFile, InputStepSummary,
	} {
		if v := lookupEnv(getenv, name); v != "" {
			applyField(&cfg, name, v, cerr)
		}
	}
	mergeOverrides(&cfg, overrides, cerr)

	if len(cerr.Problems) > 0 {
		return cfg, cerr
	}
	return cfg, nil
}

// lookupEnv prefers the Actions input variable and falls back to DRIFTGATE_<NAME>.
func lookupEnv(getenv func(string) string, name string) string {
	if v := github.Input(getenv, name); v != "" {
		return v
	}
	return strings.TrimSpace(getenv(envPrefix + strings.ToUpper(name)))
}

// overrideKeys maps CLI override keys to input names.
var overrideKeys = map[string]string{
	"apiUrl":       InputAPIURL,
	"baseline":     InputBaseline,
	"environments": InputEnvironments,
	"failOn":       InputFailOn,
	"annotate":     InputAnnotate,
	"timeout":      InputTimeout,
	"strict":       InputStrict,
	"reportFile":   InputReportFile,
	"stepSummary":  InputStepSummary,
}

func mergeOverrides(cfg *Config, overrides map[string]string, cerr *ConfigError) {
	if overrides == nil {
		return
	}
	for key, name := range overrideKeys {
		if v, ok := overrides[key]; ok && v != "" {
			applyField(cfg, name, v, cerr)
		}
	}
}

func applyField(cfg *Config, name, value string, cerr *ConfigError) {
	switch name {
	case InputAPIKey:
		cfg.APIKey = value
	case InputAPIURL:
		cfg.APIURL = strings.TrimRight(value, "/")
	case InputBaseline:
		cfg.Baseline = value
	case InputEnvironments:
		cfg.Environments = SplitList(value)
	case InputFailOn:
		cfg.FailOn = value
	case InputAnnotate:
		cfg.Annotate = ParseAnnotate(value)
	case InputTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			cerr.Problems = append(cerr.Problems, fmt.Sprintf("timeout %q is not a valid non-negative duration", value))
			return
		}
		cfg.Timeout = d
	case InputStrict:
		cfg.Strict = strings.EqualFold(value, "true")
	case InputReportFile:
		cfg.ReportFile = value
	case InputStepSummary:
		cfg.StepSummary = ParseAnnotate(value)
	}
}

// Validate checks required inputs. It must pass before any network call.
func (c Config) Validate() error {
	cerr := &ConfigError{}
	if c.APIKey == "" {
		cerr.Missing = append(cerr.Missing, InputAPIKey)
	}
	if c.APIURL == "" {
		cerr.Missing = append(cerr.Missing, InputAPIURL)
	}
	if c.Strict {
		if _, err := drift.ParseStrict(c.FailOn); err != nil {
			cerr.Problems = append(cerr.Problems, "fail_on: "+err.Error())
		}
	}
	if len(cerr.Missing) > 0 || len(cerr.Problems) > 0 {
		return cerr
	}
	return nil
}

// FailOnLevel returns the normalized failure threshold.
func (c Config) FailOnLevel() drift.Level {
	return drift.Normalize(c.FailOn)
}

// Redacted returns a copy that is safe to print.
func (c Config) Redacted() Config {
	if c.APIKey != "" {
		c.APIKey = redact.Placeholder
	}
	c.Environments = append([]string(nil), c.Environments...)
	return c
}

// MarshalJSON renders Timeout as a duration string.
func (c Config) MarshalJSON() ([]byte, error) {
	type plain Config
	return json.Marshal(struct {
		plain
		Timeout string `json:"timeout"`
	}{plain: plain(c), Timeout: c.Timeout.String()})
}

// SplitList splits a comma-separated list, trimming entries and dropping
// empty ones.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	result := []string{}
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// ParseAnnotate reports whether a boolean-ish input is enabled. Only the
// literal "false" (any case) disables it.
func ParseAnnotate(v string) bool {
	return !strings.EqualFold(strings.TrimSpace(v), "false")
}
