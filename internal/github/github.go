package github

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/dshills/driftgate/internal/drift"
)

// Command is a workflow command that surfaces an annotation in the CI UI.
type Command string

const (
	CommandError   Command = "error"
	CommandWarning Command = "warning"
	CommandNotice  Command = "notice"
)

// CommandFor maps a risk level to the annotation command for it.
func CommandFor(l drift.Level) Command {
	switch drift.Normalize(string(l)) {
	case drift.LevelHigh:
		return CommandError
	case drift.LevelMedium:
		return CommandWarning
	default:
		return CommandNotice
	}
}

// FormatCommand renders "::<cmd>::<message>" with the message escaped.
func FormatCommand(cmd Command, message string) string {
	return "::" + string(cmd) + "::" + EscapeData(message)
}

var dataEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")

// EscapeData escapes a workflow command payload so multi-line messages stay
// a single command.
func EscapeData(s string) string {
	return dataEscaper.Replace(s)
}

// InputEnvName returns the environment variable the runner sets for an
// action input: spaces become underscores and the name is upper-cased.
func InputEnvName(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// Input reads an action input, trimmed. Unset inputs read as "".
func Input(getenv func(string) string, name string) string {
	return strings.TrimSpace(getenv(InputEnvName(name)))
}

// Host holds the file-based channels the runner exposes to a step.
type Host struct {
	OutputPath  string
	SummaryPath string
}

// HostFromEnv reads GITHUB_OUTPUT and GITHUB_STEP_SUMMARY.
// Either path may be empty when running outside Actions.
func HostFromEnv(getenv func(string) string) Host {
	return Host{
		OutputPath:  getenv("GITHUB_OUTPUT"),
		SummaryPath: getenv("GITHUB_STEP_SUMMARY"),
	}
}

// SetOutputs appends step outputs to the GITHUB_OUTPUT file in the order of
// keys. It is a no-op when no output file is configured.
func (h Host) SetOutputs(keys []string, values map[string]string) error {
	if h.OutputPath == "" {
		return nil
	}
	var sb strings.Builder
	for _, k := range keys {
		entry, err := formatOutput(k, values[k])
		if err != nil {
			return err
		}
		sb.WriteString(entry)
	}
	return appendFile(h.OutputPath, sb.String())
}

// AppendSummary appends markdown to the step summary file. It is a no-op when
// no summary file is configured.
func (h Host) AppendSummary(markdown string) error {
	if h.SummaryPath == "" {
		return nil
	}
	return appendFile(h.SummaryPath, markdown)
}

func formatOutput(name, value string) (string, error) {
	if !strings.ContainsAny(value, "\r\n") {
		return fmt.Sprintf("%s=%s\n", name, value), nil
	}
	delim, err := delimiter()
	if err != nil {
		return "", err
	}
	if strings.Contains(name, delim) || strings.Contains(value, delim) {
		return "", fmt.Errorf("output %q collides with delimiter", name)
	}
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delim, value, delim), nil
}

func delimiter() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating delimiter: %w", err)
	}
	return "ghadelimiter_" + hex.EncodeToString(b), nil
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
