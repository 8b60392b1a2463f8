package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// resetFlags resets all package-level flag variables to their zero values.
func resetFlags() {
	flagAPIURL = ""
	flagBaseline = ""
	flagEnvironments = ""
	flagFailOn = ""
	flagNoAnnotate = false
	flagTimeout = ""
	flagStrict = false
	flagReportFile = ""
	flagNoStepSummary = false
}

// clearEnv blanks every input driftgate reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"API_KEY", "API_URL", "BASELINE", "ENVIRONMENTS", "FAIL_ON",
		"ANNOTATE", "TIMEOUT", "STRICT", "REPORT_FILE", "STEP_SUMMARY",
	} {
		t.Setenv("INPUT_"+name, "")
		t.Setenv("DRIFTGATE_"+name, "")
	}
	t.Setenv("GITHUB_OUTPUT", "")
	t.Setenv("GITHUB_STEP_SUMMARY", "")
	t.Setenv("GITHUB_ACTIONS", "")
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	resetFlags()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func driftServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/compare" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

const highBody = `{"risk":"high","pairs":{"a":{"risk":"low","issues":[]},"b":{"risk":"high","issues":["missing snapshot for production app"]}}}`

func TestBuildOverrides_NoFlags(t *testing.T) {
	resetFlags()
	if m := buildOverrides(); len(m) != 0 {
		t.Errorf("buildOverrides() with no flags = %v, want empty map", m)
	}
}

func TestBuildOverrides_AllFlags(t *testing.T) {
	resetFlags()
	flagAPIURL = "https://x"
	flagBaseline = "prod"
	flagEnvironments = "a,b"
	flagFailOn = "medium"
	flagNoAnnotate = true
	flagTimeout = "5s"
	flagStrict = true
	flagReportFile = "r.json"
	flagNoStepSummary = true

	expected := map[string]string{
		"apiUrl":       "https://x",
		"baseline":     "prod",
		"environments": "a,b",
		"failOn":       "medium",
		"annotate":     "false",
		"timeout":      "5s",
		"strict":       "true",
		"reportFile":   "r.json",
		"stepSummary":  "false",
	}
	m := buildOverrides()
	if len(m) != len(expected) {
		t.Fatalf("buildOverrides() returned %d entries, want %d", len(m), len(expected))
	}
	for k, v := range expected {
		if m[k] != v {
			t.Errorf("buildOverrides()[%q] = %q, want %q", k, m[k], v)
		}
	}
}

func TestRun_HighRiskExitsOne(t *testing.T) {
	clearEnv(t)
	server := driftServer(t, 200, highBody)
	t.Setenv("INPUT_API_KEY", "k")
	t.Setenv("INPUT_API_URL", server.URL)

	code, stdout, _ := runCLI(t)
	if code != ExitFailure {
		t.Errorf("exit code = %d, want %d", code, ExitFailure)
	}
	if !strings.Contains(stdout, "✖ b [HIGH]") {
		t.Errorf("stdout missing pair detail:\n%s", stdout)
	}
}

func TestRun_FailOnMediumStillFails(t *testing.T) {
	clearEnv(t)
	server := driftServer(t, 200, highBody)
	t.Setenv("INPUT_API_KEY", "k")
	t.Setenv("INPUT_API_URL", server.URL)
	t.Setenv("INPUT_FAIL_ON", "medium")

	if code, _, _ := runCLI(t, "check"); code != ExitFailure {
		t.Errorf("exit code = %d, want %d", code, ExitFailure)
	}
}

func TestRun_MediumUnderHighPasses(t *testing.T) {
	clearEnv(t)
	server := driftServer(t, 200, `{"risk":"medium","pairs":{}}`)
	t.Setenv("DRIFTGATE_API_KEY", "k")

	code, _, stderr := runCLI(t, "--api-url", server.URL)
	if code != ExitSuccess {
		t.Errorf("exit code = %d, want %d (stderr: %s)", code, ExitSuccess, stderr)
	}
}

func TestRun_MissingConfigExitsOne(t *testing.T) {
	clearEnv(t)
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()
	t.Setenv("INPUT_API_URL", server.URL)

	code, _, stderr := runCLI(t)
	if code != ExitFailure {
		t.Errorf("exit code = %d, want %d", code, ExitFailure)
	}
	if !strings.Contains(stderr, "missing required input: api_key") {
		t.Errorf("stderr = %q", stderr)
	}
	if called {
		t.Error("API must not be called when configuration is missing")
	}
}

func TestRun_NonJSONResponse(t *testing.T) {
	clearEnv(t)
	server := driftServer(t, 500, "<html>"+strings.Repeat("x", 400)+"</html>")
	t.Setenv("INPUT_API_KEY", "k")
	t.Setenv("INPUT_API_URL", server.URL)

	code, _, stderr := runCLI(t)
	if code != ExitFailure {
		t.Errorf("exit code = %d, want %d", code, ExitFailure)
	}
	if !strings.Contains(stderr, "status 500") {
		t.Errorf("stderr = %q", stderr)
	}
	if strings.Contains(stderr, "</html>") {
		t.Errorf("body should be truncated: %q", stderr)
	}
}

func TestRun_APIErrorRedactsKey(t *testing.T) {
	clearEnv(t)
	server := driftServer(t, 401, `{"message":"key dg_secret_123 is revoked"}`)
	t.Setenv("INPUT_API_KEY", "dg_secret_123")
	t.Setenv("INPUT_API_URL", server.URL)
	t.Setenv("GITHUB_ACTIONS", "true")

	code, stdout, stderr := runCLI(t)
	if code != ExitFailure {
		t.Errorf("exit code = %d, want %d", code, ExitFailure)
	}
	if strings.Contains(stderr+stdout, "dg_secret_123") {
		t.Errorf("API key leaked: stdout=%q stderr=%q", stdout, stderr)
	}
	if !strings.Contains(stderr, "Error: API error (status 401)") {
		t.Errorf("stderr = %q", stderr)
	}
	if !strings.Contains(stdout, "::error::API error (status 401)") {
		t.Errorf("expected error annotation in stdout, got %q", stdout)
	}
}

func TestRun_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("INPUT_API_KEY", "k")
	t.Setenv("INPUT_API_URL", "https://drift.example.com")

	code, _, stderr := runCLI(t, "--timeout", "forever")
	if code != ExitFailure {
		t.Errorf("exit code = %d, want %d", code, ExitFailure)
	}
	if !strings.Contains(stderr, "timeout") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	clearEnv(t)
	if code, _, _ := runCLI(t, "--bogus"); code != ExitFailure {
		t.Errorf("exit code = %d, want %d", code, ExitFailure)
	}
}

func TestVersionCmd(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	if code != ExitSuccess {
		t.Errorf("exit code = %d", code)
	}
	if stdout != "driftgate version "+version+"\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestConfigShow(t *testing.T) {
	clearEnv(t)
	t.Setenv("INPUT_API_KEY", "very-secret")
	t.Setenv("INPUT_ENVIRONMENTS", "dev, qa")

	code, stdout, stderr := runCLI(t, "config", "show", "--fail-on", "medium")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if strings.Contains(stdout, "very-secret") {
		t.Errorf("config show leaked the API key:\n%s", stdout)
	}

	var shown map[string]any
	if err := json.Unmarshal([]byte(stdout), &shown); err != nil {
		t.Fatalf("config show output is not JSON: %v\n%s", err, stdout)
	}
	if shown["failOn"] != "medium" {
		t.Errorf("failOn = %v", shown["failOn"])
	}
	envs := shown["environments"].([]any)
	if len(envs) != 2 || envs[1] != "qa" {
		t.Errorf("environments = %v", envs)
	}
	if !strings.Contains(stderr, "api_url") {
		t.Errorf("expected warning about missing api_url, got %q", stderr)
	}
}
