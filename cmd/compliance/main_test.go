package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes a fresh command tree and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func examplePortfolio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	out, _, err := run(t, "example", path)
	require.NoError(t, err)
	require.Contains(t, out, "Example portfolio saved to")
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "compliance", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, flag := range []string{"config", "now", "format", "regulatory", "debug"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{"report", "deadlines", "score", "mtd", "penalty", "epc", "example", "validate", "version"}
	registered := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, registered[name], "expected command %q to be registered", name)
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, _, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Readiness scores")
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	_, _, err := run(t, "frobnicate")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "compliance dev")
	assert.Contains(t, out, "tables 2026.1")
}

func TestValidateCommand(t *testing.T) {
	path := examplePortfolio(t)
	out, _, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("landlord: nobody\n"), 0o644))
	_, _, err = run(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no properties provided")
}

func TestMtdCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"over 50k", []string{"--rental", "45000", "--self-employment", "6000"}, []string{"£51,000.00", "april_2026"}},
		{"exactly 50k is not over", []string{"--rental", "50000"}, []string{"april_2027"}},
		{"joint halves rental", []string{"--rental", "50000", "--joint"}, []string{"£25,000.00", "april_2028"}},
		{"limited company", []string{"--limited-company"}, []string{"not_required", "Corporation Tax"}},
		{"below threshold", []string{"--rental", "20000"}, []string{"not_required"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, append([]string{"mtd"}, tt.args...)...)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}

	_, _, err := run(t, "mtd", "--rental", "lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--rental")
}

func TestPenaltyCommand(t *testing.T) {
	out, _, err := run(t, "penalty", "--owed", "1000", "--days-late", "31")
	require.NoError(t, err)
	assert.Contains(t, out, "3% penalty after 15 days: £30.00")
	assert.Contains(t, out, "Further 3% penalty after 30 days: £30.00")
	assert.Contains(t, out, "Total penalty: £60.27")

	out, _, err = run(t, "penalty", "--owed", "1000", "--days-late", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Total penalty: £0.00")
}

func TestEpcCommand(t *testing.T) {
	out, _, err := run(t, "epc", "--score", "62", "--budget", "130")
	require.NoError(t, err)
	assert.Contains(t, out, "Score 62 is band D")
	assert.Contains(t, out, "7 points short of band C")
	assert.Contains(t, out, "Hot water cylinder jacket")
	assert.Contains(t, out, "LED lighting")
	assert.NotContains(t, out, "Draught proofing")

	out, _, err = run(t, "epc", "--score", "75")
	require.NoError(t, err)
	assert.Contains(t, out, "band C")
	assert.Contains(t, out, "no improvements required")

	_, _, err = run(t, "epc", "--score", "0")
	assert.Error(t, err)

	_, _, err = run(t, "epc")
	assert.Error(t, err, "score is required")
}

func TestScoreCommand(t *testing.T) {
	path := examplePortfolio(t)
	out, _, err := run(t, "score", path, "--now", "2026-03-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Making Tax Digital")
	assert.Contains(t, out, "33%")
	assert.Contains(t, out, "1/3")
	assert.Contains(t, out, "Overall")
}

func TestDeadlinesCommand(t *testing.T) {
	path := examplePortfolio(t)

	out, _, err := run(t, "deadlines", path, "--now", "2026-03-01", "--upcoming", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3, "header plus two deadlines")

	out, _, err = run(t, "deadlines", path, "--now", "2026-03-01", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "gas safety expiry - 12 Station Road")
	assert.Contains(t, out, "2026-11-14")
}

func TestReportCommand_Formats(t *testing.T) {
	path := examplePortfolio(t)

	out, _, err := run(t, "report", path, "--now", "2026-03-01", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"landlord": "Example Landlord"`)
	assert.Contains(t, out, `"generated_at": "2026-03-01T00:00:00Z"`)

	out, _, err = run(t, "report", path, "--now", "2026-03-01", "-f", "lite")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "COMPLIANCE SUMMARY"))

	_, _, err = run(t, "report", path, "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}

func TestReportCommand_OutputDir(t *testing.T) {
	path := examplePortfolio(t)
	dir := t.TempDir()

	out, _, err := run(t, "report", path, "--now", "2026-03-01T09:30:00Z", "--format", "all", "--output-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "Report written to"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	_, err = os.Stat(filepath.Join(dir, "compliance_report_20260301_093000.html"))
	assert.NoError(t, err)
}

func TestReportCommand_SettingsFileAndDebug(t *testing.T) {
	path := examplePortfolio(t)
	settings := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("format: csv\nupcoming_limit: 1\n"), 0o644))

	out, stderr, err := run(t, "report", path, "--config", settings, "--now", "2026-03-01", "--debug")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Date,ID,Regime,Title"))
	assert.Contains(t, stderr, "component=engine")
	assert.Contains(t, stderr, "Example Landlord")
}

func TestReportCommand_RegulatoryOverride(t *testing.T) {
	path := examplePortfolio(t)
	_, _, err := run(t, "report", path, "--regulatory", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read regulatory tables file")
}

func TestNowFlag_Invalid(t *testing.T) {
	_, _, err := run(t, "mtd", "--now", "yesterday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--now")
}
