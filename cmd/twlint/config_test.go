package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/twlint/internal/extract"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

// chdir switches into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".twlint.yaml")
	configContent := `
verbose: true
log-level: debug

lint:
  strict: true
  paths:
    - "app/**/*.tsx"
  stylesheets:
    - "dist/*.css"
  functions:
    - "cn@@/lib/utils"
  max-same-issues: 3
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, "debug", k.String("log-level"))
	assert.True(t, k.Bool("lint.strict"))
	assert.Equal(t, []string{"app/**/*.tsx"}, k.Strings("lint.paths"))
	assert.Equal(t, []string{"dist/*.css"}, k.Strings("lint.stylesheets"))
	assert.Equal(t, 3, k.Int("lint.max-same-issues"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	require.NoError(t, loadConfigFromPath("/nonexistent/.twlint.yaml"))

	config := buildLintConfig()
	assert.Equal(t, defaultScanPaths, config.ScanPaths)
	assert.Empty(t, config.Stylesheets)
	assert.False(t, config.Strict)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".twlint.yaml")
	configContent := `
verbose: false
lint:
  strict: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	t.Setenv("TWLINT_VERBOSE", "true")
	t.Setenv("TWLINT_LINT_STRICT", "true")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.True(t, k.Bool("lint.strict"))
}

func TestBuildLintConfig_Defaults(t *testing.T) {
	resetKoanf()

	config := buildLintConfig()
	assert.Equal(t, defaultScanPaths, config.ScanPaths)
	assert.False(t, config.Strict)
	assert.Equal(t, 0, config.MaxIssuesPerLinter)
	assert.Equal(t, 0, config.Concurrency)
	assert.True(t, config.PrintIssuedLines)
	assert.True(t, config.PrintLinterName)
	assert.Empty(t, config.Disable)

	assert.False(t, config.Extract.DisableCVA)
	assert.False(t, config.Extract.DisableTV)
	assert.Equal(t, extract.DefaultUtilityFunctions, config.Extract.UtilityFunctions)
	assert.Equal(t, extract.DefaultVueNamespace, config.Extract.VueNamespace)
}

func TestBuildLintConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".twlint.yaml")
	configContent := `
lint:
  strict: true
  paths:
    - "web/**/*.vue"
  allow:
    - "js-*"
  attributes:
    - "tw"
  functions:
    - "cn@@/lib/utils"
    - "clsx"
  cva: false
  tv-functions:
    - "tv@tailwind-variants"
  disable:
    - "extractable"
  max-issues-per-linter: 10
  print-lines: false
  vue-namespace: "$ctx"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	config := buildLintConfig()
	assert.True(t, config.Strict)
	assert.Equal(t, []string{"web/**/*.vue"}, config.ScanPaths)
	assert.Equal(t, []string{"js-*"}, config.Allow)
	assert.Equal(t, []string{"extractable"}, config.Disable)
	assert.Equal(t, 10, config.MaxIssuesPerLinter)
	assert.False(t, config.PrintIssuedLines)

	assert.Equal(t, []string{"tw"}, config.Extract.Attributes)
	assert.Equal(t, []extract.FunctionRef{
		{Name: "cn", From: "@/lib/utils"},
		{Name: "clsx"},
	}, config.Extract.UtilityFunctions)
	assert.True(t, config.Extract.DisableCVA)
	assert.False(t, config.Extract.DisableTV)
	assert.Equal(t, []extract.FunctionRef{{Name: "tv", From: "tailwind-variants"}}, config.Extract.TVFunctions)
	assert.Equal(t, extract.DefaultCVAFunctions, config.Extract.CVAFunctions)
	assert.Equal(t, "$ctx", config.Extract.VueNamespace)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(".twlint.yaml", []byte("lint:\n  max-same-issues: 2\n  print-lines: false\n"), 0644))

	require.NoError(t, lintCmd.Flags().Set("max-same-issues", "5"))
	t.Cleanup(func() {
		_ = lintCmd.Flags().Set("max-same-issues", "0")
		lintCmd.Flags().Lookup("max-same-issues").Changed = false
	})
	require.NoError(t, loadConfig(lintCmd))

	config := buildLintConfig()
	assert.Equal(t, 5, config.MaxSameIssues)
	// Unchanged flags keep the file value instead of their defaults
	assert.False(t, config.PrintIssuedLines)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".twlint.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "lint:")
	assert.Contains(t, string(data), "stylesheets:")

	// The generated file must load and yield the defaults
	resetKoanf()
	require.NoError(t, loadConfigFromPath(".twlint.yaml"))
	config := buildLintConfig()
	assert.Equal(t, defaultScanPaths, config.ScanPaths)
	assert.Equal(t, extract.DefaultUtilityFunctions, config.Extract.UtilityFunctions)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, os.WriteFile(".twlint.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, os.WriteFile(".twlint.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".twlint.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "lint:")
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&buf)
	t.Cleanup(func() { cmd.SetOut(nil) })
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "twlint dev\n", buf.String())
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "debug", want: "DEBUG"},
		{in: " INFO ", want: "INFO"},
		{in: "warning", want: "WARN"},
		{in: "error", want: "ERROR"},
		{in: "loud", want: "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.in, parseSlogLevel("warn", 0)).String())
		})
	}
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()
	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetStringsWithFallback(t *testing.T) {
	resetKoanf()
	assert.Equal(t, []string{"a"}, getStringsWithFallback("flag-key", "config.key", []string{"a"}))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()
	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestGetIntWithFallback(t *testing.T) {
	resetKoanf()
	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))
}
