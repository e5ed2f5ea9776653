package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/twlint"
	"github.com/yacobolo/twlint/internal/extract"
)

const defaultConfigPath = ".twlint.yaml"

var defaultScanPaths = []string{"src/**/*.{tsx,jsx,ts,js,vue}"}

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set;
	// defaults are applied by the getters so the file can still override them)
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	configureLogger(cmd.ErrOrStderr(),
		getStringWithFallback("log-file", "log-file", ""),
		getStringWithFallback("log-level", "log-level", "warn"),
		getBoolWithFallback("verbose", "verbose", false))

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (TWLINT_* prefix)
	if err := k.Load(env.Provider("TWLINT_", ".", func(s string) string {
		// TWLINT_LINT_STRICT -> lint.strict
		// TWLINT_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "TWLINT_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildLintConfig constructs the library's LintConfig struct from koanf state.
func buildLintConfig() twlint.LintConfig {
	return twlint.LintConfig{
		ScanPaths:          getStringsWithFallback("paths", "lint.paths", defaultScanPaths),
		Stylesheets:        getStringsWithFallback("stylesheets", "lint.stylesheets", nil),
		Allow:              getStringsWithFallback("allow", "lint.allow", nil),
		Variants:           getStringsWithFallback("variants", "lint.variants", nil),
		Extract:            buildExtractConfig(),
		Disable:            getStringsWithFallback("disable", "lint.disable", nil),
		Concurrency:        getIntWithFallback("concurrency", "lint.concurrency", 0),
		Verbose:            getBoolWithFallback("verbose", "verbose", false),
		Strict:             getBoolWithFallback("strict", "lint.strict", false),
		MaxIssuesPerLinter: getIntWithFallback("max-issues-per-linter", "lint.max-issues-per-linter", 0),
		MaxSameIssues:      getIntWithFallback("max-same-issues", "lint.max-same-issues", 0),
		PrintIssuedLines:   getBoolWithFallback("print-lines", "lint.print-lines", true),
		PrintLinterName:    getBoolWithFallback("print-linter-name", "lint.print-linter-name", true),
		UseColors:          getBoolWithFallback("color", "color", false),
	}
}

// buildExtractConfig constructs the extraction settings from koanf state.
func buildExtractConfig() extract.Config {
	config := extract.DefaultConfig()
	config.Attributes = getStringsWithFallback("attributes", "lint.attributes", nil)
	config.DisableCVA = !getBoolWithFallback("cva", "lint.cva", true)
	config.DisableTV = !getBoolWithFallback("tv", "lint.tv", true)
	config.VueNamespace = getStringWithFallback("vue-namespace", "lint.vue-namespace", extract.DefaultVueNamespace)

	if refs := parseFunctionRefs(getStringsWithFallback("functions", "lint.functions", nil)); len(refs) > 0 {
		config.UtilityFunctions = refs
	}
	if refs := parseFunctionRefs(getStringsWithFallback("cva-functions", "lint.cva-functions", nil)); len(refs) > 0 {
		config.CVAFunctions = refs
	}
	if refs := parseFunctionRefs(getStringsWithFallback("tv-functions", "lint.tv-functions", nil)); len(refs) > 0 {
		config.TVFunctions = refs
	}

	return config
}

func parseFunctionRefs(values []string) []extract.FunctionRef {
	var refs []extract.FunctionRef
	for _, v := range values {
		if ref := extract.ParseFunctionRef(v); ref.Name != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
