package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/twlint"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Lint utility class usage in component files",
	Long: `Check class attributes, class helper calls and variant definitions for
duplicate classes, classes that set the same CSS property and, when
stylesheets are given, classes no stylesheet defines.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runLint(cmd)
	},
}

func init() {
	f := lintCmd.Flags()
	f.StringSlice("paths", defaultScanPaths, "File patterns to scan for class usage")
	f.StringSlice("stylesheets", nil, "Compiled CSS patterns used to detect unknown classes")
	f.StringSlice("allow", nil, "Class patterns accepted without a stylesheet rule (foo-*, *-foo)")
	f.StringSlice("variants", nil, "Extra variant names accepted before a utility")
	f.StringSlice("attributes", nil, "Extra class-bearing attribute names")
	f.StringSlice("functions", nil, "Class helper functions, name or name@module (replaces the defaults)")
	f.Bool("cva", true, "Extract classes from cva() definitions")
	f.Bool("tv", true, "Extract classes from tv() definitions")
	f.StringSlice("cva-functions", nil, "cva factory names, name or name@module")
	f.StringSlice("tv-functions", nil, "tailwind-variants factory names, name or name@module")
	f.StringSlice("disable", nil, "Finding kinds to drop: invalid|duplicate|conflict|extractable")
	f.Int("concurrency", 0, "Files analyzed in parallel (0=number of CPUs)")
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json|markdown")
	f.Int("max-issues-per-linter", 0, "Max issues to show per linter (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (class-conflict) suffix on issues")
}

// runLint is shared between `twlint lint` and the bare `twlint` command.
func runLint(cmd *cobra.Command) error {
	lintConfig := buildLintConfig()

	lintResult, err := twlint.Lint(cmd.Context(), lintConfig)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "lint.output-format", "")
	format := twlint.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		twlint.WriteOutput(cmd.OutOrStdout(), lintResult, format, lintConfig)
	}

	// Exit code logic - "Soft Gate" approach
	if lintConfig.Strict {
		// Strict mode: any issue (error, warning or hint) fails the build
		if len(lintResult.Issues) > 0 || lintResult.TruncatedCount > 0 {
			os.Exit(1)
		}
	} else if lintResult.ErrorCount > 0 {
		// Default "Soft Gate" mode: only errors fail the build
		os.Exit(1)
	}

	return nil
}
