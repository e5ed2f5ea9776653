// Package twlint finds duplicate, conflicting and unknown utility classes in
// JSX, TSX and lowered Vue sources.
//
// # Linting
//
// Lint class usage across a project:
//
//	config := twlint.LintConfig{
//		ScanPaths:   []string{"src/**/*.{tsx,jsx}"},
//		Stylesheets: []string{"dist/**/*.css"},
//		Extract:     extract.DefaultConfig(),
//	}
//	result, err := twlint.Lint(ctx, config)
//
// # Single files
//
// Editors and other hosts analyze one buffer at a time:
//
//	analyzer, err := twlint.NewAnalyzer(config)
//	report, err := analyzer.AnalyzeFile(ctx, "Button.tsx", source)
//
// # CLI Tool
//
//	go install github.com/yacobolo/twlint/cmd/twlint@latest
package twlint

// Public API is exported via linter.go and analyzer.go:
// - Lint(ctx context.Context, config LintConfig) (*LintResult, error)
// - NewAnalyzer(config LintConfig) (*Analyzer, error)
// - DetermineOutputFormat(requested string, quiet bool) OutputFormat
// - WriteOutput(w io.Writer, result *LintResult, format OutputFormat, config LintConfig)
