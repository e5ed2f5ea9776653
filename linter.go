package twlint

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/twlint/internal/analysis"
	"github.com/yacobolo/twlint/internal/extract"
)

// LintConfig holds linting configuration
type LintConfig struct {
	ScanPaths   []string // Patterns to scan (e.g., "src/**/*.tsx")
	Stylesheets []string // Compiled CSS globs; empty disables unknown-class checks
	Allow       []string // Classes accepted without a stylesheet rule ("icon-*", "*-js")
	Variants    []string // Variant names accepted on top of the defaults
	Extract     extract.Config
	Disable     []string // Finding kinds to drop: invalid, duplicate, conflict, extractable
	Concurrency int      // Files analyzed in parallel (0 = GOMAXPROCS)
	Verbose     bool
	Strict      bool // Exit with code 1 if issues found

	// golangci-style configuration
	MaxIssuesPerLinter int  // 0 = unlimited (default)
	MaxSameIssues      int  // 0 = unlimited (default)
	PrintIssuedLines   bool // Show source lines with issues (default: true)
	PrintLinterName    bool // Show (class-conflict) suffix (default: true)
	UseColors          bool // Enable color output (default: auto-detect)
}

// LintResult contains linting analysis results
type LintResult struct {
	// Issues in golangci-lint format
	Issues         []Issue        // All issues found
	IssuesByKind   map[string]int // Counts per linter before truncation
	FilesScanned   int
	FilesSkipped   int
	FilesFailed    int // Files that could not be read or parsed
	ClassesFound   int // Total class occurrences extracted
	ErrorCount     int // Issues with error severity
	WarningCount   int
	InfoCount      int
	Validated      bool // Unknown classes were checked against stylesheets
	TruncatedCount int  // Issues removed due to limits

	// Summary
	Warnings []string
}

// Lint analyzes every file matched by config.ScanPaths
func Lint(ctx context.Context, config LintConfig) (*LintResult, error) {
	// Step 1: Load stylesheets and build the analyzer
	analyzer, err := NewAnalyzer(config)
	if err != nil {
		return nil, err
	}

	// Step 2: Discover files
	files, stats, err := ScanFiles(config.ScanPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to scan files: %w", err)
	}
	slog.Debug("files discovered",
		slog.Int("scanned", stats.FilesScanned),
		slog.Int("skipped", stats.FilesSkipped))

	// Step 3: Analyze in parallel, one slot per file keeps the output order stable
	reports := make([]*FileReport, len(files))
	failures := make([]error, len(files))

	concurrency := config.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)
	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			report, err := analyzePath(groupCtx, analyzer, path)
			if err != nil {
				// Log warning but continue
				slog.Warn("skipping file", slog.String("file", path), slog.Any("error", err))
				failures[i] = err
				return nil
			}
			reports[i] = report
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 4: Convert findings to issues
	result := &LintResult{
		IssuesByKind: make(map[string]int),
		FilesScanned: stats.FilesScanned,
		FilesSkipped: stats.FilesSkipped,
		Validated:    analyzer.Validates(),
	}
	for i, report := range reports {
		if report == nil {
			result.FilesFailed++
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", GetRelativePath(files[i]), failures[i]))
			continue
		}
		result.ClassesFound += len(report.Occurrences)
		result.Issues = append(result.Issues, report.Issues(GetRelativePath(report.Path))...)
	}
	if !result.Validated && len(config.Stylesheets) == 0 {
		result.Warnings = append(result.Warnings, "no stylesheets configured, unknown classes are not checked")
	}

	sortIssues(result.Issues)
	for _, issue := range result.Issues {
		result.IssuesByKind[issue.FromLinter]++
	}

	// Step 5: Apply limits
	result.Issues, result.TruncatedCount = limitIssues(result.Issues, config)
	result.ErrorCount, result.WarningCount, result.InfoCount = countSeverities(result.Issues)

	return result, nil
}

func analyzePath(ctx context.Context, analyzer *Analyzer, path string) (*FileReport, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	// A lint run visits every file once, so nothing cached for it is reused.
	defer analyzer.Forget(path)
	return analyzer.AnalyzeFile(ctx, path, source)
}

// sortIssues orders issues by file, then line, then column
func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})
}

func countSeverities(issues []Issue) (errors, warnings, infos int) {
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		default:
			infos++
		}
	}
	return errors, warnings, infos
}

// limitIssues applies max-issues-per-linter and max-same-issues constraints
func limitIssues(issues []Issue, config LintConfig) ([]Issue, int) {
	originalCount := len(issues)

	// Apply max-issues-per-linter
	if config.MaxIssuesPerLinter > 0 {
		issues = limitPerLinter(issues, config.MaxIssuesPerLinter)
	}

	// Apply max-same-issues (deduplication by message text)
	if config.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, config.MaxSameIssues)
	}

	truncatedCount := originalCount - len(issues)
	return issues, truncatedCount
}

// limitPerLinter keeps the first maxPerLinter issues of every linter
func limitPerLinter(issues []Issue, maxPerLinter int) []Issue {
	linterCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		if linterCounts[issue.FromLinter] < maxPerLinter {
			filtered = append(filtered, issue)
			linterCounts[issue.FromLinter]++
		}
	}

	return filtered
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		count := messageCounts[issue.Text]
		if count < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}

// reportKinds lists finding kinds in the order reports print them.
var reportKinds = []analysis.Kind{
	analysis.KindInvalid,
	analysis.KindDuplicate,
	analysis.KindConflict,
	analysis.KindExtractable,
}
