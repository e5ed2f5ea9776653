package twlint

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yacobolo/twlint/internal/analysis"
	"github.com/yacobolo/twlint/internal/extract"
	"github.com/yacobolo/twlint/internal/occurrence"
	"github.com/yacobolo/twlint/internal/oracle"
	"github.com/yacobolo/twlint/internal/syntax"
)

// Analyzer runs extraction and analysis over single files. It is safe for
// concurrent use; every call gets its own extraction session.
type Analyzer struct {
	cfg      extract.Config
	oracle   oracle.Oracle // nil disables class validation
	imports  *syntax.ImportCache
	disabled map[analysis.Kind]bool
}

// FileReport is the analysis of one file.
type FileReport struct {
	Path        string
	Occurrences []occurrence.ClassOccurrence
	Findings    []analysis.Finding
	Lines       *syntax.Lines
}

// NewAnalyzer loads the stylesheets and allow-list named by config and
// returns an analyzer for its extraction settings. Class validation is off
// when no stylesheet is configured or none of the patterns match a file.
func NewAnalyzer(config LintConfig) (*Analyzer, error) {
	disabled := make(map[analysis.Kind]bool)
	for _, name := range config.Disable {
		kind, ok := analysis.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown finding kind %q in disable list", name)
		}
		disabled[kind] = true
	}

	a := &Analyzer{
		cfg:      config.Extract,
		imports:  syntax.NewImportCache(),
		disabled: disabled,
	}

	if len(config.Stylesheets) == 0 || disabled[analysis.KindInvalid] {
		return a, nil
	}

	sheet, err := oracle.LoadStylesheets(config.Stylesheets, config.Variants...)
	if err != nil {
		return nil, fmt.Errorf("failed to load stylesheets: %w", err)
	}
	if sheet.Len() == 0 {
		slog.Warn("no classes found in stylesheets, class validation disabled",
			slog.Any("patterns", config.Stylesheets))
		return a, nil
	}

	a.oracle = oracle.Any{sheet, oracle.NewAllowlist(config.Allow)}
	return a, nil
}

// Validates reports whether unknown classes are being checked.
func (a *Analyzer) Validates() bool {
	return a.oracle != nil
}

// AnalyzeFile parses source as path and returns its occurrences and
// findings in source order. A single file always runs to completion once
// parsing started.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string, source []byte) (*FileReport, error) {
	f, err := syntax.Parse(ctx, path, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer f.Close()

	occs := extract.ExtractAll(f, a.cfg, a.imports)

	findings := analysis.Analyze(occs)
	if a.oracle != nil {
		findings = append(findings, analysis.Invalid(occs, a.oracle)...)
		analysis.Sort(findings)
	}

	return &FileReport{
		Path:        path,
		Occurrences: occs,
		Findings:    a.filter(findings),
		Lines:       f.Lines,
	}, nil
}

// Forget drops the state cached for path. Hosts call it when a document
// is closed or deleted.
func (a *Analyzer) Forget(path string) {
	a.imports.Invalidate(path)
}

func (a *Analyzer) filter(findings []analysis.Finding) []analysis.Finding {
	if len(a.disabled) == 0 {
		return findings
	}
	kept := findings[:0]
	for _, finding := range findings {
		if !a.disabled[finding.Kind] {
			kept = append(kept, finding)
		}
	}
	return kept
}

// Issues converts the report's findings into issues named by file.
func (r *FileReport) Issues(file string) []Issue {
	issues := make([]Issue, 0, len(r.Findings))
	for _, finding := range r.Findings {
		line := ""
		if r.Lines != nil {
			line = r.Lines.Line(finding.Position.Line)
		}
		issues = append(issues, newIssue(file, finding, line))
	}
	return issues
}
