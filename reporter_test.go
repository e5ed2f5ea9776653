package twlint

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCaretIndicator(t *testing.T) {
	reporter := &Reporter{}

	tests := []struct {
		name       string
		sourceLine string
		column     int
		width      int
		want       string
	}{
		{
			name:       "spaces only",
			sourceLine: `  <div className="flex">`,
			column:     19,
			width:      1,
			want:       "                  ^", // 18 spaces + caret
		},
		{
			name:       "tabs and spaces",
			sourceLine: "\t\t<button className=\"p-2\">",
			column:     22,
			width:      1,
			want:       "\t\t" + strings.Repeat(" ", 19) + "^",
		},
		{
			name:       "underlines the class",
			sourceLine: `<p className="flex flex">`,
			column:     20,
			width:      4,
			want:       "                   ^~~~",
		},
		{
			name:       "column 0 fallback",
			sourceLine: "some line",
			column:     0,
			width:      1,
			want:       "^",
		},
		{
			name:       "column beyond line length",
			sourceLine: "short",
			column:     100,
			width:      1,
			want:       "     ^", // Pads to line length only
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reporter.buildCaretIndicator(tt.sourceLine, tt.column, tt.width)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestReporter_PrintIssues(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf, LintConfig{PrintIssuedLines: true, PrintLinterName: true})
	reporter.useColors = false

	reporter.PrintIssues([]Issue{
		{
			FromLinter:  LinterConflict,
			Text:        "Class 'p-2' conflicts with 'p-4' (both set padding)",
			Severity:    SeverityWarning,
			SourceLines: []string{`<div className="p-2 p-4">`},
			Pos:         IssuePos{Filename: "src/Card.tsx", Line: 3, Column: 17},
		},
	})

	assert.Equal(t,
		"src/Card.tsx:3:17: Class 'p-2' conflicts with 'p-4' (both set padding) (class-conflict)\n"+
			"\t<div className=\"p-2 p-4\">\n"+
			"\t                ^\n",
		buf.String())
}

func TestReporter_PrintSummary(t *testing.T) {
	tests := []struct {
		name   string
		result LintResult
		want   []string
	}{
		{
			name:   "no issues",
			result: LintResult{},
			want:   []string{"0 issues:"},
		},
		{
			name: "errors and warnings",
			result: LintResult{Issues: []Issue{
				{FromLinter: LinterInvalid, Severity: SeverityError},
				{FromLinter: LinterConflict, Severity: SeverityWarning},
				{FromLinter: LinterConflict, Severity: SeverityWarning},
			}},
			want: []string{"3 issues (1 error, 2 warnings):", "* invalid-class: 1", "* class-conflict: 2"},
		},
		{
			name: "truncated",
			result: LintResult{
				Issues:         []Issue{{FromLinter: LinterDuplicate, Severity: SeverityWarning}},
				TruncatedCount: 4,
			},
			want: []string{"1 issue (4 issues truncated):", "* duplicate-class: 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			reporter := &Reporter{w: &buf}
			reporter.PrintSummary(tt.result)
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
