package twlint

import "github.com/yacobolo/twlint/internal/analysis"

// Issue represents a single linting violation in golangci-lint format
type Issue struct {
	FromLinter  string       `json:"FromLinter"`  // "class-conflict"
	Text        string       `json:"Text"`        // "Class 'p-2' conflicts with 'p-4' (both set padding)"
	Severity    string       `json:"Severity"`    // "", "warning", "error"
	ClassName   string       `json:"ClassName"`   // "p-2"
	SourceLines []string     `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos     `json:"Pos"`         // File location
	LineRange   *LineRange   `json:"LineRange"`   // Optional range
	Replacement *Replacement `json:"Replacement"` // Optional fix suggestion
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "src/components/Button.tsx"
	Offset   int    `json:"Offset"`   // byte offset of the class name
	Line     int    `json:"Line"`     // 35
	Column   int    `json:"Column"`   // 15 (1-based, exact start of the class name)
}

// LineRange specifies a range of lines
type LineRange struct {
	From int `json:"From"`
	To   int `json:"To"`
}

// Replacement provides automated fix suggestion
type Replacement struct {
	NewText      string // "" removes a duplicate
	InlineLength int    // Length of text to replace
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Linter names reported in Issue.FromLinter, one per finding kind.
const (
	LinterInvalid     = "invalid-class"
	LinterDuplicate   = "duplicate-class"
	LinterConflict    = "class-conflict"
	LinterExtractable = "extractable-class"
)

// severityFor maps a finding kind to the lint severity policy:
// unknown classes fail the build, duplicates and conflicts warn and
// extractable classes are hints.
func severityFor(kind analysis.Kind) string {
	switch kind {
	case analysis.KindInvalid:
		return SeverityError
	case analysis.KindDuplicate, analysis.KindConflict:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

func linterFor(kind analysis.Kind) string {
	switch kind {
	case analysis.KindInvalid:
		return LinterInvalid
	case analysis.KindDuplicate:
		return LinterDuplicate
	case analysis.KindConflict:
		return LinterConflict
	default:
		return LinterExtractable
	}
}

// newIssue converts a finding of file into an Issue. Duplicates carry a
// removal replacement.
func newIssue(file string, finding analysis.Finding, sourceLine string) Issue {
	issue := Issue{
		FromLinter: linterFor(finding.Kind),
		Text:       finding.Message,
		Severity:   severityFor(finding.Kind),
		ClassName:  finding.ClassName,
		Pos: IssuePos{
			Filename: file,
			Offset:   finding.Position.Offset,
			Line:     finding.Position.Line,
			Column:   finding.Position.Column,
		},
	}
	if sourceLine != "" {
		issue.SourceLines = []string{sourceLine}
	}
	if finding.Kind == analysis.KindDuplicate {
		issue.Replacement = &Replacement{InlineLength: finding.Position.Length}
	}
	return issue
}
