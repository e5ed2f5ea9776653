package twlint

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// markdownIssueLimit caps the rows of each issue table.
const markdownIssueLimit = 50

// WriteMarkdown writes the lint result as a shareable Markdown report
func WriteMarkdown(w io.Writer, result *LintResult) error {
	bw := bufio.NewWriter(w)
	errors, warnings, infos := countSeverities(result.Issues)

	fmt.Fprintln(bw, "# Utility Class Linter Report")
	fmt.Fprintln(bw, "")
	fmt.Fprintf(bw, "*Generated %s*\n", time.Now().Format("2006-01-02 15:04"))
	fmt.Fprintln(bw, "")

	// Executive summary
	fmt.Fprintln(bw, "## Executive Summary")
	fmt.Fprintln(bw, "")
	fmt.Fprintln(bw, "| Metric | Value |")
	fmt.Fprintln(bw, "|--------|-------|")
	fmt.Fprintf(bw, "| **Status** | %s |\n", markdownStatus(errors, warnings))
	fmt.Fprintf(bw, "| **Total Issues** | %d (%s, %s, %s) |\n",
		len(result.Issues),
		pluralizeCount(errors, "error", "errors"),
		pluralizeCount(warnings, "warning", "warnings"),
		pluralizeCount(infos, "hint", "hints"))
	fmt.Fprintf(bw, "| **Files Scanned** | %d |\n", result.FilesScanned)
	fmt.Fprintf(bw, "| **Classes Found** | %d |\n", result.ClassesFound)
	if result.TruncatedCount > 0 {
		fmt.Fprintf(bw, "| **Truncated** | %d |\n", result.TruncatedCount)
	}
	fmt.Fprintln(bw, "")

	// Breakdown by linter
	fmt.Fprintln(bw, "## 📊 Issues by Linter")
	fmt.Fprintln(bw, "")
	fmt.Fprintln(bw, "| Linter | Severity | Issues |")
	fmt.Fprintln(bw, "|--------|----------|--------|")
	for _, kind := range reportKinds {
		linter := linterFor(kind)
		fmt.Fprintf(bw, "| `%s` | %s | %d |\n", linter, severityLabel(severityFor(kind)), result.IssuesByKind[linter])
	}
	fmt.Fprintln(bw, "")

	writeMarkdownIssues(bw, "## ❌ Errors", result.Issues, SeverityError)
	writeMarkdownIssues(bw, "## ⚠️ Warnings", result.Issues, SeverityWarning)
	writeMarkdownIssues(bw, "## 💡 Hints", result.Issues, SeverityInfo)

	if len(result.Warnings) > 0 {
		fmt.Fprintln(bw, "## Notes")
		fmt.Fprintln(bw, "")
		for _, warning := range result.Warnings {
			fmt.Fprintf(bw, "- %s\n", warning)
		}
		fmt.Fprintln(bw, "")
	}

	fmt.Fprintln(bw, "---")
	fmt.Fprintln(bw, "*Generated by twlint v1.0*")

	return bw.Flush()
}

// writeMarkdownIssues writes one table with the issues of a severity
func writeMarkdownIssues(w io.Writer, title string, issues []Issue, severity string) {
	var selected []Issue
	for _, issue := range issues {
		if issue.Severity == severity {
			selected = append(selected, issue)
		}
	}
	if len(selected) == 0 {
		return
	}

	fmt.Fprintln(w, title)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "| Location | Class | Message | Linter |")
	fmt.Fprintln(w, "|----------|-------|---------|--------|")
	for i, issue := range selected {
		if i >= markdownIssueLimit {
			fmt.Fprintf(w, "\n*…and %d more*\n", len(selected)-markdownIssueLimit)
			break
		}
		fmt.Fprintf(w, "| `%s:%d:%d` | `%s` | %s | %s |\n",
			issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column,
			escapeMarkdownCell(issue.ClassName),
			escapeMarkdownCell(issue.Text),
			issue.FromLinter)
	}
	fmt.Fprintln(w, "")
}

// markdownStatus returns the status badge for the report header
func markdownStatus(errors, warnings int) string {
	switch {
	case errors > 0:
		return "🔴 Needs Attention"
	case warnings > 0:
		return "🟡 Warnings"
	default:
		return "🟢 Clean"
	}
}

// escapeMarkdownCell keeps table cells on one row
func escapeMarkdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
