package twlint

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
)

// SummaryReporter prints statistics tables instead of individual issues
type SummaryReporter struct {
	w         io.Writer
	useColors bool
}

// NewSummaryReporter creates a summary reporter
func NewSummaryReporter(w io.Writer, useColors bool) *SummaryReporter {
	return &SummaryReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs the scan counters
func (r *SummaryReporter) PrintStatistics(result LintResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Class Linter Statistics", r.useColors))

	validation := "off"
	if result.Validated {
		validation = "on"
	}

	table := r.newTable([]string{"Metric", "Value"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.AppendBulk([][]string{
		{"Files Scanned", fmt.Sprintf("%d", result.FilesScanned)},
		{"Files Skipped", fmt.Sprintf("%d", result.FilesSkipped)},
		{"Files Failed", fmt.Sprintf("%d", result.FilesFailed)},
		{"Classes Found", fmt.Sprintf("%d", result.ClassesFound)},
		{"Class Validation", validation},
	})
	table.Render()
}

// PrintBreakdown outputs issue counts per linter with their severity
func (r *SummaryReporter) PrintBreakdown(result LintResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Issues by Linter", r.useColors))

	table := r.newTable([]string{"Linter", "Severity", "Issues"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	total := 0
	for _, kind := range reportKinds {
		linter := linterFor(kind)
		count := result.IssuesByKind[linter]
		total += count
		table.Append([]string{linter, severityLabel(severityFor(kind)), fmt.Sprintf("%d", count)})
	}
	table.SetFooter([]string{"Total", "", fmt.Sprintf("%d", total)})
	table.Render()
}

// PrintTopClasses outputs the class names that produced the most issues
func (r *SummaryReporter) PrintTopClasses(result LintResult, limit int) {
	counts := make(map[string]int)
	for _, issue := range result.Issues {
		if issue.ClassName != "" {
			counts[issue.ClassName]++
		}
	}
	if len(counts) == 0 {
		return
	}

	type classCount struct {
		name  string
		count int
	}
	ranked := make([]classCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, classCount{name, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Most Reported Classes", r.useColors))

	table := r.newTable([]string{"Class", "Issues"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, c := range ranked {
		table.Append([]string{c.name, fmt.Sprintf("%d", c.count)})
	}
	table.Render()
}

// PrintWarnings shows linter warnings
func (r *SummaryReporter) PrintWarnings(result LintResult) {
	if len(result.Warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "-----------")

	for _, warning := range result.Warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

func (r *SummaryReporter) newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(r.w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	return table
}

func severityLabel(severity string) string {
	if severity == SeverityInfo {
		return "info"
	}
	return severity
}
