package syntax

import "sort"

// Lines maps byte offsets to 1-based line and column numbers.
type Lines struct {
	starts []int
	source []byte
}

// NewLines indexes the line starts of source.
func NewLines(source []byte) *Lines {
	starts := []int{0}
	for i, c := range source {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Lines{starts: starts, source: source}
}

// Position returns the 1-based line and column of offset.
func (l *Lines) Position(offset int) (line, column int) {
	idx := sort.Search(len(l.starts), func(i int) bool {
		return l.starts[i] > offset
	}) - 1
	if idx < 0 {
		idx = 0
	}
	return idx + 1, offset - l.starts[idx] + 1
}

// Line returns the text of the 1-based line without its newline.
func (l *Lines) Line(line int) string {
	if line < 1 || line > len(l.starts) {
		return ""
	}
	start := l.starts[line-1]
	end := len(l.source)
	if line < len(l.starts) {
		end = l.starts[line] - 1
	}
	if end > start && l.source[end-1] == '\r' {
		end--
	}
	return string(l.source[start:end])
}

// Count returns the number of lines.
func (l *Lines) Count() int {
	return len(l.starts)
}
