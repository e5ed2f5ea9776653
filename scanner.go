package twlint

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/yacobolo/twlint/internal/extract"
)

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Files skipped due to filtering
}

var (
	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// isDependencyOrDeclaration reports files that never carry markup of the
// project itself: installed packages, type declarations and minified bundles.
func isDependencyOrDeclaration(path string) bool {
	slashed := filepath.ToSlash(path)
	if strings.Contains("/"+slashed, "/node_modules/") {
		return true
	}
	return strings.HasSuffix(slashed, ".d.ts") ||
		strings.HasSuffix(slashed, ".d.mts") ||
		strings.HasSuffix(slashed, ".d.cts") ||
		strings.HasSuffix(slashed, ".min.js")
}

// isSupported reports whether the extractor understands path's extension.
func isSupported(path string) bool {
	return slices.Contains(extract.SupportedExtensions, strings.ToLower(filepath.Ext(path)))
}

// loadGitIgnore loads the .gitignore file once (thread-safe)
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile determines if a file should be excluded from scanning
//
// Three-layer filtering:
// 1. Extension check: only dialects the extractor understands
// 2. Pattern check: node_modules, declaration files and minified bundles
// 3. Gitignore check: only for relative paths
func shouldSkipFile(path string) bool {
	if !isSupported(path) {
		return true
	}

	if isDependencyOrDeclaration(path) {
		return true
	}

	// Absolute paths (like /tmp/...) should not be affected by project gitignore
	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}

	return false
}

// ScanFiles expands the scan patterns into the list of files to analyze
func ScanFiles(patterns []string) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if shouldSkipFile(match) {
				stats.FilesSkipped++
				continue
			}
			allFiles = append(allFiles, match)
			stats.FilesScanned++
		}
	}

	return allFiles, stats, nil
}

// GetRelativePath returns a relative path from the current working directory
func GetRelativePath(absPath string) string {
	if !filepath.IsAbs(absPath) {
		return absPath
	}

	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return absPath
	}

	return rel
}
