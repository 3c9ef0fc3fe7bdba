// Package docnav navigates markdown documents by heading path. A path
// like ["API", "Generate a completion", "Parameters"] is resolved one
// level at a time: the first title against level-1 headings of the whole
// document, the second against level-2 headings of the section found,
// and so on.
package docnav

import (
	"fmt"
	"regexp"
	"strings"
)

// Per-level query status codes, one per entry of the title path.
const (
	StatusFound        = 1
	StatusMiss         = 0
	StatusNotAttempted = -1
)

// truncationSuffix is appended whenever content is cut to a length cap.
const truncationSuffix = "\n... (content truncated)"

// Result describes one navigation attempt.
type Result struct {
	Success bool `json:"success"`
	// Content is the section text, truncated when a cap applies. Blank
	// lines are stripped during extraction.
	Content string `json:"content"`
	// ContentLength is the length before truncation, in characters.
	ContentLength int `json:"content_length"`
	// CurrentLevel is the deepest level reached, starting at 1.
	CurrentLevel int `json:"current_level"`
	// FailedLevel is the level at which matching stopped, zero on success.
	FailedLevel int      `json:"failed_level,omitempty"`
	Message     string   `json:"message"`
	StatusList  []int    `json:"status_list"`
	QueryPath   []string `json:"query_path"`
	// AvailableTitles are the titles present at the deepest level reached.
	AvailableTitles []string `json:"available_titles"`
	// NextLevelTitles are the titles one level below the found section.
	// Empty when navigation failed.
	NextLevelTitles []string `json:"next_level_titles"`
}

// TitlesAtLevel returns every heading title at exactly the given level,
// without the leading marks.
func TitlesAtLevel(content string, level int) []string {
	if level < 1 {
		return []string{}
	}
	pattern := headingPattern(level)

	titles := []string{}
	for _, line := range strings.Split(content, "\n") {
		if m := pattern.FindStringSubmatch(line); m != nil {
			titles = append(titles, strings.TrimSpace(m[1]))
		}
	}
	return titles
}

// Navigate resolves titlePath level by level. maxLength caps the
// returned content in characters; zero or negative disables the cap. An
// empty path succeeds with the whole document and its top-level titles.
func Navigate(content string, titlePath []string, maxLength int) Result {
	current := content
	level := 0
	statusList := make([]int, 0, len(titlePath))
	var last sectionResult

	for _, title := range titlePath {
		level++
		last = findSection(current, title, level)
		if !last.success {
			statusList = append(statusList, StatusMiss)
			for len(statusList) < len(titlePath) {
				statusList = append(statusList, StatusNotAttempted)
			}
			text, originalLen := truncate(current, maxLength)
			return Result{
				Success:         false,
				Content:         text,
				ContentLength:   originalLen,
				CurrentLevel:    level,
				FailedLevel:     level,
				Message:         fmt.Sprintf("Failed at level %d: %s", level, last.message),
				StatusList:      statusList,
				QueryPath:       titlePath,
				AvailableTitles: last.availableTitles,
				NextLevelTitles: []string{},
			}
		}
		current = last.content
		statusList = append(statusList, StatusFound)
	}

	availableTitles := last.availableTitles
	if availableTitles == nil {
		availableTitles = []string{}
	}

	text, originalLen := truncate(current, maxLength)
	return Result{
		Success:         true,
		Content:         text,
		ContentLength:   originalLen,
		CurrentLevel:    level,
		Message:         "Found: " + strings.Join(titlePath, " > "),
		StatusList:      statusList,
		QueryPath:       titlePath,
		AvailableTitles: availableTitles,
		NextLevelTitles: TitlesAtLevel(current, level+1),
	}
}

type sectionResult struct {
	success         bool
	content         string
	title           string
	message         string
	availableTitles []string
}

// findSection extracts one section at the given heading level. The
// returned content keeps headings above the section's level that appear
// before the first same-level heading, so nested lookups still see their
// surrounding context.
func findSection(content, targetTitle string, level int) sectionResult {
	availableTitles := TitlesAtLevel(content, level)
	if level < 1 {
		return sectionResult{
			message:         "heading level must be positive",
			availableTitles: availableTitles,
		}
	}

	mark := strings.Repeat("#", level)
	pattern := headingPattern(level)
	lines := strings.Split(content, "\n")

	targetIdx := -1
	nextSameIdx := -1
	firstSameIdx := -1

	for i, line := range lines {
		if !strings.HasPrefix(line, mark+" ") {
			continue
		}
		if firstSameIdx == -1 {
			firstSameIdx = i
		}
		m := pattern.FindStringSubmatch(line)
		if m != nil && strings.TrimSpace(m[1]) == targetTitle {
			targetIdx = i
		} else if targetIdx >= 0 {
			nextSameIdx = i
			break
		}
	}

	if targetIdx == -1 {
		return sectionResult{
			message:         fmt.Sprintf("Title '%s' not found at level %d", targetTitle, level),
			availableTitles: availableTitles,
		}
	}

	var resultLines []string
	for i := 0; i < firstSameIdx; i++ {
		line := lines[i]
		if startsHigherHeading(line, level) || !startsHeadingUpTo(line, level) {
			resultLines = append(resultLines, line)
		}
	}

	endIdx := len(lines)
	if nextSameIdx >= 0 {
		endIdx = nextSameIdx
	}
	resultLines = append(resultLines, lines[targetIdx:endIdx]...)

	kept := make([]string, 0, len(resultLines))
	for _, line := range resultLines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}

	return sectionResult{
		success:         true,
		content:         strings.Join(kept, "\n"),
		title:           mark + " " + targetTitle,
		message:         "Found section: " + targetTitle,
		availableTitles: availableTitles,
	}
}

func headingPattern(level int) *regexp.Regexp {
	return regexp.MustCompile("^" + strings.Repeat("#", level) + `\s+(.+?)\s*$`)
}

// startsHigherHeading reports whether line opens a heading above the
// given level (fewer marks).
func startsHigherHeading(line string, level int) bool {
	for l := 1; l < level; l++ {
		if strings.HasPrefix(line, strings.Repeat("#", l)+" ") {
			return true
		}
	}
	return false
}

// startsHeadingUpTo reports whether line opens a heading at the given
// level or above.
func startsHeadingUpTo(line string, level int) bool {
	for l := 1; l <= level; l++ {
		if strings.HasPrefix(line, strings.Repeat("#", l)+" ") {
			return true
		}
	}
	return false
}

// truncate caps content at maxLength characters, reserving room for the
// truncation suffix. It returns the (possibly cut) text and the original
// length.
func truncate(content string, maxLength int) (string, int) {
	runes := []rune(content)
	length := len(runes)
	if maxLength <= 0 || length <= maxLength {
		return content, length
	}
	keep := maxLength - len([]rune(truncationSuffix))
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + truncationSuffix, length
}
