// Package textutil provides boundary-safe truncation and paragraph
// extraction helpers shared by the chunker and the normalizer. Lengths are
// measured in Unicode code points, matching the post-length semantics of the
// downstream platforms.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultEllipsis is appended to truncated text.
const DefaultEllipsis = "..."

const frontmatterDelimiter = "---"

// Length returns the number of code points in s.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate shortens text to at most max code points using the default
// ellipsis. See TruncateWith.
func Truncate(text string, max int) string {
	return TruncateWith(text, max, DefaultEllipsis)
}

// TruncateWith shortens text to at most max code points, cutting at the last
// whitespace before the budget when one exists and hard-cutting otherwise.
// The ellipsis is appended to any shortened result. The operation is
// idempotent: input that already fits is returned unchanged, and truncating
// a truncated result yields the same string.
func TruncateWith(text string, max int, ellipsis string) string {
	if max < 0 {
		max = 0
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	limit := max - utf8.RuneCountInString(ellipsis)
	if limit <= 0 {
		// Budget cannot even hold the ellipsis. Emit what fits rather than
		// looping or erroring.
		suffix := []rune(ellipsis)
		if len(suffix) > max {
			suffix = suffix[:max]
		}
		return string(suffix)
	}

	cut := -1
	for i := 0; i < limit && i < len(runes); i++ {
		if unicode.IsSpace(runes[i]) {
			cut = i
		}
	}
	if cut <= 0 {
		cut = limit
	}

	head := strings.TrimRight(string(runes[:cut]), " \t\r\n")
	return head + ellipsis
}

// FirstParagraph returns the first non-blank paragraph of content after
// stripping any leading frontmatter block and all heading lines. Paragraphs
// are delimited by blank lines. Returns "" when no paragraph exists.
func FirstParagraph(content string) string {
	content = StripFrontmatter(content)

	var kept []string
	for _, line := range strings.Split(content, "\n") {
		if isHeadingLine(line) {
			continue
		}
		kept = append(kept, line)
	}

	for _, para := range strings.Split(strings.Join(kept, "\n"), "\n\n") {
		if trimmed := strings.TrimSpace(para); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// StripFrontmatter removes a leading frontmatter block (text between a "---"
// line and the next "---" line). An unterminated block leaves the content
// untouched so the text is treated as a plain body.
func StripFrontmatter(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontmatterDelimiter {
		return content
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelimiter {
			return strings.Join(lines[i+1:], "\n")
		}
	}
	return content
}

func isHeadingLine(line string) bool {
	trimmed := strings.TrimLeft(line, "#")
	if trimmed == line {
		return false
	}
	return len(trimmed) == 0 || trimmed[0] == ' ' || trimmed[0] == '\t'
}
