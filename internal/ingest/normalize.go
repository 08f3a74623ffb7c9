package ingest

import (
	"regexp"
	"strings"
)

var (
	crlfPattern        = regexp.MustCompile(`\r\n?`)
	runSpacePattern    = regexp.MustCompile(`[ \t]+`)
	blankLinesPattern  = regexp.MustCompile(`\n{3,}`)
	hyphenBreakPattern = regexp.MustCompile(`-\n(\w)`)
	spacePunctPattern  = regexp.MustCompile(` ([,.!?;:])`)
)

// NormalizeWhitespace canonicalizes text before analysis: CRLF to LF,
// runs of spaces and tabs to one space, at most one blank line, and
// line-break hyphenation rejoined (common in PDF and OCR output).
func NormalizeWhitespace(text string) string {
	if text == "" {
		return ""
	}
	text = crlfPattern.ReplaceAllString(text, "\n")
	text = runSpacePattern.ReplaceAllString(text, " ")
	text = blankLinesPattern.ReplaceAllString(text, "\n\n")
	text = hyphenBreakPattern.ReplaceAllString(text, "$1")
	text = spacePunctPattern.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
