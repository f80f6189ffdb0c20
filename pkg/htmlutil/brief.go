package htmlutil

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// blockBreakPattern matches tags that end a visual line in a brief.
var blockBreakPattern = regexp.MustCompile(`(?i)<br\s*/?>|</(?:p|div|li|h[1-6])\s*>`)

// spacePattern matches runs of horizontal whitespace, including the
// no-break and ideographic spaces legacy briefs use for indentation.
var spacePattern = regexp.MustCompile(`[ \t\x{00A0}\x{3000}]+`)

var strict = bluemonday.StrictPolicy()

// CleanBrief turns a brief that may carry HTML markup into plain text. Block
// tags become line breaks, every other tag is dropped, entities are decoded
// and each line is trimmed. Empty lines are removed.
func CleanBrief(brief string) string {
	if brief == "" {
		return ""
	}

	s := blockBreakPattern.ReplaceAllString(brief, "\n")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strict.Sanitize(s)
	// Sanitize escapes what it keeps; undo that along with the source's own
	// entities.
	s = html.UnescapeString(s)

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(spacePattern.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n")
}
