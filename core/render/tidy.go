package render

import (
	"regexp"
	"strings"
)

var (
	linkRe     = regexp.MustCompile(`\[([^\]]*)\]\(([^()]*)\)`)
	blankRunRe = regexp.MustCompile(`\n{3,}`)
	leadWSRe   = regexp.MustCompile(`(?m)^[ \t]+`)
	anySpaceRe = regexp.MustCompile(`\s+`)
)

// Tidy post-processes rendered Markdown: link text and URLs that were
// split across lines are rejoined, runs of three or more newlines shrink
// to two, leading indentation is stripped, and the result is trimmed.
// Tidy is idempotent; stripping indentation can turn whitespace-only
// lines into fresh blank-line runs, so the newline collapse runs once
// more afterwards.
func Tidy(md string) string {
	md = linkRe.ReplaceAllStringFunc(md, func(m string) string {
		parts := linkRe.FindStringSubmatch(m)
		text := strings.TrimSpace(anySpaceRe.ReplaceAllString(parts[1], " "))
		url := anySpaceRe.ReplaceAllString(parts[2], "")
		return "[" + text + "](" + url + ")"
	})
	md = blankRunRe.ReplaceAllString(md, "\n\n")
	md = leadWSRe.ReplaceAllString(md, "")
	md = blankRunRe.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md)
}
