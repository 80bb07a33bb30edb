// Package normalize strips script, style and comment spans from raw HTML
// before parsing. It is a pure string transform: best-effort removal that
// never fails, leaving unmatched tags for the lenient parser downstream.
package normalize

import (
	"regexp"
	"strings"
)

var (
	scriptRe  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	styleRe   = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style\s*>`)
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// CleanHTML removes <script>, <style> and comment spans from raw markup
// and trims surrounding whitespace. Unterminated spans are left as-is.
func CleanHTML(raw string) string {
	out := scriptRe.ReplaceAllString(raw, "")
	out = styleRe.ReplaceAllString(out, "")
	out = commentRe.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}
