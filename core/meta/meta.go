// Package meta extracts the title and published time of a parsed page.
// Published-time lookup never fails the conversion: unparseable or missing
// dates simply leave the field empty.
package meta

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"

	"github.com/gaurav-prasanna/readmark/core"
	"github.com/gaurav-prasanna/readmark/internal/logger"
)

// DefaultTitle is reported when the page has no usable <title>.
const DefaultTitle = "Untitled"

// publishedSelectors is tried in order; the first matching element that
// yields a parseable date wins.
var publishedSelectors = []string{
	"meta[property='article:published_time']",
	"meta[property='og:published_time']",
	"meta[itemprop='datePublished']",
	"meta[name='date']",
	"meta[name='publish-date']",
	"meta[name='publication-date']",
	"time[datetime]",
	"time[pubdate]",
	"[itemprop='datePublished']",
	".published-date",
	".post-date",
	".entry-date",
}

// wikiFooterDate matches a "day month-name year" date in the wiki footer,
// e.g. "last edited on 2 January 2024". Localized footers do not match and
// fall through to the generic path.
var wikiFooterDate = regexp.MustCompile(`(\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4})`)

const wikiFooterSelector = "#footer-info-lastmod"

// Extract pulls title and published time from the parsed document.
func Extract(doc *goquery.Document, sourceURL string) core.Metadata {
	return core.Metadata{
		Title:         Title(doc),
		PublishedTime: PublishedTime(doc, sourceURL),
		SourceURL:     sourceURL,
	}
}

// Title returns the document's <title> text, or DefaultTitle when absent
// or empty.
func Title(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return DefaultTitle
	}
	return title
}

// PublishedTime returns the page's publish date as an RFC 3339 string, or
// "" when no candidate source yields a parseable date.
func PublishedTime(doc *goquery.Document, sourceURL string) string {
	if isWikiHost(sourceURL) {
		if ts := wikiPublishedTime(doc); ts != "" {
			return ts
		}
		// Fall through to the generic path rather than giving up.
	}

	for _, sel := range publishedSelectors {
		m := doc.Find(sel).First()
		if m.Length() == 0 {
			continue
		}
		for _, raw := range candidateValues(m) {
			if ts := parseTime(raw); ts != "" {
				logger.Debug("published time found", "selector", sel, "value", ts)
				return ts
			}
		}
	}
	return ""
}

// candidateValues lists an element's date sources in priority order:
// content attribute, then datetime, then pubdate, then its text.
func candidateValues(s *goquery.Selection) []string {
	var vals []string
	for _, attr := range []string{"content", "datetime", "pubdate"} {
		if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
			vals = append(vals, v)
		}
	}
	if text := strings.TrimSpace(s.Text()); text != "" {
		vals = append(vals, text)
	}
	return vals
}

// wikiPublishedTime searches the wiki footer for a "day month-name year"
// date. Parse failures return "" so the generic path can take over.
func wikiPublishedTime(doc *goquery.Document) string {
	text := doc.Find(wikiFooterSelector).First().Text()
	m := wikiFooterDate.FindString(text)
	if m == "" {
		return ""
	}
	t, err := time.Parse("2 January 2006", normalizeSpaces(m))
	if err != nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(raw string) string {
	t, err := dateparse.ParseAny(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

var spacesRe = regexp.MustCompile(`\s+`)

func normalizeSpaces(s string) string {
	return spacesRe.ReplaceAllString(s, " ")
}

func isWikiHost(pageURL string) bool {
	if pageURL == "" {
		return false
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "wikipedia.org" || strings.HasSuffix(host, ".wikipedia.org")
}
