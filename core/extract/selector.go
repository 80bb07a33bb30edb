// Package extract isolates the primary readable content of a parsed page.
// It removes boilerplate (navigation, ads, footers, sidebars) with a
// protect-then-remove pass, then picks the best content container from an
// ordered selector list.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/readmark/internal/logger"
)

// contentSelectors is evaluated most-specific first. The first selector
// that matches anything decides the content container, and everything it
// matches is protected from boilerplate removal.
var contentSelectors = []string{
	"article",
	"[role='main']",
	"main",
	"#main-content",
	".main-content",
	"#article",
	".article-content",
	".post-content",
	".entry-content",
	"#content",
	".content",
	".post",
}

// boilerplateSelectors match page chrome that never belongs in the output.
var boilerplateSelectors = []string{
	"nav",
	"header",
	"footer",
	"aside",
	"[role='navigation']",
	"[role='banner']",
	"[role='contentinfo']",
	"[role='complementary']",
	".nav",
	".navbar",
	".menu",
	".sidebar",
	".breadcrumb",
	".pagination",
	".ads",
	".ad",
	".advertisement",
	".social-share",
	".share-buttons",
	".related-posts",
	".comments",
	"#comments",
}

// wikiNoiseSelectors are non-content substructures removed from inside the
// wiki content container.
var wikiNoiseSelectors = []string{
	".navbox",
	".vertical-navbox",
	".mw-editsection",
	".mw-empty-elt",
}

const wikiContentID = "#mw-content-text"

// Select returns the element subtree holding the page's primary content.
// Known wiki-style hosts use their fixed content container; all other
// pages go through boilerplate cleanup followed by the ordered selector
// list, falling back to <body>.
func Select(doc *goquery.Document, pageURL string) *goquery.Selection {
	if isWikiHost(pageURL) {
		if c := doc.Find(wikiContentID); c.Length() > 0 {
			for _, sel := range wikiNoiseSelectors {
				c.Find(sel).Remove()
			}
			logger.Debug("selected wiki content container", "selector", wikiContentID)
			return c.First()
		}
	}

	RemoveBoilerplate(doc)

	for _, sel := range contentSelectors {
		if m := doc.Find(sel); m.Length() > 0 {
			logger.Debug("selected content container", "selector", sel)
			return m.First()
		}
	}
	logger.Debug("no content selector matched, falling back to body")
	return doc.Find("body").First()
}

// RemoveBoilerplate deletes boilerplate elements from the whole document
// while protecting content containers. Two phases: first every element
// matched by the content selectors, plus all of its ancestors, is recorded
// in an identity set; then boilerplate matches are removed unless they are
// protected or sit inside a content element. Protection wins when both
// lists match the same element.
func RemoveBoilerplate(doc *goquery.Document) {
	content := make(map[*html.Node]bool)
	protected := make(map[*html.Node]bool)
	for _, sel := range contentSelectors {
		for _, n := range doc.Find(sel).Nodes {
			content[n] = true
			for p := n; p != nil; p = p.Parent {
				protected[p] = true
			}
		}
	}

	for _, sel := range boilerplateSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			n := s.Get(0)
			if protected[n] || insideContent(n, content) {
				return
			}
			s.Remove()
		})
	}
}

// insideContent reports whether n is a descendant of a content-matched
// element. The protected ancestor chain is not enough here: every node has
// the document root as an ancestor, so containment is checked against the
// content matches only.
func insideContent(n *html.Node, content map[*html.Node]bool) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if content[p] {
			return true
		}
	}
	return false
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
