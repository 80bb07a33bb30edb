// Package render implements the HTML to Markdown rule engine, table
// normalization, the Markdown tidy pass, and the PDF/JSON output
// renderers for the CLI.
//
// The engine is built on the html-to-markdown converter registry: the
// registry performs a bottom-up depth-first traversal, rendering each
// element's children before applying the earliest-priority matching
// renderer to the element itself. Baseline rules register at
// PriorityEarly so they run ahead of the commonmark defaults; custom
// rules register earlier still so they override the baseline.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/readmark/core"
)

// Engine renders a content subtree to Markdown according to a fixed
// Options snapshot. The converter registry is assembled once here and is
// read-only afterwards, so one Engine may serve concurrent conversions.
type Engine struct {
	opts core.Options
	conv *converter.Converter
}

// NewEngine builds the rule table for the given options.
func NewEngine(opts core.Options) *Engine {
	var conv *converter.Converter
	switch opts.GFM {
	case core.GFMDisabled:
		conv = converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		)
	case core.GFMNoTables:
		conv = converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				strikethrough.NewStrikethroughPlugin(),
			),
		)
	default:
		conv = converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				strikethrough.NewStrikethroughPlugin(),
				table.NewTablePlugin(),
			),
		)
	}

	e := &Engine{opts: opts, conv: conv}
	e.registerCustomRules()
	e.registerBaseline()
	return e
}

// Render converts the subtree rooted at n to Markdown. A non-empty domain
// makes relative links and image sources absolute.
func (e *Engine) Render(n *html.Node, domain string) (string, error) {
	var copts []converter.ConvertOptionFunc
	if domain != "" {
		copts = append(copts, converter.WithDomain(domain))
	}
	out, err := e.conv.ConvertNode(n, copts...)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return string(out), nil
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
