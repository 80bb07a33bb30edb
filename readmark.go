// Package readmark converts web pages, fetched by URL or supplied as raw
// HTML, into clean Markdown: boilerplate stripped, core content kept, and
// a metadata header (title, source URL, publish date) on top.
//
// A Converter captures its Options once at construction and holds no
// other state, so a single instance is safe for concurrent conversions;
// every call parses its own document.
package readmark

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/readmark/core"
	"github.com/gaurav-prasanna/readmark/core/extract"
	"github.com/gaurav-prasanna/readmark/core/fetch"
	"github.com/gaurav-prasanna/readmark/core/meta"
	"github.com/gaurav-prasanna/readmark/core/normalize"
	"github.com/gaurav-prasanna/readmark/core/render"
)

// Options and its enumerations are re-exported so callers only need this
// package for ordinary use.
type (
	Options = core.Options
	Rule    = core.Rule
)

const (
	ImagesAll      = core.ImagesAll
	ImagesNone     = core.ImagesNone
	ImagesAlt      = core.ImagesAlt
	ImagesAltParen = core.ImagesAltParen

	GFMEnabled  = core.GFMEnabled
	GFMDisabled = core.GFMDisabled
	GFMNoTables = core.GFMNoTables
)

// Converter turns HTML documents into Markdown under a fixed Options
// snapshot.
type Converter struct {
	opts    core.Options
	fetcher core.Fetcher
	engine  *render.Engine
}

// New creates a Converter. The zero Options value gives the defaults:
// images kept, GFM fully enabled, no data-URL placeholders.
func New(opts Options) *Converter {
	return NewWithFetcher(opts, fetch.New())
}

// NewWithFetcher creates a Converter using the caller's Fetcher.
func NewWithFetcher(opts Options, f core.Fetcher) *Converter {
	return &Converter{
		opts:    opts,
		fetcher: f,
		engine:  render.NewEngine(opts),
	}
}

// Result holds the pieces of one conversion.
type Result struct {
	Metadata core.Metadata
	Markdown string // rendered body, without the metadata header
}

// Output assembles the final text: the metadata header block, the
// "Markdown Content:" marker line, then the body.
func (r *Result) Output() string {
	var b strings.Builder
	b.WriteString("Title: " + r.Metadata.Title + "\n\n")
	if r.Metadata.SourceURL != "" {
		b.WriteString("URL Source: " + r.Metadata.SourceURL + "\n\n")
	}
	if r.Metadata.PublishedTime != "" {
		b.WriteString("Published Time: " + r.Metadata.PublishedTime + "\n\n")
	}
	b.WriteString("Markdown Content:\n\n")
	b.WriteString(strings.TrimSpace(r.Markdown))
	return b.String()
}

// Convert runs the full pipeline on raw HTML: normalize, parse, extract
// metadata, select content, normalize tables, render. sourceURL may be
// empty for standalone HTML; when present it ends up in the header and
// makes relative links absolute.
func (c *Converter) Convert(rawHTML, sourceURL string) (*Result, error) {
	cleaned := normalize.CleanHTML(rawHTML)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cleaned))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	pageMeta := meta.Extract(doc, sourceURL)
	content := extract.Select(doc, sourceURL)

	var markdown string
	if content.Length() > 0 {
		render.NormalizeTables(content)
		markdown, err = c.engine.Render(content.Get(0), origin(sourceURL))
		if err != nil {
			return nil, err
		}
	}

	return &Result{Metadata: pageMeta, Markdown: markdown}, nil
}

// ConvertURL fetches the page and converts it. A fetch failure is
// wrapped and returned; there is no retry. When the fetch was
// redirected, the final URL is the one recorded in the metadata and
// used for link resolution.
func (c *Converter) ConvertURL(ctx context.Context, rawURL string) (*Result, error) {
	res, err := c.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", rawURL, err)
	}
	sourceURL := rawURL
	if res.URL != "" {
		sourceURL = res.URL
	}
	return c.Convert(res.HTML, sourceURL)
}

// HTMLToMarkdown converts raw HTML into the assembled Markdown document.
func (c *Converter) HTMLToMarkdown(rawHTML, sourceURL string) (string, error) {
	r, err := c.Convert(rawHTML, sourceURL)
	if err != nil {
		return "", err
	}
	return r.Output(), nil
}

// URLToMarkdown fetches a page and converts it into the assembled
// Markdown document.
func (c *Converter) URLToMarkdown(ctx context.Context, rawURL string) (string, error) {
	r, err := c.ConvertURL(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return r.Output(), nil
}

// TidyMarkdown applies the Markdown tidy pass. It is never applied
// automatically by the conversion methods.
func (c *Converter) TidyMarkdown(markdown string) string {
	return render.Tidy(markdown)
}

// TidyMarkdown applies the Markdown tidy pass without a Converter.
func TidyMarkdown(markdown string) string {
	return render.Tidy(markdown)
}

// origin reduces a URL to scheme://host for link resolution.
func origin(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
