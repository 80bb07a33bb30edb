// Package core defines the shared types and stage interfaces for readmark.
// Each stage of the conversion pipeline is a small, testable package.
package core

import (
	"context"

	"golang.org/x/net/html"
)

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	// URL is where the page was actually served from, after any
	// redirects.
	URL        string
	StatusCode int
	HTML       string
}

// Metadata holds the fields assembled into the output header.
type Metadata struct {
	Title         string // never empty; "Untitled" when the page has no title
	PublishedTime string // RFC 3339, or "" when no date was found
	SourceURL     string
}

// ImageMode controls how ordinary (non data-URL) images render.
type ImageMode int

const (
	// ImagesAll keeps the full image reference. Default.
	ImagesAll ImageMode = iota
	// ImagesNone drops images entirely, alt text included.
	ImagesNone
	// ImagesAlt keeps only the alt text as plain text.
	ImagesAlt
	// ImagesAltParen keeps the alt text wrapped in parentheses.
	ImagesAltParen
)

// GFMMode controls which GitHub Flavored Markdown extensions are active.
type GFMMode int

const (
	// GFMEnabled turns on tables, strikethrough and task lists. Default.
	GFMEnabled GFMMode = iota
	// GFMDisabled turns all three off.
	GFMDisabled
	// GFMNoTables keeps strikethrough and task lists but renders tables
	// as plain text.
	GFMNoTables
)

// Rule is a caller-supplied replacement rule for the Markdown engine.
// Replace receives the already-rendered Markdown of the element's children
// and the element itself, and returns the element's Markdown text.
type Rule struct {
	// Filter lists the tag names the rule applies to.
	Filter []string
	// Match optionally narrows the rule beyond the tag name. A nil Match
	// matches every element with a Filter tag.
	Match func(n *html.Node) bool
	// Replace produces the Markdown for the element.
	Replace func(content string, n *html.Node) string
	// Inline marks the rule's output as inline rather than block level.
	Inline bool
}

// Options is the immutable conversion configuration, captured once at
// construction and never mutated afterwards.
type Options struct {
	Images              ImageMode
	GFM                 GFMMode
	DataURLPlaceholders bool
	// Rules maps rule names to custom rules. Custom rules take precedence
	// over the baseline set; between custom rules covering the same
	// element, the rule later in sorted name order wins, so conversion
	// stays deterministic.
	Rules map[string]Rule
	// Keep retains elements the baseline drop rules would otherwise
	// remove, re-serialized as their original markup.
	Keep func(n *html.Node) bool
}

// Fetcher retrieves raw HTML from a URL. A single attempt is made; any
// retry or timeout policy beyond the client default belongs to the
// implementation, not the conversion pipeline.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}
