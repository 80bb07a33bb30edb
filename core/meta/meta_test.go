package meta

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing test HTML: %v", err)
	}
	return doc
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"simple", "<head><title>My Page</title></head>", "My Page"},
		{"trimmed", "<head><title>  Spaced  </title></head>", "Spaced"},
		{"missing", "<head></head><body>x</body>", DefaultTitle},
		{"empty", "<head><title>   </title></head>", DefaultTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(parseDoc(t, tt.html)); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPublishedTimeGeneric(t *testing.T) {
	tests := []struct {
		name       string
		html       string
		wantPrefix string
	}{
		{
			name:       "og_article_published_time",
			html:       `<head><meta property="article:published_time" content="2024-03-15T08:30:00Z"></head>`,
			wantPrefix: "2024-03-15T08:30:00",
		},
		{
			name:       "meta_name_date",
			html:       `<head><meta name="date" content="2023-11-02"></head>`,
			wantPrefix: "2023-11-02",
		},
		{
			name:       "time_datetime_attribute",
			html:       `<body><time datetime="2022-06-01T12:00:00Z">June 1st</time></body>`,
			wantPrefix: "2022-06-01T12:00:00",
		},
		{
			name:       "itemprop_text_content",
			html:       `<body><span itemprop="datePublished">2021-09-09</span></body>`,
			wantPrefix: "2021-09-09",
		},
		{
			name:       "class_post_date",
			html:       `<body><div class="post-date">2020-02-20</div></body>`,
			wantPrefix: "2020-02-20",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PublishedTime(parseDoc(t, tt.html), "https://example.com/a")
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("PublishedTime() = %q, want prefix %q", got, tt.wantPrefix)
			}
		})
	}
}

func TestPublishedTimePriorityOrder(t *testing.T) {
	// The meta tag outranks the <time> element, and within an element the
	// content attribute outranks text.
	doc := parseDoc(t, `<head>
		<meta property="article:published_time" content="2024-01-01T00:00:00Z">
	</head><body>
		<time datetime="1999-12-31T00:00:00Z">old</time>
	</body>`)

	got := PublishedTime(doc, "")
	if !strings.HasPrefix(got, "2024-01-01") {
		t.Errorf("PublishedTime() = %q, want the meta tag value", got)
	}
}

func TestPublishedTimeAbsent(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"no_candidates", "<body><p>no dates here</p></body>"},
		{"unparseable_value", `<head><meta name="date" content="not a date"></head>`},
		{"empty_content", `<head><meta name="date" content=""></head>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PublishedTime(parseDoc(t, tt.html), ""); got != "" {
				t.Errorf("PublishedTime() = %q, want empty", got)
			}
		})
	}
}

func TestPublishedTimeWikiFooter(t *testing.T) {
	doc := parseDoc(t, `<body>
		<div id="mw-content-text"><p>text</p></div>
		<li id="footer-info-lastmod">This page was last edited on 2 January 2024, at 03:21.</li>
	</body>`)

	got := PublishedTime(doc, "https://en.wikipedia.org/wiki/Go")
	if !strings.HasPrefix(got, "2024-01-02") {
		t.Errorf("PublishedTime() = %q, want prefix 2024-01-02", got)
	}
}

func TestPublishedTimeWikiFooterUnparseableFallsThrough(t *testing.T) {
	// Localized footer text does not match the day month-name year
	// pattern; the generic path must still find the meta tag.
	doc := parseDoc(t, `<head>
		<meta property="article:published_time" content="2023-05-05T00:00:00Z">
	</head><body>
		<li id="footer-info-lastmod">Zuletzt bearbeitet am 2. Januar 2024</li>
	</body>`)

	got := PublishedTime(doc, "https://de.wikipedia.org/wiki/Go")
	if !strings.HasPrefix(got, "2023-05-05") {
		t.Errorf("PublishedTime() = %q, want the generic meta value", got)
	}
}

func TestExtract(t *testing.T) {
	doc := parseDoc(t, `<head><title>T</title></head><body></body>`)
	m := Extract(doc, "https://example.com/x")
	if m.Title != "T" {
		t.Errorf("Title = %q, want T", m.Title)
	}
	if m.SourceURL != "https://example.com/x" {
		t.Errorf("SourceURL = %q", m.SourceURL)
	}
	if m.PublishedTime != "" {
		t.Errorf("PublishedTime = %q, want empty", m.PublishedTime)
	}
}
