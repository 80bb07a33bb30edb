package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/readmark/core"
)

// RenderPDF converts a Markdown body plus its metadata into a styled PDF.
// Used by the CLI when the output target ends in .pdf.
func RenderPDF(markdown string, meta core.Metadata) ([]byte, error) {
	p := &pdfWriter{doc: gofpdf.New("P", "mm", "A4", "")}
	p.doc.SetAutoPageBreak(true, 15)
	p.doc.AddPage()

	p.header(meta)
	p.body(markdown)

	var buf bytes.Buffer
	if err := p.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfWriter struct {
	doc    *gofpdf.Fpdf
	inCode bool
}

func (p *pdfWriter) header(meta core.Metadata) {
	p.doc.SetFont("Helvetica", "B", 18)
	p.doc.MultiCell(0, 8, meta.Title, "", "L", false)

	p.doc.SetFont("Helvetica", "I", 9)
	p.doc.SetTextColor(100, 100, 100)
	if meta.SourceURL != "" {
		p.doc.MultiCell(0, 5, "Source: "+meta.SourceURL, "", "L", false)
	}
	if meta.PublishedTime != "" {
		p.doc.MultiCell(0, 5, "Published: "+meta.PublishedTime, "", "L", false)
	}
	p.doc.SetTextColor(0, 0, 0)
	p.doc.Ln(6)
}

func (p *pdfWriter) body(markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		p.line(line)
	}
}

var (
	orderedItemRe = regexp.MustCompile(`^\d+\.\s`)
	headingRe     = regexp.MustCompile(`^(#{1,6})\s*(.*)$`)
)

func (p *pdfWriter) line(line string) {
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, "```") {
		p.inCode = !p.inCode
		p.doc.Ln(2)
		return
	}
	if p.inCode {
		p.doc.SetFont("Courier", "", 9)
		p.doc.SetFillColor(245, 245, 245)
		p.doc.MultiCell(0, 4.5, line, "", "L", true)
		return
	}

	switch {
	case trimmed == "":
		p.doc.Ln(3)
	case trimmed == "---" || trimmed == "***":
		p.doc.Ln(2)
		x, y := p.doc.GetXY()
		p.doc.Line(x, y, x+180, y)
		p.doc.Ln(4)
	case headingRe.MatchString(trimmed):
		m := headingRe.FindStringSubmatch(trimmed)
		p.heading(stripInline(m[2]), len(m[1]))
	case strings.HasPrefix(trimmed, "> "):
		p.doc.SetFont("Helvetica", "I", 10)
		p.doc.SetTextColor(90, 90, 90)
		p.doc.MultiCell(0, 5, stripInline(strings.TrimPrefix(trimmed, "> ")), "", "L", false)
		p.doc.SetTextColor(0, 0, 0)
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		p.doc.SetFont("Helvetica", "", 10)
		p.doc.MultiCell(0, 5, "• "+stripInline(trimmed[2:]), "", "L", false)
	case orderedItemRe.MatchString(trimmed):
		p.doc.SetFont("Helvetica", "", 10)
		p.doc.MultiCell(0, 5, stripInline(trimmed), "", "L", false)
	default:
		p.doc.SetFont("Helvetica", "", 10)
		p.doc.MultiCell(0, 5, stripInline(line), "", "L", false)
	}
}

// heading sizes shrink with depth, matching the usual h1-h6 scale.
func (p *pdfWriter) heading(text string, level int) {
	sizes := []float64{18, 15, 13, 12, 11, 10}
	size := sizes[len(sizes)-1]
	if level-1 < len(sizes) {
		size = sizes[level-1]
	}
	p.doc.Ln(4)
	p.doc.SetFont("Helvetica", "B", size)
	p.doc.MultiCell(0, size*0.6, text, "", "L", false)
	p.doc.Ln(2)
}

var (
	boldRe       = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)
	italicRe     = regexp.MustCompile(`(^|\s)\*([^*]+)\*(\s|$)`)
	inlineCodeRe = regexp.MustCompile("`([^`]+)`")
	mdLinkRe     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	strikeRe     = regexp.MustCompile(`~~([^~]+)~~`)
)

// stripInline removes inline Markdown syntax; the PDF keeps plain text.
func stripInline(text string) string {
	text = mdLinkRe.ReplaceAllString(text, "$1")
	text = boldRe.ReplaceAllString(text, "$1$2")
	text = italicRe.ReplaceAllString(text, "$1$2$3")
	text = strikeRe.ReplaceAllString(text, "$1")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
