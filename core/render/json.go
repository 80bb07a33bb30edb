package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/readmark/core"
)

// DocumentJSON is the CLI's JSON output for one converted page.
type DocumentJSON struct {
	Title         string    `json:"title"`
	URL           string    `json:"url,omitempty"`
	PublishedTime string    `json:"published_time,omitempty"`
	Markdown      string    `json:"markdown"`
	Structure     Structure `json:"structure"`
}

// Structure summarizes the shape of the converted Markdown.
type Structure struct {
	Headings   []Heading `json:"headings"`
	Links      int       `json:"links"`
	CodeBlocks int       `json:"code_blocks"`
	Tables     int       `json:"tables"`
}

// Heading is a single heading found in the Markdown body.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// RenderJSON serializes a conversion result as indented document JSON.
func RenderJSON(markdown string, meta core.Metadata) ([]byte, error) {
	doc := DocumentJSON{
		Title:         meta.Title,
		URL:           meta.SourceURL,
		PublishedTime: meta.PublishedTime,
		Markdown:      markdown,
		Structure:     analyzeStructure(markdown),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}
	return data, nil
}

var jsonLinkRe = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)

func analyzeStructure(markdown string) Structure {
	s := Structure{Headings: []Heading{}}
	inCode := false
	fences := 0

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			fences++
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}

		if m := headingRe.FindStringSubmatch(trimmed); m != nil {
			s.Headings = append(s.Headings, Heading{
				Level: len(m[1]),
				Text:  strings.TrimSpace(m[2]),
			})
		}
		s.Links += len(jsonLinkRe.FindAllString(line, -1))

		// A separator row (|---|---|) marks one rendered table.
		if strings.HasPrefix(trimmed, "|") && strings.Contains(trimmed, "---") {
			s.Tables++
		}
	}

	s.CodeBlocks = fences / 2
	return s
}
