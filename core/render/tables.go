package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// NormalizeTables fixes up every table under (or at) the selection so the
// table renderer sees a well-formed, ordered row list: tables without any
// rows are unwrapped into their children, and rows trapped under wrappers
// that are not table sections are hoisted back into the table. Must run
// before rendering.
func NormalizeTables(sel *goquery.Selection) {
	for _, n := range sel.Nodes {
		if isElement(n, "table") {
			normalizeTable(n)
		}
	}
	sel.Find("table").Each(func(_ int, t *goquery.Selection) {
		normalizeTable(t.Get(0))
	})
}

// TableRows returns the table's row elements in document order: direct
// rows and rows nested under section elements, excluding rows that belong
// to nested tables.
func TableRows(tbl *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch strings.ToLower(c.Data) {
			case "table":
				// Nested table owns its rows.
			case "tr":
				rows = append(rows, c)
			default:
				walk(c)
			}
		}
	}
	walk(tbl)
	return rows
}

func normalizeTable(tbl *html.Node) {
	rows := TableRows(tbl)
	if len(rows) == 0 {
		unwrap(tbl)
		return
	}
	for _, r := range rows {
		p := r.Parent
		if p == tbl {
			continue
		}
		if isSection(p) && p.Parent == tbl {
			continue
		}
		// Hoist in place: the row goes right before the wrapper subtree it
		// came from, so mixed direct and wrapped rows keep document order.
		top := p
		for top.Parent != nil && top.Parent != tbl {
			top = top.Parent
		}
		p.RemoveChild(r)
		if top.Parent == tbl {
			tbl.InsertBefore(r, top)
		} else {
			tbl.AppendChild(r)
		}
	}
}

func isSection(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	switch strings.ToLower(n.Data) {
	case "thead", "tbody", "tfoot":
		return true
	}
	return false
}

func isElement(n *html.Node, name string) bool {
	return n != nil && n.Type == html.ElementNode && strings.EqualFold(n.Data, name)
}

// unwrap replaces a node with its children, preserving order.
func unwrap(n *html.Node) {
	p := n.Parent
	if p == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		p.InsertBefore(c, n)
		c = next
	}
	p.RemoveChild(n)
}
