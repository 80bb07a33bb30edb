package render

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/readmark/core"
)

// dropTags render to nothing: page metadata, styling, scripting and form
// controls carry no readable content.
var dropTags = []string{
	"meta", "style", "script", "noscript", "link", "textarea", "select", "svg",
}

func (e *Engine) registerBaseline() {
	for _, tag := range dropTags {
		if e.opts.Keep != nil {
			e.conv.Register.RendererFor(tag, converter.TagTypeBlock, e.renderDroppable, converter.PriorityEarly)
		} else {
			e.conv.Register.TagType(tag, converter.TagTypeRemove, converter.PriorityEarly)
		}
	}

	// The commonmark defaults remove <head> wholesale, which would prune
	// <title> before its renderer runs. Walk into it instead; the drop set
	// above disposes of the rest of its children.
	e.conv.Register.RendererFor("head", converter.TagTypeBlock, renderHead, converter.PriorityEarly)
	e.conv.Register.RendererFor("title", converter.TagTypeBlock, renderTitle, converter.PriorityEarly)
	e.conv.Register.RendererFor("img", converter.TagTypeInline, e.renderImage, converter.PriorityEarly)

	if e.opts.GFM != core.GFMDisabled {
		e.conv.Register.RendererFor("input", converter.TagTypeInline, renderTaskCheckbox, converter.PriorityEarly)
	}
}

// registerCustomRules installs caller-supplied rules ahead of the
// baseline. Names are sorted so conversion stays deterministic; rules
// later in name order get a lower priority number, and the registry
// runs the lowest number first, so the later name wins where two custom
// rules cover the same elements.
func (e *Engine) registerCustomRules() {
	names := make([]string, 0, len(e.opts.Rules))
	for name := range e.opts.Rules {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		rule := e.opts.Rules[name]
		if rule.Replace == nil || len(rule.Filter) == 0 {
			continue
		}
		tagType := converter.TagTypeBlock
		if rule.Inline {
			tagType = converter.TagTypeInline
		}
		priority := converter.PriorityEarly - 1 - i
		fn := func(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
			if rule.Match != nil && !rule.Match(n) {
				return converter.RenderTryNext
			}
			var buf bytes.Buffer
			ctx.RenderChildNodes(ctx, &buf, n)
			w.WriteString(rule.Replace(buf.String(), n))
			return converter.RenderSuccess
		}
		for _, tag := range rule.Filter {
			e.conv.Register.RendererFor(tag, tagType, fn, priority)
		}
	}
}

// renderDroppable handles the drop set when an always-keep predicate is
// configured: kept elements come through as their original markup,
// everything else renders to nothing.
func (e *Engine) renderDroppable(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	if e.opts.Keep != nil && e.opts.Keep(n) {
		var buf bytes.Buffer
		if err := html.Render(&buf, n); err == nil {
			w.WriteString(buf.String())
		}
	}
	return converter.RenderSuccess
}

// renderHead renders straight through to the children so <title> stays
// reachable.
func renderHead(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	ctx.RenderChildNodes(ctx, w, n)
	return converter.RenderSuccess
}

// renderTitle emits a title element as its text over a heading underline.
func renderTitle(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	text := collapseWhitespace(textContent(n))
	if text == "" {
		return converter.RenderSuccess
	}
	width := utf8.RuneCountInString(text)
	if width < 3 {
		width = 3
	}
	w.WriteString("\n\n" + text + "\n" + strings.Repeat("=", width) + "\n\n")
	return converter.RenderSuccess
}

// renderImage applies the data-URL placeholder first, then the retention
// mode. The two behaviors are independent: placeholders only ever touch
// data: sources, the retention mode governs everything else.
func (e *Engine) renderImage(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	src := dom.GetAttributeOr(n, "src", "")
	alt := collapseWhitespace(dom.GetAttributeOr(n, "alt", ""))

	if e.opts.DataURLPlaceholders && strings.HasPrefix(src, "data:") {
		w.WriteString("![" + alt + "](" + ObjectURL(src) + ")")
		return converter.RenderSuccess
	}

	switch e.opts.Images {
	case core.ImagesNone:
		return converter.RenderSuccess
	case core.ImagesAlt:
		if alt != "" {
			w.WriteString(alt)
		}
		return converter.RenderSuccess
	case core.ImagesAltParen:
		if alt != "" {
			w.WriteString("(" + alt + ")")
		}
		return converter.RenderSuccess
	default:
		// ImagesAll: the commonmark renderer emits the full reference.
		return converter.RenderTryNext
	}
}

// renderTaskCheckbox turns checkbox inputs into task-list markers; every
// other input renders to nothing.
func renderTaskCheckbox(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	if !strings.EqualFold(dom.GetAttributeOr(n, "type", ""), "checkbox") {
		return converter.RenderSuccess
	}
	if hasAttr(n, "checked") {
		w.WriteString("[x] ")
	} else {
		w.WriteString("[ ] ")
	}
	return converter.RenderSuccess
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return true
		}
	}
	return false
}

// ObjectURL derives the placeholder reference for a data-URL image
// source: "obj://" followed by the first 16 lowercase hex characters of
// the SHA-256 digest of the full src value. The scheme, hash and encoding
// are fixed, so the same src maps to the same URL across calls and
// process runs.
func ObjectURL(src string) string {
	sum := sha256.Sum256([]byte(src))
	return "obj://" + hex.EncodeToString(sum[:8])
}
