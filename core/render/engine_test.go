package render

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/readmark/core"
)

func render(t *testing.T, e *Engine, src string) string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parsing test HTML: %v", err)
	}
	out, err := e.Render(doc, "")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return out
}

func TestRenderBasicBlocks(t *testing.T) {
	e := NewEngine(core.Options{})
	out := render(t, e, "<body><h1>Hi</h1><p>Hello world</p></body>")

	if !strings.Contains(out, "# Hi") {
		t.Errorf("missing heading, got %q", out)
	}
	if !strings.Contains(out, "Hello world") {
		t.Errorf("missing paragraph text, got %q", out)
	}
}

func TestRenderWhitespaceOnlyParagraph(t *testing.T) {
	e := NewEngine(core.Options{})
	out := render(t, e, "<body><p>before</p><p>   \n\t  </p><p>after</p></body>")

	if !strings.Contains(out, "before") || !strings.Contains(out, "after") {
		t.Fatalf("surrounding paragraphs missing, got %q", out)
	}
	// The empty paragraph must not leave more than one blank line between
	// its neighbours.
	between := out[strings.Index(out, "before")+len("before") : strings.Index(out, "after")]
	if strings.Count(between, "\n") > 2 {
		t.Errorf("whitespace-only paragraph left extra blank lines, got %q", out)
	}
}

func TestRenderTableModes(t *testing.T) {
	src := "<body><table><tr><td>cell-a</td><td>cell-b</td></tr></table></body>"

	t.Run("gfm_enabled_emits_pipes", func(t *testing.T) {
		out := render(t, NewEngine(core.Options{GFM: core.GFMEnabled}), src)
		if !strings.Contains(out, "|") {
			t.Errorf("expected pipe-delimited table, got %q", out)
		}
		if !strings.Contains(out, "cell-a") {
			t.Errorf("cell content missing, got %q", out)
		}
	})

	t.Run("no_tables_falls_back_to_plain", func(t *testing.T) {
		out := render(t, NewEngine(core.Options{GFM: core.GFMNoTables}), src)
		if strings.Contains(out, "|") {
			t.Errorf("expected plain rendering without pipes, got %q", out)
		}
		if !strings.Contains(out, "cell-a") {
			t.Errorf("cell content must survive plain rendering, got %q", out)
		}
	})
}

func TestRenderStrikethrough(t *testing.T) {
	src := "<body><p>a <del>gone</del> b</p></body>"

	out := render(t, NewEngine(core.Options{}), src)
	if !strings.Contains(out, "~~gone~~") {
		t.Errorf("expected strikethrough markers, got %q", out)
	}

	out = render(t, NewEngine(core.Options{GFM: core.GFMDisabled}), src)
	if strings.Contains(out, "~~") {
		t.Errorf("strikethrough markers present with GFM disabled, got %q", out)
	}
	if !strings.Contains(out, "gone") {
		t.Errorf("text content lost with GFM disabled, got %q", out)
	}
}

func TestRenderTaskList(t *testing.T) {
	src := `<body><ul>
		<li><input type="checkbox" checked> done item</li>
		<li><input type="checkbox"> open item</li>
	</ul></body>`

	out := render(t, NewEngine(core.Options{}), src)
	if !strings.Contains(out, "[x]") || !strings.Contains(out, "done item") {
		t.Errorf("checked task marker missing, got %q", out)
	}
	if !strings.Contains(out, "[ ]") || !strings.Contains(out, "open item") {
		t.Errorf("unchecked task marker missing, got %q", out)
	}

	out = render(t, NewEngine(core.Options{GFM: core.GFMDisabled}), src)
	if strings.Contains(out, "[x]") {
		t.Errorf("task markers present with GFM disabled, got %q", out)
	}
}

func TestRenderDropsIrrelevantTags(t *testing.T) {
	src := `<body><p>visible</p>
		<textarea>draft text</textarea>
		<select><option>choice</option></select>
		<svg><text>vector</text></svg>
		<noscript>enable js</noscript></body>`

	out := render(t, NewEngine(core.Options{}), src)

	if !strings.Contains(out, "visible") {
		t.Fatalf("content paragraph missing, got %q", out)
	}
	for _, gone := range []string{"draft text", "choice", "vector", "enable js"} {
		if strings.Contains(out, gone) {
			t.Errorf("dropped element text %q leaked into output", gone)
		}
	}
}

func TestRenderKeepPredicate(t *testing.T) {
	e := NewEngine(core.Options{
		Keep: func(n *html.Node) bool { return n.Data == "textarea" },
	})
	out := render(t, e, "<body><textarea>kept</textarea><svg><text>still gone</text></svg></body>")

	if !strings.Contains(out, "<textarea>kept</textarea>") {
		t.Errorf("kept element missing original markup, got %q", out)
	}
	if strings.Contains(out, "still gone") {
		t.Errorf("non-kept droppable leaked, got %q", out)
	}
}

func TestRenderTitleUnderline(t *testing.T) {
	e := NewEngine(core.Options{})
	out := render(t, e, "<html><head><title>Doc</title></head><body><p>x</p></body></html>")

	if !strings.Contains(out, "Doc\n===") {
		t.Errorf("title underline missing, got %q", out)
	}
}

func TestRenderHeadOnlyYieldsTitle(t *testing.T) {
	e := NewEngine(core.Options{})
	out := render(t, e, `<html><head>
		<meta charset="utf-8">
		<title>Only This</title>
		<style>p { color: red }</style>
		<link rel="stylesheet" href="x.css">
	</head><body><p>body</p></body></html>`)

	if !strings.Contains(out, "Only This\n=========") {
		t.Errorf("head title missing or not underlined, got %q", out)
	}
	for _, gone := range []string{"charset", "color: red", "x.css"} {
		if strings.Contains(out, gone) {
			t.Errorf("head noise %q leaked into output", gone)
		}
	}
}

func TestRenderImageModes(t *testing.T) {
	src := `<body><p>text <img src="https://example.com/pic.png" alt="A photo"> more</p></body>`

	tests := []struct {
		name     string
		mode     core.ImageMode
		want     []string
		notWant  []string
	}{
		{
			name: "all_keeps_reference",
			mode: core.ImagesAll,
			want: []string{"![A photo]", "pic.png"},
		},
		{
			name:    "none_drops_everything",
			mode:    core.ImagesNone,
			want:    []string{"text", "more"},
			notWant: []string{"A photo", "pic.png", "!["},
		},
		{
			name:    "alt_keeps_plain_text",
			mode:    core.ImagesAlt,
			want:    []string{"A photo"},
			notWant: []string{"![", "pic.png", "(A photo)"},
		},
		{
			name:    "alt_paren_wraps",
			mode:    core.ImagesAltParen,
			want:    []string{"(A photo)"},
			notWant: []string{"![", "pic.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, NewEngine(core.Options{Images: tt.mode}), src)
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q, got %q", s, out)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(out, s) {
					t.Errorf("output must not contain %q, got %q", s, out)
				}
			}
		})
	}
}

func TestRenderDataURLPlaceholder(t *testing.T) {
	src := `<body><img src="data:image/png;base64,AAAA" alt="x"></body>`
	e := NewEngine(core.Options{DataURLPlaceholders: true})

	first := render(t, e, src)
	if !strings.Contains(first, "![x](obj://") {
		t.Fatalf("placeholder reference missing, got %q", first)
	}
	if strings.Contains(first, "base64") {
		t.Errorf("raw data URL leaked, got %q", first)
	}

	// Same src must map to the same placeholder across conversions and
	// across engine instances.
	second := render(t, NewEngine(core.Options{DataURLPlaceholders: true}), src)
	if first != second {
		t.Errorf("placeholder not stable:\n%q\n%q", first, second)
	}
}

func TestObjectURL(t *testing.T) {
	a := ObjectURL("data:image/png;base64,AAAA")
	b := ObjectURL("data:image/png;base64,AAAA")
	c := ObjectURL("data:image/png;base64,BBBB")

	if a != b {
		t.Errorf("ObjectURL not deterministic: %q vs %q", a, b)
	}
	if a == c {
		t.Errorf("distinct sources mapped to the same URL: %q", a)
	}
	if !strings.HasPrefix(a, "obj://") || len(a) != len("obj://")+16 {
		t.Errorf("unexpected placeholder shape: %q", a)
	}
}

func TestRenderCustomRuleOverridesBaseline(t *testing.T) {
	e := NewEngine(core.Options{
		Rules: map[string]core.Rule{
			"shout-paragraphs": {
				Filter: []string{"p"},
				Replace: func(content string, n *html.Node) string {
					return "\n\n<<" + strings.TrimSpace(content) + ">>\n\n"
				},
			},
		},
	})
	out := render(t, e, "<body><p>hello</p></body>")

	if !strings.Contains(out, "<<hello>>") {
		t.Errorf("custom rule did not fire, got %q", out)
	}
}

func TestRenderCustomRuleNameOrderPrecedence(t *testing.T) {
	mk := func(marker string) core.Rule {
		return core.Rule{
			Filter: []string{"p"},
			Replace: func(content string, n *html.Node) string {
				return "\n\n" + marker + strings.TrimSpace(content) + "\n\n"
			},
		}
	}
	e := NewEngine(core.Options{
		Rules: map[string]core.Rule{
			"alpha": mk("A:"),
			"zeta":  mk("Z:"),
		},
	})
	out := render(t, e, "<body><p>text</p></body>")

	if !strings.Contains(out, "Z:text") {
		t.Errorf("rule later in name order must win, got %q", out)
	}
	if strings.Contains(out, "A:text") {
		t.Errorf("overridden rule still fired, got %q", out)
	}
}

func TestRenderCustomRuleMatchFallsThrough(t *testing.T) {
	e := NewEngine(core.Options{
		Rules: map[string]core.Rule{
			"lead-only": {
				Filter: []string{"p"},
				Match: func(n *html.Node) bool {
					return hasAttr(n, "data-lead")
				},
				Replace: func(content string, n *html.Node) string {
					return "\n\n**LEAD** " + strings.TrimSpace(content) + "\n\n"
				},
			},
		},
	})
	out := render(t, e, `<body><p data-lead>intro</p><p>plain</p></body>`)

	if !strings.Contains(out, "**LEAD** intro") {
		t.Errorf("matching paragraph not replaced, got %q", out)
	}
	if strings.Contains(out, "**LEAD** plain") {
		t.Errorf("non-matching paragraph replaced, got %q", out)
	}
	if !strings.Contains(out, "plain") {
		t.Errorf("non-matching paragraph lost, got %q", out)
	}
}

func TestRenderDeterministic(t *testing.T) {
	e := NewEngine(core.Options{
		Rules: map[string]core.Rule{
			"b-rule": {Filter: []string{"aside"}, Replace: func(c string, n *html.Node) string { return c }},
			"a-rule": {Filter: []string{"span"}, Replace: func(c string, n *html.Node) string { return c }},
		},
	})
	src := `<body><h2>t</h2><p><span>s</span> and <a href="/x">link</a></p><aside>note</aside></body>`

	first := render(t, e, src)
	for i := 0; i < 5; i++ {
		if got := render(t, e, src); got != first {
			t.Fatalf("render %d differs:\n%q\n%q", i, got, first)
		}
	}
}
