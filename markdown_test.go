package markdown

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderHTML(t *testing.T, input string, extensions Extensions) string {
	t.Helper()
	renderer := NewHTMLRenderer(HTMLRendererParameters{})
	out := Markdown([]byte(input), renderer, extensions)
	return string(out)
}

func TestMarkdownBlockScenarios(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"atx header", "# Title\n", "<h1>Title</h1>\n"},
		{"atx header closing hashes", "## Title ##\n", "<h2>Title</h2>\n"},
		{"paragraph", "hello world\n", "<p>hello world</p>\n"},
		{"emphasis", "a *b* c\n", "<p>a <em>b</em> c</p>\n"},
		{"strong", "a **b** c\n", "<p>a <strong>b</strong> c</p>\n"},
		{"code span", "a `b|c` d\n", "<p>a <code>b|c</code> d</p>\n"},
		{"indented code", "    code here\n", "<pre><code>code here\n</code></pre>\n"},
		{"blockquote", "> hi\n> there\n", "<blockquote>\n<p>hi\nthere</p>\n</blockquote>\n"},
		{"horizontal rule", "---\n", "<hr>\n"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, renderHTML(t, c.in, 0))
		})
	}
}

func TestMarkdownEmptyInput(t *testing.T) {
	assert.Equal(t, "", renderHTML(t, "", 0))
}

func TestMarkdownNoTerminalNewline(t *testing.T) {
	assert.Equal(t, "<p>hello</p>\n", renderHTML(t, "hello", 0))
}

func TestMarkdownSingleNewline(t *testing.T) {
	assert.Equal(t, "", renderHTML(t, "\n", 0))
}

func TestMarkdownLinkWithTitle(t *testing.T) {
	got := renderHTML(t, `[go](https://golang.org "The Go site")`+"\n", 0)
	assert.Contains(t, got, `<a href="https://golang.org" title="The Go site">go</a>`)
}

func TestMarkdownReferenceStyleLink(t *testing.T) {
	in := "See [golang][1] for more.\n\n[1]: https://golang.org \"Go\"\n"
	got := renderHTML(t, in, 0)
	assert.Contains(t, got, `<a href="https://golang.org" title="Go">golang</a>`)
}

func TestMarkdownReferenceDedupFirstWins(t *testing.T) {
	in := "[x][id]\n\n[id]: /first\n[id]: /second\n"
	got := renderHTML(t, in, 0)
	assert.Contains(t, got, `href="/first"`)
	assert.NotContains(t, got, `href="/second"`)
}

func TestMarkdownFencedCode(t *testing.T) {
	in := "```go\nfmt.Println(1)\n```\n"
	got := renderHTML(t, in, FencedCode)
	assert.Contains(t, got, `<code class="go">`)
	assert.Contains(t, got, "fmt.Println(1)")
}

func TestMarkdownTable(t *testing.T) {
	in := "a|b\n---|---:\n1|2\n"
	got := renderHTML(t, in, Tables)
	assert.Contains(t, got, "<table>")
	assert.Contains(t, got, `style="text-align: right"`)
}

func TestMarkdownStrikethrough(t *testing.T) {
	got := renderHTML(t, "~~gone~~\n", Strikethrough)
	assert.Contains(t, got, "<del>gone</del>")
}

func TestMarkdownAutolinkExtension(t *testing.T) {
	got := renderHTML(t, "see http://example.com for info\n", Autolink)
	assert.Contains(t, got, `<a href="http://example.com">http://example.com</a>`)
}

func TestMarkdownUnterminatedCodeSpan(t *testing.T) {
	got := renderHTML(t, "a `b c\n", 0)
	assert.Contains(t, got, "`b c")
}

func TestMarkdownListsUnorderedAndOrdered(t *testing.T) {
	got := renderHTML(t, "* one\n* two\n", 0)
	assert.Contains(t, got, "<ul>")
	assert.Contains(t, got, "<li>one</li>")

	got = renderHTML(t, "1. one\n2. two\n", 0)
	assert.Contains(t, got, "<ol>")
}

func TestMarkdownMaxNestingBlockquote(t *testing.T) {
	in := ""
	for i := 0; i < 20; i++ {
		in += "> "
	}
	in += "deep\n"
	require.NotPanics(t, func() {
		renderHTML(t, in, 0)
	})
}

func TestMarkdownNilRenderer(t *testing.T) {
	assert.Nil(t, Markdown([]byte("hi"), nil, 0))
}

func TestReferenceTableLookupOrderAndCase(t *testing.T) {
	refs := []*reference{
		{id: "foo", link: []byte("/a")},
		{id: "bar", link: []byte("/b")},
	}
	table := newReferenceTable(refs)

	r, ok := table.lookup("FOO")
	require.True(t, ok)
	assert.Equal(t, "/a", string(r.link))

	_, ok = table.lookup("missing")
	assert.False(t, ok)
}

func TestExpandTabs(t *testing.T) {
	var buf bytes.Buffer
	expandTabs(&buf, []byte("a\tb"))
	assert.Equal(t, "a   b", buf.String())
}
