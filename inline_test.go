package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInlineEscape(t *testing.T) {
	got := renderHTML(t, `a \*b\* c`+"\n", 0)
	assert.Equal(t, "<p>a *b* c</p>\n", got)
}

func TestInlineEntity(t *testing.T) {
	got := renderHTML(t, "a &amp; b\n", 0)
	assert.Contains(t, got, "&amp;")
}

func TestInlineImage(t *testing.T) {
	got := renderHTML(t, `![alt text](/img.png "title")`+"\n", 0)
	assert.Contains(t, got, `<img src="/img.png" alt="alt text" title="title"`)
}

func TestInlineNestedLinksForbidden(t *testing.T) {
	got := renderHTML(t, `[a [b](/c)](/d)`+"\n", 0)
	// the outer '[' fails to find a well-formed link once a nested link
	// is attempted, so it is swept back out as literal text
	assert.NotContains(t, got, `<a href="/d">`)
}

func TestInlineRawHTMLTag(t *testing.T) {
	got := renderHTML(t, "a <span>b</span> c\n", 0)
	assert.Contains(t, got, "<span>b</span>")
}

func TestInlineCodespanSpaceTrim(t *testing.T) {
	got := renderHTML(t, "`` `backtick` ``\n", 0)
	assert.Contains(t, got, "<code>`backtick`</code>")
}

func TestInlineLineBreakRequiresTwoSpaces(t *testing.T) {
	renderer := NewHTMLRenderer(HTMLRendererParameters{})
	out := Markdown([]byte("a  \nb\n"), renderer, 0)
	assert.Contains(t, string(out), "<br")

	out = Markdown([]byte("a\nb\n"), renderer, 0)
	assert.NotContains(t, string(out), "<br")
}

func TestInlineSuperscript(t *testing.T) {
	got := renderHTML(t, "2^(10) is 1024\n", Superscript)
	assert.Contains(t, got, "<sup>10</sup>")
}

func TestInlineAutolinkEmail(t *testing.T) {
	got := renderHTML(t, "mail me at person@example.com today\n", Autolink)
	assert.Contains(t, got, `mailto:person@example.com`)
}

func TestInlineAutolinkWWW(t *testing.T) {
	got := renderHTML(t, "visit www.example.com now\n", Autolink)
	assert.Contains(t, got, `href="http://www.example.com"`)
}

func TestInlineEmphasisNoIntraWord(t *testing.T) {
	got := renderHTML(t, "a_b_c\n", NoIntraEmphasis)
	assert.NotContains(t, got, "<em>")
}

func TestInlineUnderlineExtension(t *testing.T) {
	got := renderHTML(t, "__text__\n", Underline)
	assert.Equal(t, "<p><u>text</u></p>\n", got)
}

func TestInlineUnderlineExtensionOffFallsBackToStrong(t *testing.T) {
	got := renderHTML(t, "__text__\n", 0)
	assert.Equal(t, "<p><strong>text</strong></p>\n", got)
}

func TestInlineUnderlineDoesNotAffectAsterisks(t *testing.T) {
	got := renderHTML(t, "**text**\n", Underline)
	assert.Equal(t, "<p><strong>text</strong></p>\n", got)
}
