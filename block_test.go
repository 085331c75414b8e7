package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockPriorityATXOverParagraph(t *testing.T) {
	got := renderHTML(t, "para line\n# Header\n", 0)
	assert.Contains(t, got, "<h1>Header</h1>")
	assert.Contains(t, got, "<p>para line</p>")
}

func TestBlockHTMLPassthrough(t *testing.T) {
	in := "<div>\n<p>raw</p>\n</div>\n"
	got := renderHTML(t, in, 0)
	assert.Contains(t, got, "<div>")
	assert.Contains(t, got, "<p>raw</p>")
}

func TestBlockFencedCodeUnterminated(t *testing.T) {
	in := "```\nno closing fence\n"
	got := renderHTML(t, in, FencedCode)
	assert.Contains(t, got, "no closing fence")
}

func TestBlockNestedList(t *testing.T) {
	in := "* one\n    * nested\n* two\n"
	got := renderHTML(t, in, 0)
	assert.Contains(t, got, "<ul>")
	// the nested list must appear inside the first <li>
	outerIdx := strings.Index(got, "<li>one")
	nestedIdx := strings.Index(got, "<li>nested")
	assert.True(t, outerIdx >= 0 && nestedIdx > outerIdx)
}

func TestBlockBlankLineSeparatesParagraphs(t *testing.T) {
	got := renderHTML(t, "first\n\nsecond\n", 0)
	assert.Contains(t, got, "<p>first</p>")
	assert.Contains(t, got, "<p>second</p>")
}

func TestBlockHorizontalRuleVariants(t *testing.T) {
	for _, in := range []string{"***\n", "___\n", "- - -\n"} {
		got := renderHTML(t, in, 0)
		assert.Contains(t, got, "<hr", "input %q", in)
	}
}

func TestBlockTableWithoutExtensionIsParagraph(t *testing.T) {
	got := renderHTML(t, "a|b\n---|---\n1|2\n", 0)
	assert.NotContains(t, got, "<table>")
}

func TestBlockSetextLevelOneHeader(t *testing.T) {
	got := renderHTML(t, "Title\n=====\n", 0)
	assert.Equal(t, "<h1>Title</h1>\n", got)
}

func TestBlockSetextLevelTwoHeader(t *testing.T) {
	got := renderHTML(t, "Title\n-----\n", 0)
	assert.Equal(t, "<h2>Title</h2>\n", got)
}

func TestBlockSetextHeaderSplitsPrecedingParagraph(t *testing.T) {
	got := renderHTML(t, "First line\nSecond line\n===\n", 0)
	assert.Equal(t, "<p>First line</p>\n<h1>Second line</h1>\n", got)
}

func TestBlockSetextHeaderRequiresOwnLine(t *testing.T) {
	// a dash run broken up by spaces is a horizontal rule, not a setext
	// underline, so it must not turn the preceding line into a header
	got := renderHTML(t, "Title\n- - -\n", 0)
	assert.NotContains(t, got, "<h2>")
	assert.Contains(t, got, "<hr")
}

func TestBlockLaxSpacingAllowsListWithoutBlankLine(t *testing.T) {
	got := renderHTML(t, "intro text\n* one\n* two\n", LaxSpacing)
	assert.Contains(t, got, "<p>intro text</p>")
	assert.Contains(t, got, "<ul>")
}

func TestBlockWithoutLaxSpacingSwallowsListIntoParagraph(t *testing.T) {
	got := renderHTML(t, "intro text\n* one\n* two\n", 0)
	assert.NotContains(t, got, "<ul>")
	assert.Contains(t, got, "<p>intro text\n* one\n* two</p>\n")
}
