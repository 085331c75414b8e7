//
// HTML rendering backend: turns the callback table's output into
// (X)HTML5 markup. This is the default Renderer most callers want; it
// never touches the core scanner and could be replaced wholesale by any
// other Renderer value.
//

package markdown

import (
	"bytes"
	"fmt"
	"strings"
)

// HTMLFlags controls the behaviour of the renderer built by
// NewHTMLRenderer. OR these values together.
type HTMLFlags uint32

const (
	SkipHTML HTMLFlags = 1 << iota // strip raw HTML blocks and tags
	SkipStyle                      // strip <style> tags specifically
	SkipImages                     // refuse image spans; a refused span prints as its literal source text
	SkipLinks                      // refuse link and autolink spans; a refused span prints as its literal source text
	Safelink                       // only emit links/autolinks with a recognised scheme
	TOC                            // give headers an id derived from their text
	HardWrap                       // kept for parity with the renderer-flag enum; no effect: a <br> needs two trailing spaces either way
	ExpandTabs                     // kept for parity with the renderer-flag enum; tab expansion always runs in the driver
	UseXHTML                       // self-close void elements with " />" instead of ">"
	Smartypants                    // run typographic substitution over normal text
	SmartypantsFractions           // smartypants: turn "1/2" into a fraction
	SmartypantsLatexDashes         // smartypants: treat "--"/"---" as LaTeX-style dashes
	EscapeHTML                     // escape raw HTML blocks instead of passing them through (SkipHTML takes precedence)
	Prettify                       // kept for parity with the renderer-flag enum; no effect on output
	GithubBlockcode                // emit fenced code language as a GitHub-style "language-x" class
)

// HTMLRendererParameters configures NewHTMLRenderer. Title and CSS are
// only consumed when non-empty, to wrap the output in a minimal standalone
// document.
type HTMLRendererParameters struct {
	Flags          HTMLFlags
	Title          string
	CSS            string
	HeaderIDPrefix string
}

// htmlState is the opaque value threaded through every HTML callback.
type htmlState struct {
	params    HTMLRendererParameters
	closeTag  string
	headerIDs map[string]int
}

// NewHTMLRenderer builds a Renderer that emits (X)HTML5, configured by
// params.Flags.
func NewHTMLRenderer(params HTMLRendererParameters) *Renderer {
	closeTag := ">"
	if params.Flags&UseXHTML != 0 {
		closeTag = " />"
	}

	st := &htmlState{
		params:    params,
		closeTag:  closeTag,
		headerIDs: make(map[string]int),
	}

	r := &Renderer{
		blockcode:  st.blockcode,
		blockquote: st.blockquote,
		blockhtml:  st.blockhtml,
		header:     st.header,
		hrule:      st.hrule,
		list:       st.list,
		listitem:   st.listitem,
		paragraph:  st.paragraph,
		table:      st.table,
		tableRow:   st.tableRow,
		tableCell:  st.tableCell,

		autolink:       st.autolink,
		codespan:       st.codespan,
		doubleEmphasis: st.doubleEmphasis,
		emphasis:       st.emphasis,
		tripleEmphasis: st.tripleEmphasis,
		strikethrough:  st.strikethrough,
		superscript:    st.superscript,
		underline:      st.underline,
		image:          st.image,
		linebreak:      st.linebreak,
		link:           st.link,
		rawHTMLTag:     st.rawHTMLTag,

		entity:     st.entity,
		normalText: st.normalText,

		documentHeader: st.documentHeader,
		documentFooter: st.documentFooter,

		opaque: st,
	}

	if params.Flags&Smartypants != 0 {
		wrapSmartypants(r, params.Flags)
	}
	return r
}

//
// Block-level callbacks
//

func (st *htmlState) blockcode(out *bytes.Buffer, text []byte, lang string, opaque interface{}) {
	out.WriteString("<pre>")
	if lang == "" {
		out.WriteString("<code>")
	} else if st.params.Flags&GithubBlockcode != 0 {
		fmt.Fprintf(out, "<code class=\"language-%s\">", escapeAttribute(lang))
	} else {
		fmt.Fprintf(out, "<code class=\"%s\">", escapeAttribute(lang))
	}
	escapeHTML(out, text)
	out.WriteString("\n</code></pre>\n")
}

func (st *htmlState) blockquote(out *bytes.Buffer, text []byte, opaque interface{}) {
	out.WriteString("<blockquote>\n")
	out.Write(text)
	out.WriteString("</blockquote>\n")
}

func (st *htmlState) blockhtml(out *bytes.Buffer, text []byte, opaque interface{}) {
	if st.params.Flags&SkipHTML != 0 {
		return
	}
	if st.params.Flags&EscapeHTML != 0 {
		escapeHTML(out, text)
		return
	}
	out.Write(text)
}

func (st *htmlState) header(out *bytes.Buffer, text []byte, level int, opaque interface{}) {
	if st.params.Flags&TOC != 0 {
		fmt.Fprintf(out, "<h%d id=\"%s%s\">", level, st.params.HeaderIDPrefix, st.uniqueHeaderID(text))
	} else {
		fmt.Fprintf(out, "<h%d>", level)
	}
	out.Write(text)
	fmt.Fprintf(out, "</h%d>\n", level)
}

// uniqueHeaderID derives a URL fragment from a header's rendered text,
// disambiguating repeats seen earlier in the same document with a
// trailing "-1", "-2", ...
func (st *htmlState) uniqueHeaderID(text []byte) string {
	id := string(slugify(text))
	if id == "" {
		id = "section"
	}
	n := st.headerIDs[id]
	st.headerIDs[id] = n + 1
	if n > 0 {
		id = fmt.Sprintf("%s-%d", id, n)
	}
	return id
}

func (st *htmlState) hrule(out *bytes.Buffer, opaque interface{}) {
	out.WriteString("<hr" + st.closeTag + "\n")
}

func (st *htmlState) list(out *bytes.Buffer, text []byte, flags int, opaque interface{}) {
	tag := "ul"
	if flags&ListTypeOrdered != 0 {
		tag = "ol"
	}
	fmt.Fprintf(out, "<%s>\n", tag)
	out.Write(text)
	fmt.Fprintf(out, "</%s>\n", tag)
}

func (st *htmlState) listitem(out *bytes.Buffer, text []byte, flags int, opaque interface{}) {
	out.WriteString("<li>")
	out.Write(bytes.TrimRight(text, "\n"))
	out.WriteString("</li>\n")
}

func (st *htmlState) paragraph(out *bytes.Buffer, text []byte, opaque interface{}) {
	out.WriteString("<p>")
	out.Write(text)
	out.WriteString("</p>\n")
}

func (st *htmlState) table(out *bytes.Buffer, header, body []byte, opaque interface{}) {
	out.WriteString("<table>\n<thead>\n")
	out.Write(header)
	out.WriteString("</thead>\n\n<tbody>\n")
	out.Write(body)
	out.WriteString("</tbody>\n</table>\n")
}

func (st *htmlState) tableRow(out *bytes.Buffer, text []byte, opaque interface{}) {
	out.WriteString("<tr>\n")
	out.Write(text)
	out.WriteString("</tr>\n")
}

func (st *htmlState) tableCell(out *bytes.Buffer, text []byte, align int, opaque interface{}) {
	tag := "td"
	if align&tableCellHeader != 0 {
		tag = "th"
	}
	var style string
	switch align & (TableAlignmentLeft | TableAlignmentRight) {
	case TableAlignmentLeft:
		style = " style=\"text-align: left\""
	case TableAlignmentRight:
		style = " style=\"text-align: right\""
	case TableAlignmentCenter:
		style = " style=\"text-align: center\""
	}
	fmt.Fprintf(out, "<%s%s>", tag, style)
	out.Write(text)
	fmt.Fprintf(out, "</%s>\n", tag)
}

//
// Span-level callbacks
//

func (st *htmlState) autolink(out *bytes.Buffer, link []byte, kind AutolinkType, opaque interface{}) int {
	if st.params.Flags&SkipLinks != 0 {
		return 0
	}
	if st.params.Flags&Safelink != 0 && kind != ImplicitEmail && !isSafeLink(link) {
		return 0
	}
	out.WriteString("<a href=\"")
	if kind == ImplicitEmail || kind == ExplicitEmail {
		out.WriteString("mailto:")
	}
	escapeAttributeInto(out, link)
	out.WriteString("\">")
	escapeHTML(out, link)
	out.WriteString("</a>")
	return 1
}

func (st *htmlState) codespan(out *bytes.Buffer, text []byte, opaque interface{}) int {
	out.WriteString("<code>")
	escapeHTML(out, text)
	out.WriteString("</code>")
	return 1
}

func (st *htmlState) doubleEmphasis(out *bytes.Buffer, text []byte, opaque interface{}) int {
	out.WriteString("<strong>")
	out.Write(text)
	out.WriteString("</strong>")
	return 1
}

func (st *htmlState) emphasis(out *bytes.Buffer, text []byte, opaque interface{}) int {
	if len(text) == 0 {
		return 0
	}
	out.WriteString("<em>")
	out.Write(text)
	out.WriteString("</em>")
	return 1
}

func (st *htmlState) tripleEmphasis(out *bytes.Buffer, text []byte, opaque interface{}) int {
	out.WriteString("<strong><em>")
	out.Write(text)
	out.WriteString("</em></strong>")
	return 1
}

func (st *htmlState) strikethrough(out *bytes.Buffer, text []byte, opaque interface{}) int {
	out.WriteString("<del>")
	out.Write(text)
	out.WriteString("</del>")
	return 1
}

func (st *htmlState) superscript(out *bytes.Buffer, text []byte, opaque interface{}) int {
	out.WriteString("<sup>")
	out.Write(text)
	out.WriteString("</sup>")
	return 1
}

func (st *htmlState) underline(out *bytes.Buffer, text []byte, opaque interface{}) int {
	out.WriteString("<u>")
	out.Write(text)
	out.WriteString("</u>")
	return 1
}

func (st *htmlState) image(out *bytes.Buffer, link, title, alt []byte, opaque interface{}) int {
	if st.params.Flags&SkipImages != 0 {
		return 0
	}
	out.WriteString("<img src=\"")
	escapeAttributeInto(out, link)
	out.WriteString("\" alt=\"")
	escapeAttributeInto(out, alt)
	out.WriteString("\"")
	if len(title) > 0 {
		out.WriteString(" title=\"")
		escapeAttributeInto(out, title)
		out.WriteString("\"")
	}
	out.WriteString(st.closeTag)
	return 1
}

func (st *htmlState) linebreak(out *bytes.Buffer, opaque interface{}) int {
	out.WriteString("<br" + st.closeTag + "\n")
	return 1
}

func (st *htmlState) link(out *bytes.Buffer, link, title, content []byte, opaque interface{}) int {
	if st.params.Flags&SkipLinks != 0 {
		return 0
	}
	if st.params.Flags&Safelink != 0 && !isSafeLink(link) {
		return 0
	}
	out.WriteString("<a href=\"")
	escapeAttributeInto(out, link)
	out.WriteString("\"")
	if len(title) > 0 {
		out.WriteString(" title=\"")
		escapeAttributeInto(out, title)
		out.WriteString("\"")
	}
	out.WriteString(">")
	out.Write(content)
	out.WriteString("</a>")
	return 1
}

func (st *htmlState) rawHTMLTag(out *bytes.Buffer, tag []byte, opaque interface{}) int {
	if st.params.Flags&SkipHTML != 0 {
		return 1
	}
	if st.params.Flags&SkipStyle != 0 && isTagNamed(tag, "style") {
		return 1
	}
	if st.params.Flags&SkipLinks != 0 && isTagNamed(tag, "a") {
		return 0
	}
	if st.params.Flags&SkipImages != 0 && isTagNamed(tag, "img") {
		return 0
	}
	out.Write(tag)
	return 1
}

func isTagNamed(tag []byte, name string) bool {
	i := 1
	if i < len(tag) && tag[i] == '/' {
		i++
	}
	if i+len(name) > len(tag) {
		return false
	}
	return strings.EqualFold(string(tag[i:i+len(name)]), name)
}

//
// Low-level callbacks
//

func (st *htmlState) entity(out *bytes.Buffer, entity []byte, opaque interface{}) {
	out.Write(entity)
}

func (st *htmlState) normalText(out *bytes.Buffer, text []byte, opaque interface{}) {
	escapeHTML(out, text)
}

//
// Document wrapping
//

func (st *htmlState) documentHeader(out *bytes.Buffer, opaque interface{}) {
	if st.params.Title == "" {
		return
	}
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	out.WriteString("<meta charset=\"utf-8\"" + st.closeTag + "\n")
	fmt.Fprintf(out, "<title>%s</title>\n", escapeAttribute(st.params.Title))
	if st.params.CSS != "" {
		fmt.Fprintf(out, "<link rel=\"stylesheet\" href=\"%s\"%s\n", escapeAttribute(st.params.CSS), st.closeTag)
	}
	out.WriteString("</head>\n<body>\n\n")
}

func (st *htmlState) documentFooter(out *bytes.Buffer, opaque interface{}) {
	if st.params.Title == "" {
		return
	}
	out.WriteString("\n</body>\n</html>\n")
}

//
// Safe-link predicate
//

var safeLinkSchemes = []string{"http://", "https://", "ftp://", "mailto:"}

// isSafeLink reports whether link opens with a scheme this renderer is
// willing to emit when Safelink is set. A scheme-less (relative) link is
// always considered safe.
func isSafeLink(link []byte) bool {
	for _, s := range safeLinkSchemes {
		if len(link) >= len(s) && strings.EqualFold(string(link[:len(s)]), s) {
			return true
		}
	}
	return bytes.IndexByte(link, ':') < 0
}

//
// Escaping helpers
//
// The core engine never escapes anything; source text that this renderer
// escapes goes through escapeHTML or escapeAttributeInto. Raw HTML,
// entities and already-rendered span content are written unchanged.

func escapeHTML(out *bytes.Buffer, text []byte) {
	for _, b := range text {
		switch b {
		case '<':
			out.WriteString("&lt;")
		case '>':
			out.WriteString("&gt;")
		case '&':
			out.WriteString("&amp;")
		default:
			out.WriteByte(b)
		}
	}
}

func escapeAttributeInto(out *bytes.Buffer, text []byte) {
	for _, b := range text {
		switch b {
		case '<':
			out.WriteString("&lt;")
		case '>':
			out.WriteString("&gt;")
		case '&':
			out.WriteString("&amp;")
		case '"':
			out.WriteString("&quot;")
		default:
			out.WriteByte(b)
		}
	}
}

func escapeAttribute(s string) string {
	var buf bytes.Buffer
	escapeAttributeInto(&buf, []byte(s))
	return buf.String()
}

// slugify reduces a header's rendered text to a URL-fragment-safe id:
// ASCII letters are lowercased, runs of anything that isn't a letter or
// digit collapse to a single '-', and leading/trailing '-' are trimmed.
func slugify(in []byte) []byte {
	if len(in) == 0 {
		return in
	}
	out := make([]byte, 0, len(in))
	dash := false
	for _, c := range in {
		if isalnum(c) {
			dash = false
			if c >= 'A' && c <= 'Z' {
				c += 'a' - 'A'
			}
			out = append(out, c)
		} else if dash {
			continue
		} else {
			out = append(out, '-')
			dash = true
		}
	}

	a := 0
	for a < len(out) && out[a] == '-' {
		a++
	}
	b := len(out)
	for b > a && out[b-1] == '-' {
		b--
	}
	return out[a:b]
}
