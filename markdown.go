//
// Black Friday Markdown Processor
// Originally based on http://github.com/tanoku/upskirt
// by Russ Ross <russ@russross.com>
//

//
//
// Markdown parsing and processing
//
//

package markdown

import (
	"bytes"
	"sort"
	"unicode"
)

// Extensions is a bitwise OR'ed collection of the non-standard Markdown
// behaviours this engine can enable. The core grammar (paragraphs,
// headers, lists, blockquotes, links, emphasis, code spans) is always on;
// these toggle the optional constructs named by the constants below.
type Extensions uint32

// These are the supported markdown parsing extensions.
// OR these values together to select multiple extensions.
const (
	NoIntraEmphasis     Extensions = 1 << iota // Ignore emphasis markers inside words
	Tables                                     // Parse and render tables
	FencedCode                                 // Parse fenced code blocks
	Autolink                                   // Detect embedded URLs/emails that are not explicitly marked
	Strikethrough                               // Strikethrough text using ~~test~~
	LaxHTMLBlocks                               // Loosen up HTML block parsing rules
	SpaceAfterHeaders                           // Require a space after '#' in headers
	Superscript                                  // Parse ^superscript and ^(superscript text)
	DisableIndentedCode                          // Don't parse indented code blocks
	LaxSpacing                                   // Allow a list, blockquote, or indented code block to start a paragraph's next line without a blank-line separator
	Underline                                    // Underline __text__ using '_' as the double-emphasis marker, instead of rendering it as <strong>

	CommonExtensions = NoIntraEmphasis | Tables | FencedCode | Autolink |
		Strikethrough | SpaceAfterHeaders
)

// AutolinkType classifies the kind of autolink a `<...>` or bare-URL
// recogniser matched, so the renderer can decide how to format it.
type AutolinkType int

// These are the possible flag values for the autolink renderer callback.
const (
	NotAutolink AutolinkType = iota
	Normal
	ExplicitEmail
	ImplicitEmail
)

// ListType contains bitwise OR'ed flags for list and list item objects.
//
// These are mostly of interest if you are writing a new output format.
const (
	ListTypeOrdered = 1 << iota
	ListItemContainsBlock
	ListItemEndOfList
)

// TableAlignment holds the alignment of a single table column, parsed from
// the underline row (`:--`, `--:`, `:--:`, `--`).
const (
	TableAlignmentNone = 0
	TableAlignmentLeft = 1 << iota
	TableAlignmentRight
	TableAlignmentCenter = (TableAlignmentLeft | TableAlignmentRight)
)

// The size of a tab stop. Fixed regardless of extension flags, per the
// tab-expansion rule: tabs are always expanded to 4-column stops during
// the reference/normalisation pass.
const TabSize = 4

// blockTags are the tags recognised as HTML block-level elements. Any of
// these can appear in markdown text without special escaping; the block
// scanner consumes input between a known opening tag and its matching
// closer as a raw HTML block.
var blockTags = map[string]bool{
	"p":          true,
	"dl":         true,
	"h1":         true,
	"h2":         true,
	"h3":         true,
	"h4":         true,
	"h5":         true,
	"h6":         true,
	"ol":         true,
	"ul":         true,
	"del":        true,
	"div":        true,
	"ins":        true,
	"pre":        true,
	"form":       true,
	"math":       true,
	"table":      true,
	"figure":     true,
	"iframe":     true,
	"script":     true,
	"fieldset":   true,
	"noscript":   true,
	"blockquote": true,
}

// Renderer defines the rendering interface. A series of callback function
// fields are filled in to form a complete renderer; any block field left
// nil drops that block's content, any span field left nil (or that
// returns 0) prints the span's source bytes verbatim.
//
// This is mostly of interest if you are implementing a new rendering
// format — most users will use NewHTMLRenderer or NewTOCRenderer.
type Renderer struct {
	// block-level callbacks --- nil skips the block
	blockcode  func(out *bytes.Buffer, text []byte, lang string, opaque interface{})
	blockquote func(out *bytes.Buffer, text []byte, opaque interface{})
	blockhtml  func(out *bytes.Buffer, text []byte, opaque interface{})
	header     func(out *bytes.Buffer, text []byte, level int, opaque interface{})
	hrule      func(out *bytes.Buffer, opaque interface{})
	list       func(out *bytes.Buffer, text []byte, flags int, opaque interface{})
	listitem   func(out *bytes.Buffer, text []byte, flags int, opaque interface{})
	paragraph  func(out *bytes.Buffer, text []byte, opaque interface{})
	table      func(out *bytes.Buffer, header, body []byte, opaque interface{})
	tableRow   func(out *bytes.Buffer, text []byte, opaque interface{})
	tableCell  func(out *bytes.Buffer, text []byte, align int, opaque interface{})

	// span-level callbacks --- nil or return 0 prints the span verbatim
	autolink       func(out *bytes.Buffer, link []byte, kind AutolinkType, opaque interface{}) int
	codespan       func(out *bytes.Buffer, text []byte, opaque interface{}) int
	doubleEmphasis func(out *bytes.Buffer, text []byte, opaque interface{}) int
	emphasis       func(out *bytes.Buffer, text []byte, opaque interface{}) int
	tripleEmphasis func(out *bytes.Buffer, text []byte, opaque interface{}) int
	strikethrough  func(out *bytes.Buffer, text []byte, opaque interface{}) int
	superscript    func(out *bytes.Buffer, text []byte, opaque interface{}) int
	underline      func(out *bytes.Buffer, text []byte, opaque interface{}) int
	image          func(out *bytes.Buffer, link, title, alt []byte, opaque interface{}) int
	linebreak      func(out *bytes.Buffer, opaque interface{}) int
	link           func(out *bytes.Buffer, link, title, content []byte, opaque interface{}) int
	rawHTMLTag     func(out *bytes.Buffer, tag []byte, opaque interface{}) int

	// low-level callbacks --- nil copies input directly into the output
	entity     func(out *bytes.Buffer, entity []byte, opaque interface{})
	normalText func(out *bytes.Buffer, text []byte, opaque interface{})

	// document header and footer
	documentHeader func(out *bytes.Buffer, opaque interface{})
	documentFooter func(out *bytes.Buffer, opaque interface{})

	// user data --- passed back to every callback
	opaque interface{}
}

// inlineParser is the signature of a single active-character trigger. It
// is handed the accumulated output, the shared parse state, the
// not-yet-consumed data starting at the active byte, and the offset of
// that byte within the data being scanned (no current trigger reads it;
// the autolink triggers rewind over the output instead). It returns the
// number of input bytes consumed, or zero to
// refuse the match (the byte is then emitted as ordinary text).
type inlineParser func(out *bytes.Buffer, rndr *render, data []byte, offset int) int

// render carries everything a recursive parse needs, threaded by pointer
// through every block and span call. A single render must never be shared
// between two concurrent top-level calls.
type render struct {
	mk         *Renderer
	refs       referenceTable
	inline     [256]inlineParser
	extensions Extensions
	maxNesting int
	insideLink bool

	blockPool *bufPool
	spanPool  *bufPool
}

// depth returns the effective recursion depth: the total number of scratch
// buffers currently checked out across both pools. This is the quantity
// the nesting cap is measured against, independent of whether a caller
// recurses through parseBlock or parseInline.
func (r *render) depth() int {
	return r.blockPool.inUse() + r.spanPool.inUse()
}

//
//
// Public interface
//
//

// Markdown parses and renders a block of markdown-encoded text. The
// renderer is used to format the output; extensions selects which
// non-standard constructs are recognised. It never returns an error:
// malformed or ambiguous input is, by design, rendered as literal text.
func Markdown(input []byte, renderer *Renderer, extensions Extensions) []byte {
	// no point in parsing if we can't render
	if renderer == nil {
		return nil
	}

	rndr := new(render)
	rndr.mk = renderer
	rndr.extensions = extensions
	rndr.maxNesting = 16
	rndr.insideLink = false
	rndr.blockPool = newBufPool()
	rndr.spanPool = newBufPool()

	// register inline triggers: the active-character table. Bytes whose
	// construct needs a span callback map to a trigger only when that
	// callback is registered, so unused triggers never slow down the
	// common-case "just copy the text" path; '<', '\\' and '&' are always
	// active, and ':', '@', 'w' whenever the Autolink extension is on.
	if renderer.emphasis != nil || renderer.doubleEmphasis != nil || renderer.tripleEmphasis != nil ||
		renderer.underline != nil {
		rndr.inline['*'] = inlineEmphasis
		rndr.inline['_'] = inlineEmphasis
		if extensions&Strikethrough != 0 {
			rndr.inline['~'] = inlineEmphasis
		}
	}
	if renderer.codespan != nil {
		rndr.inline['`'] = inlineCodespan
	}
	if renderer.linebreak != nil {
		rndr.inline['\n'] = inlineLineBreak
	}
	if renderer.image != nil || renderer.link != nil {
		rndr.inline['['] = inlineLink
	}
	rndr.inline['<'] = inlineLangleTag
	rndr.inline['\\'] = inlineEscape
	rndr.inline['&'] = inlineEntity
	if extensions&Superscript != 0 && renderer.superscript != nil {
		rndr.inline['^'] = inlineSuperscript
	}

	if extensions&Autolink != 0 {
		rndr.inline[':'] = inlineAutolinkURL
		rndr.inline['@'] = inlineAutolinkEmail
		rndr.inline['w'] = inlineAutolinkWWW
	}

	// pass 1: reference scan and tab-expansion/newline normalisation
	var refs []*reference
	working := new(bytes.Buffer)
	beg := 0
	for beg < len(input) {
		if end := isReference(&refs, input[beg:]); end > 0 {
			beg += end
			continue
		}
		end := beg
		for end < len(input) && input[end] != '\n' && input[end] != '\r' {
			end++
		}
		if end > beg {
			expandTabs(working, input[beg:end])
		}
		for end < len(input) && (input[end] == '\n' || input[end] == '\r') {
			if input[end] == '\n' || (end+1 < len(input) && input[end+1] != '\n') {
				working.WriteByte('\n')
			}
			end++
		}
		beg = end
	}

	rndr.refs = newReferenceTable(refs)

	output := new(bytes.Buffer)
	if renderer.documentHeader != nil {
		renderer.documentHeader(output, renderer.opaque)
	}

	if working.Len() > 0 {
		text := working.Bytes()
		if last := text[len(text)-1]; last != '\n' && last != '\r' {
			working.WriteByte('\n')
			text = working.Bytes()
		}
		parseBlock(output, rndr, text)
	}

	if renderer.documentFooter != nil {
		renderer.documentFooter(output, renderer.opaque)
	}

	if rndr.depth() != 0 {
		panic("markdown: scratch pool not balanced at top-level return")
	}

	return output.Bytes()
}

// MarkdownBasic calls Markdown with no extensions and the default XHTML
// renderer, mirroring the zero-configuration entry point of the original
// processor.
func MarkdownBasic(input []byte) []byte {
	renderer := NewHTMLRenderer(HTMLRendererParameters{Flags: UseXHTML})
	return Markdown(input, renderer, 0)
}

// MarkdownCommon calls Markdown with the most broadly useful set of
// extensions and renderer flags enabled.
func MarkdownCommon(input []byte) []byte {
	renderer := NewHTMLRenderer(HTMLRendererParameters{
		Flags: UseXHTML | Smartypants | SmartypantsFractions | SmartypantsLatexDashes,
	})
	return Markdown(input, renderer, CommonExtensions)
}

//
//
// Link references
//
//
// This section implements support for references that (usually) appear
// as footnotes in a document, and can be referenced anywhere in the
// document. The basic format is:
//
//    [1]: http://www.google.com/ "Google"
//    [2]: http://www.github.com/ "Github"
//
// Anywhere in the document, the reference can be linked by referring to
// its label, i.e., 1 and 2 in this example, as in:
//
//    This library is hosted on [Github][2], a git hosting site.

// reference is a single parsed link-reference definition, as found during
// pass 1 of the driver.
type reference struct {
	id    string
	link  []byte
	title []byte
}

// referenceTable is the sorted-by-id (case-insensitive) view of the
// references found in pass 1. Sorting once up front makes lookup during
// pass 2 O(log n) instead of O(n) per reference use.
type referenceTable []*reference

func newReferenceTable(refs []*reference) referenceTable {
	t := referenceTable(refs)
	sort.SliceStable(t, func(i, j int) bool {
		return toLowerASCII(t[i].id) < toLowerASCII(t[j].id)
	})
	return t
}

// lookup finds the reference with the given id, compared
// case-insensitively. If more than one reference shares an id (the format
// does not forbid this), the first occurrence in document order wins: the
// table was built with a stable sort, so within a run of equal
// case-folded ids, the earliest-inserted reference sorts first.
func (t referenceTable) lookup(id string) (*reference, bool) {
	key := toLowerASCII(id)
	i := sort.Search(len(t), func(i int) bool {
		return toLowerASCII(t[i].id) >= key
	})
	if i < len(t) && toLowerASCII(t[i].id) == key {
		return t[i], true
	}
	return nil, false
}

func toLowerASCII(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, unicode.ToLower(r))
	}
	return string(out)
}

// isReference checks whether data begins with a reference-link
// definition. If so, it is parsed and appended to *refs. Returns the
// number of bytes to skip to move past it, or zero if the first line is
// not a reference.
func isReference(refs *[]*reference, data []byte) int {
	// up to 3 optional leading spaces
	if len(data) < 4 {
		return 0
	}
	i := 0
	for i < 3 && data[i] == ' ' {
		i++
	}
	if data[i] == ' ' {
		return 0
	}

	// id part: anything but a newline between brackets
	if data[i] != '[' {
		return 0
	}
	i++
	idOffset := i
	for i < len(data) && data[i] != '\n' && data[i] != '\r' && data[i] != ']' {
		i++
	}
	if i >= len(data) || data[i] != ']' {
		return 0
	}
	idEnd := i

	// spacer: colon (space | tab)* newline? (space | tab)*
	i++
	if i >= len(data) || data[i] != ':' {
		return 0
	}
	i++
	for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
		i++
	}
	if i < len(data) && (data[i] == '\n' || data[i] == '\r') {
		i++
		if i < len(data) && data[i] == '\n' && data[i-1] == '\r' {
			i++
		}
	}
	for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
		i++
	}
	if i >= len(data) {
		return 0
	}

	// link: whitespace-free sequence, optionally between angle brackets
	if data[i] == '<' {
		i++
	}
	linkOffset := i
	for i < len(data) && data[i] != ' ' && data[i] != '\t' && data[i] != '\n' && data[i] != '\r' {
		i++
	}
	linkEnd := i
	if data[linkOffset] == '<' && linkEnd > linkOffset && data[linkEnd-1] == '>' {
		linkOffset++
		linkEnd--
	}

	// optional spacer: (space | tab)* (newline | '\'' | '"' | '(' )
	for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
		i++
	}
	if i < len(data) && data[i] != '\n' && data[i] != '\r' && data[i] != '\'' && data[i] != '"' && data[i] != '(' {
		return 0
	}

	// compute end-of-line
	lineEnd := 0
	if i >= len(data) || data[i] == '\r' || data[i] == '\n' {
		lineEnd = i
	}
	if i+1 < len(data) && data[i] == '\r' && data[i+1] == '\n' {
		lineEnd++
	}

	// optional (space|tab)* spacer after a newline
	if lineEnd > 0 {
		i = lineEnd + 1
		for i < len(data) && (data[i] == ' ' || data[i] == '\t') {
			i++
		}
	}

	// optional title: any non-newline sequence enclosed in '"() alone on its line
	titleOffset, titleEnd := 0, 0
	if i+1 < len(data) && (data[i] == '\'' || data[i] == '"' || data[i] == '(') {
		i++
		titleOffset = i

		for i < len(data) && data[i] != '\n' && data[i] != '\r' {
			i++
		}
		if i+1 < len(data) && data[i] == '\n' && data[i+1] == '\r' {
			titleEnd = i + 1
		} else {
			titleEnd = i
		}

		i--
		for i > titleOffset && (data[i] == ' ' || data[i] == '\t') {
			i--
		}
		if i > titleOffset && (data[i] == '\'' || data[i] == '"' || data[i] == ')') {
			lineEnd = titleEnd
			titleEnd = i
		}
	}
	if lineEnd == 0 { // garbage after the link
		return 0
	}

	if refs == nil {
		return lineEnd
	}

	*refs = append(*refs, &reference{
		id:    string(bytes.ToLower(data[idOffset:idEnd])),
		link:  data[linkOffset:linkEnd],
		title: data[titleOffset:titleEnd],
	})

	return lineEnd
}

//
//
// Miscellaneous helper functions
//
//

// ispunct reports whether c is an ASCII punctuation character.
func ispunct(c byte) bool {
	for _, r := range []byte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~") {
		if c == r {
			return true
		}
	}
	return false
}

// isspace reports whether c is an ASCII whitespace character.
func isspace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// isletter reports whether c is an ASCII letter.
func isletter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isalnum reports whether c is an ASCII letter or digit.
func isalnum(c byte) bool {
	return (c >= '0' && c <= '9') || isletter(c)
}

// expandTabs replaces tab characters with spaces, padding out to the next
// TabSize-column stop. Applied unconditionally during the reference pass,
// regardless of extension flags.
func expandTabs(out *bytes.Buffer, line []byte) {
	i, col := 0, 0

	for i < len(line) {
		org := i
		for i < len(line) && line[i] != '\t' {
			i++
			col++
		}
		if i > org {
			out.Write(line[org:i])
		}
		if i >= len(line) {
			break
		}
		for {
			out.WriteByte(' ')
			col++
			if col%TabSize == 0 {
				break
			}
		}
		i++
	}
}
