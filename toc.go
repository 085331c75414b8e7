//
// Table-of-contents renderer: a second Renderer implementation that
// ignores every block and span except headers, and emits a single nested
// <ul> once the whole document has been walked. Run it as its own
// Markdown() pass over the same input used for the body renderer; since
// both renderers visit headers in the same document order, the anchor
// ids uniqueHeaderID/uniqueID produce line up between the two passes.
//

package markdown

import (
	"bytes"
	"fmt"
)

type tocState struct {
	buf        bytes.Buffer
	levelStack []int
	headerIDs  map[string]int
}

// NewTOCRenderer builds a Renderer whose output, once the document
// finishes, is a nested <ul> table of contents rather than the document
// body.
func NewTOCRenderer() *Renderer {
	st := &tocState{headerIDs: make(map[string]int)}
	return &Renderer{
		header:         st.header,
		documentFooter: st.documentFooter,
		normalText: func(out *bytes.Buffer, text []byte, opaque interface{}) {
			escapeHTML(out, text)
		},
		opaque: st,
	}
}

func (st *tocState) header(out *bytes.Buffer, text []byte, level int, opaque interface{}) {
	id := st.uniqueID(text)

	for len(st.levelStack) > 0 && st.levelStack[len(st.levelStack)-1] > level {
		st.buf.WriteString("</li>\n</ul>\n")
		st.levelStack = st.levelStack[:len(st.levelStack)-1]
	}

	if len(st.levelStack) > 0 && st.levelStack[len(st.levelStack)-1] == level {
		st.buf.WriteString("</li>\n")
	} else {
		st.buf.WriteString("<ul>\n")
		st.levelStack = append(st.levelStack, level)
	}

	fmt.Fprintf(&st.buf, "<li><a href=\"#%s\">", id)
	st.buf.Write(text)
	st.buf.WriteString("</a>")
}

func (st *tocState) uniqueID(text []byte) string {
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

func (st *tocState) documentFooter(out *bytes.Buffer, opaque interface{}) {
	for range st.levelStack {
		st.buf.WriteString("</li>\n</ul>\n")
	}
	st.levelStack = nil
	out.Write(st.buf.Bytes())
}
