//
// Typographic substitution: smart quotes, ellipses, dashes and simple
// fractions. Entirely a renderer-side post-process over normal_text
// runs; the core scanner never sees or produces any of this.
//

package markdown

import "bytes"

// wrapSmartypants replaces r's normalText callback with one that runs
// the renderer's original callback first and then filters the text it
// rendered through typographic substitution, so the entities it inserts
// are not escaped again. It is only ever invoked by NewHTMLRenderer when
// HTMLFlags&Smartypants is set.
func wrapSmartypants(r *Renderer, flags HTMLFlags) {
	orig := r.normalText
	r.normalText = func(out *bytes.Buffer, text []byte, opaque interface{}) {
		var prev byte
		if b := out.Bytes(); len(b) > 0 {
			prev = b[len(b)-1]
		}
		var rendered bytes.Buffer
		if orig != nil {
			orig(&rendered, text, opaque)
		} else {
			rendered.Write(text)
		}
		out.Write(smartypants(prev, rendered.Bytes(), flags))
	}
}

// smartypants rewrites straight quotes, triple dots and (depending on
// flags) dashes and simple fractions into their typographic form. prev
// is the last byte already present in the output stream, used to decide
// whether a quote opens or closes a run.
func smartypants(prev byte, text []byte, flags HTMLFlags) []byte {
	out := make([]byte, 0, len(text)+8)
	open := isOpenContext(prev)

	i := 0
	for i < len(text) {
		c := text[i]

		switch c {
		case '\'':
			if open {
				out = append(out, "&lsquo;"...)
			} else {
				out = append(out, "&rsquo;"...)
			}
			open = !open
			i++
			continue

		case '"':
			if open {
				out = append(out, "&ldquo;"...)
			} else {
				out = append(out, "&rdquo;"...)
			}
			open = !open
			i++
			continue

		case '.':
			if i+2 < len(text) && text[i+1] == '.' && text[i+2] == '.' {
				out = append(out, "&hellip;"...)
				i += 3
				open = false
				continue
			}

		case '-':
			if flags&SmartypantsLatexDashes != 0 {
				if i+2 < len(text) && text[i+1] == '-' && text[i+2] == '-' {
					out = append(out, "&mdash;"...)
					i += 3
					open = false
					continue
				}
				if i+1 < len(text) && text[i+1] == '-' {
					out = append(out, "&ndash;"...)
					i += 2
					open = false
					continue
				}
			}
		}

		if flags&SmartypantsFractions != 0 {
			if frac, n := matchFraction(text[i:]); n > 0 {
				out = append(out, frac...)
				i += n
				open = false
				continue
			}
		}

		out = append(out, c)
		open = isOpenContext(c)
		i++
	}
	return out
}

func isOpenContext(c byte) bool {
	return c == 0 || isspace(c) || c == '(' || c == '[' || c == '{'
}

var fractionEntities = map[string]string{
	"1/4": "&frac14;",
	"1/2": "&frac12;",
	"3/4": "&frac34;",
}

// matchFraction recognises one of the handful of fractions with a direct
// HTML entity, provided it isn't glued to a following digit or letter
// (so "1/2" matches but the "1/2" in "1/23" does not).
func matchFraction(data []byte) (string, int) {
	if len(data) < 3 {
		return "", 0
	}
	key := string(data[:3])
	entity, ok := fractionEntities[key]
	if !ok {
		return "", 0
	}
	if len(data) > 3 && isalnum(data[3]) {
		return "", 0
	}
	return entity, 3
}
