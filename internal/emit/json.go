package emit

import (
	"bytes"
	"unicode/utf8"

	"github.com/agentic-research/lumiere/api"
)

// writeDocument writes the document in JSON.stringify(doc, null, 2) layout.
// encoding/json cannot be used directly: it sorts map keys and escapes
// U+2028 and U+2029, which JSON.stringify leaves alone.
func writeDocument(buf *bytes.Buffer, doc *api.Document) {
	var cats []api.Category
	if doc != nil {
		cats = doc.Categories
	}
	if len(cats) == 0 {
		buf.WriteString("{}")
		return
	}
	buf.WriteString("{\n")
	for i, c := range cats {
		buf.WriteString("  ")
		writeString(buf, c.Name)
		buf.WriteString(": ")
		if len(c.Tokens) == 0 {
			buf.WriteString("{}")
		} else {
			buf.WriteString("{\n")
			for j, t := range c.Tokens {
				buf.WriteString("    ")
				writeString(buf, t.Name)
				buf.WriteString(": ")
				writeString(buf, t.Value)
				if j < len(c.Tokens)-1 {
					buf.WriteByte(',')
				}
				buf.WriteByte('\n')
			}
			buf.WriteString("  }")
		}
		if i < len(cats)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
}

// writeString writes s as a JSON string literal with JSON.stringify
// escaping: quote, backslash and C0 controls are escaped, everything else
// (including U+2028, U+2029 and HTML characters) is written as is. Invalid
// UTF-8 is written as U+FFFD; source loaders reject it before it gets here.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				buf.WriteRune(utf8.RuneError)
			} else {
				buf.WriteString(s[i : i+size])
			}
			i += size
			continue
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if c < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(hexDigits[c>>4])
				buf.WriteByte(hexDigits[c&0xF])
			} else {
				buf.WriteByte(c)
			}
		}
		i++
	}
	buf.WriteByte('"')
}

const hexDigits = "0123456789abcdef"
