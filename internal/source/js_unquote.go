package source

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// unquoteJS decodes a string or template literal (quotes included) to the
// value a JavaScript engine would produce for a CommonJS module, which
// runs in sloppy mode and so accepts legacy octal escapes in strings.
//
// Lone surrogates cannot be held in a Go string and become U+FFFD.
func unquoteJS(lit string) (string, error) {
	if len(lit) < 2 {
		return "", errors.New("malformed string literal")
	}
	template := lit[0] == '`'
	body := lit[1 : len(lit)-1]

	d := decoder{high: -1}
	d.b.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if template && c == '\r' {
			d.char('\n')
			i = skipLF(body, i+1)
			continue
		}
		if c != '\\' {
			_, size := utf8.DecodeRuneInString(body[i:])
			d.raw(body[i : i+size])
			i += size
			continue
		}

		i++
		if i >= len(body) {
			return "", errors.New("unterminated escape sequence")
		}
		c = body[i]
		switch c {
		case 'b':
			d.char('\b')
			i++
		case 'f':
			d.char('\f')
			i++
		case 'n':
			d.char('\n')
			i++
		case 'r':
			d.char('\r')
			i++
		case 't':
			d.char('\t')
			i++
		case 'v':
			d.char('\v')
			i++
		case '\n':
			i++
		case '\r':
			i = skipLF(body, i+1)
		case 'x':
			if i+3 > len(body) {
				return "", errors.New(`\x needs two hex digits`)
			}
			v, ok := hexValue(body[i+1 : i+3])
			if !ok {
				return "", fmt.Errorf(`invalid escape \x%s`, body[i+1:i+3])
			}
			d.unit(v)
			i += 3
		case 'u':
			n, err := d.unicode(body[i+1:])
			if err != nil {
				return "", err
			}
			i += 1 + n
		case '0', '1', '2', '3', '4', '5', '6', '7':
			n := octalLen(body[i:])
			if template && (c != '0' || n > 1) {
				return "", errors.New("octal escapes are not allowed in template literals")
			}
			v, _ := strconv.ParseUint(body[i:i+n], 8, 32)
			d.unit(rune(v))
			i += n
		case '8', '9':
			if template {
				return "", fmt.Errorf(`\%c is not allowed in template literals`, c)
			}
			d.raw(body[i : i+1])
			i++
		default:
			r, size := utf8.DecodeRuneInString(body[i:])
			if r != '\u2028' && r != '\u2029' {
				d.raw(body[i : i+size])
			}
			i += size
		}
	}
	d.flush()
	return d.b.String(), nil
}

// decoder accumulates UTF-16 code units so that escaped surrogate pairs
// (e.g. \uD83D\uDE00) combine into one code point.
type decoder struct {
	b    strings.Builder
	high rune // pending high surrogate, or -1
}

func (d *decoder) flush() {
	if d.high >= 0 {
		d.b.WriteRune(utf8.RuneError)
		d.high = -1
	}
}

func (d *decoder) raw(s string) {
	d.flush()
	d.b.WriteString(s)
}

func (d *decoder) char(r rune) {
	d.flush()
	d.b.WriteRune(r)
}

func (d *decoder) unit(u rune) {
	switch {
	case u >= 0xD800 && u < 0xDC00:
		d.flush()
		d.high = u
	case u >= 0xDC00 && u < 0xE000:
		if d.high < 0 {
			d.b.WriteRune(utf8.RuneError)
			return
		}
		d.b.WriteRune(utf16.DecodeRune(d.high, u))
		d.high = -1
	default:
		d.char(u)
	}
}

// unicode decodes the part of a \u escape after the 'u' and reports how
// many bytes it used.
func (d *decoder) unicode(s string) (int, error) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, errors.New(`invalid escape \u{...}`)
		}
		v, ok := hexValue(s[1:end])
		if !ok || v > utf8.MaxRune {
			return 0, fmt.Errorf(`invalid escape \u{%s}`, s[1:end])
		}
		d.unit(v)
		return end + 1, nil
	}
	if len(s) < 4 {
		return 0, errors.New(`\u needs four hex digits`)
	}
	v, ok := hexValue(s[:4])
	if !ok {
		return 0, fmt.Errorf(`invalid escape \u%s`, s[:4])
	}
	d.unit(v)
	return 4, nil
}

func hexValue(s string) (rune, bool) {
	if s == "" || len(s) > 8 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if !isHex(s[i]) {
			return 0, false
		}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	return rune(v), err == nil
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// octalLen is the length of a legacy octal escape at the start of s:
// up to three digits when it starts with 0-3, otherwise up to two.
func octalLen(s string) int {
	limit := 2
	if s[0] <= '3' {
		limit = 3
	}
	n := 1
	for n < limit && n < len(s) && s[n] >= '0' && s[n] <= '7' {
		n++
	}
	return n
}

func skipLF(s string, i int) int {
	if i < len(s) && s[i] == '\n' {
		return i + 1
	}
	return i
}
