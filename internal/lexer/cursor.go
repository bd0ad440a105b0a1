package lexer

import "unicode/utf8"

// cursor walks the source and tracks the 1-indexed line and rune column
// of the current position.
type cursor struct {
	src  string
	off  int
	line int
	col  int
}

func newCursor(src string) cursor {
	return cursor{src: src, line: 1, col: 1}
}

func (c *cursor) eof() bool {
	return c.off >= len(c.src)
}

// peek returns the byte at off+n, or 0 past the end.
func (c *cursor) peek(n int) byte {
	if c.off+n >= len(c.src) {
		return 0
	}
	return c.src[c.off+n]
}

func (c *cursor) hasPrefix(s string) bool {
	return len(c.src)-c.off >= len(s) && c.src[c.off:c.off+len(s)] == s
}

// hasPrefixFold is hasPrefix with ASCII case folding.
func (c *cursor) hasPrefixFold(s string) bool {
	if len(c.src)-c.off < len(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if lower(c.src[c.off+i]) != lower(s[i]) {
			return false
		}
	}
	return true
}

// bump advances one rune.
func (c *cursor) bump() {
	if c.eof() {
		return
	}
	r, size := utf8.DecodeRuneInString(c.src[c.off:])
	c.off += size
	if r == '\n' {
		c.line++
		c.col = 1
		return
	}
	c.col++
}

// bumpN advances n bytes worth of runes. Callers only pass ASCII spans.
func (c *cursor) bumpN(n int) {
	end := c.off + n
	for c.off < end && !c.eof() {
		c.bump()
	}
}

// mark is a saved position used to build tokens.
type mark struct {
	off, line, col int
}

func (c *cursor) mark() mark {
	return mark{off: c.off, line: c.line, col: c.col}
}

func (c *cursor) from(m mark) string {
	return c.src[m.off:c.off]
}

func lower(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}

func isNameStart(b byte) bool {
	return b == '_' || ('a' <= lower(b) && lower(b) <= 'z') || b >= utf8.RuneSelf
}

func isNameContinue(b byte) bool {
	return isNameStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}
