package lexer

import (
	"strings"

	"github.com/donaldgifford/phpspace/internal/token"
)

func (lx *lexer) scanSingleQuoted() error {
	m := lx.cur.mark()
	lx.cur.bump()
	for {
		if lx.cur.eof() {
			return lx.errorf(m, "unterminated string")
		}
		switch lx.cur.peek(0) {
		case '\\':
			lx.cur.bump()
			lx.cur.bump()
		case '\'':
			lx.cur.bump()
			lx.emit(token.String, m)
			return nil
		default:
			lx.cur.bump()
		}
	}
}

// scanDoubleQuoted scans a "..." or `...` literal, skipping over {$...}
// interpolations which may themselves contain quotes.
func (lx *lexer) scanDoubleQuoted(quote byte) error {
	m := lx.cur.mark()
	lx.cur.bump()
	for {
		if lx.cur.eof() {
			return lx.errorf(m, "unterminated string")
		}
		switch c := lx.cur.peek(0); {
		case c == '\\':
			lx.cur.bump()
			lx.cur.bump()
		case c == quote:
			lx.cur.bump()
			lx.emit(token.String, m)
			return nil
		case c == '{' && lx.cur.peek(1) == '$':
			if err := lx.skipInterpolation(); err != nil {
				return err
			}
		default:
			lx.cur.bump()
		}
	}
}

// skipInterpolation consumes a balanced {...} expression inside a string.
func (lx *lexer) skipInterpolation() error {
	m := lx.cur.mark()
	depth := 0
	for !lx.cur.eof() {
		switch c := lx.cur.peek(0); c {
		case '{':
			depth++
			lx.cur.bump()
		case '}':
			depth--
			lx.cur.bump()
			if depth == 0 {
				return nil
			}
		case '\'', '"':
			if err := lx.skipQuoted(c); err != nil {
				return err
			}
		default:
			lx.cur.bump()
		}
	}
	return lx.errorf(m, "unterminated string interpolation")
}

// skipQuoted consumes a quoted string nested inside an interpolation.
func (lx *lexer) skipQuoted(quote byte) error {
	m := lx.cur.mark()
	lx.cur.bump()
	for !lx.cur.eof() {
		switch lx.cur.peek(0) {
		case '\\':
			lx.cur.bump()
			lx.cur.bump()
		case quote:
			lx.cur.bump()
			return nil
		default:
			lx.cur.bump()
		}
	}
	return lx.errorf(m, "unterminated string")
}

// scanHeredoc scans <<<ID ... ID and <<<'ID' ... ID. It reports false
// without consuming anything when the input is not a heredoc opener.
func (lx *lexer) scanHeredoc() (bool, error) {
	rest := lx.cur.src[lx.cur.off+3:]
	rest = strings.TrimLeft(rest, " \t")
	quote := byte(0)
	if rest != "" && (rest[0] == '\'' || rest[0] == '"') {
		quote = rest[0]
		rest = rest[1:]
	}

	n := 0
	for n < len(rest) && isNameContinue(rest[n]) {
		n++
	}
	if n == 0 || !isNameStart(rest[0]) {
		return false, nil
	}
	label := rest[:n]
	rest = rest[n:]
	if quote != 0 {
		if rest == "" || rest[0] != quote {
			return false, nil
		}
		rest = rest[1:]
	}
	if rest == "" || rest[0] != '\n' {
		return false, nil
	}

	m := lx.cur.mark()
	// Consume the opener line.
	for lx.cur.peek(0) != '\n' {
		lx.cur.bump()
	}
	lx.cur.bump()

	for !lx.cur.eof() {
		for c := lx.cur.peek(0); c == ' ' || c == '\t'; c = lx.cur.peek(0) {
			lx.cur.bump()
		}
		if lx.cur.hasPrefix(label) && !isNameContinue(lx.cur.peek(len(label))) {
			lx.cur.bumpN(len(label))
			lx.emit(token.String, m)
			return true, nil
		}
		for !lx.cur.eof() && lx.cur.peek(0) != '\n' {
			lx.cur.bump()
		}
		lx.cur.bump()
	}
	return true, lx.errorf(m, "unterminated heredoc %s", label)
}
