// Package lexer splits PHP source into tokens.
package lexer

import (
	"fmt"

	"github.com/donaldgifford/phpspace/internal/token"
)

// Error is a lexical error at a source position.
type Error struct {
	Line   int
	Column int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// Result holds the significant tokens and the comments of a file.
// Tokens always ends with an EOF token.
type Result struct {
	Tokens   []token.Token
	Comments []token.Token
}

// Lex tokenizes src. Text before the first PHP open tag is returned as
// InlineHTML.
func Lex(src string) (*Result, error) {
	lx := &lexer{cur: newCursor(src)}
	if err := lx.run(); err != nil {
		return nil, err
	}
	return &Result{Tokens: lx.tokens, Comments: lx.comments}, nil
}

type lexer struct {
	cur      cursor
	inPHP    bool
	tokens   []token.Token
	comments []token.Token
}

func (lx *lexer) run() error {
	for !lx.cur.eof() {
		var err error
		if lx.inPHP {
			err = lx.scanPHP()
		} else {
			lx.scanHTML()
		}
		if err != nil {
			return err
		}
	}
	lx.tokens = append(lx.tokens, token.Token{
		Kind:   token.EOF,
		Line:   lx.cur.line,
		Column: lx.cur.col,
		Offset: lx.cur.off,
	})
	return nil
}

func (lx *lexer) emit(k token.Kind, m mark) {
	lx.tokens = append(lx.tokens, token.Token{
		Kind:   k,
		Text:   lx.cur.from(m),
		Line:   m.line,
		Column: m.col,
		Offset: m.off,
	})
}

func (lx *lexer) errorf(m mark, format string, args ...any) error {
	return &Error{Line: m.line, Column: m.col, Msg: fmt.Sprintf(format, args...)}
}

// scanHTML consumes inline HTML up to and including the next open tag.
func (lx *lexer) scanHTML() {
	m := lx.cur.mark()
	for !lx.cur.eof() && !lx.atOpenTag() {
		lx.cur.bump()
	}
	if lx.cur.off > m.off {
		lx.emit(token.InlineHTML, m)
	}
	if lx.cur.eof() {
		return
	}

	m = lx.cur.mark()
	switch {
	case lx.cur.hasPrefixFold("<?php"):
		lx.cur.bumpN(len("<?php"))
	case lx.cur.hasPrefix("<?="):
		lx.cur.bumpN(len("<?="))
	default:
		lx.cur.bumpN(len("<?"))
	}
	lx.emit(token.OpenTag, m)
	lx.inPHP = true
}

func (lx *lexer) atOpenTag() bool {
	return lx.cur.hasPrefix("<?")
}

// scanPHP scans one token, comment or run of whitespace.
func (lx *lexer) scanPHP() error {
	c := lx.cur.peek(0)
	m := lx.cur.mark()

	switch {
	case isSpace(c):
		lx.cur.bump()
		return nil

	case lx.cur.hasPrefix("?>"):
		lx.cur.bumpN(2)
		lx.emit(token.CloseTag, m)
		lx.inPHP = false
		return nil

	case lx.cur.hasPrefix("#["):
		lx.cur.bumpN(2)
		lx.emit(token.LBracket, m)
		return nil

	case c == '#' || lx.cur.hasPrefix("//"):
		lx.scanLineComment()
		return nil

	case lx.cur.hasPrefix("/*"):
		return lx.scanBlockComment()

	case c == '$' && isNameStart(lx.cur.peek(1)):
		lx.cur.bump()
		lx.scanName(false)
		lx.emit(token.Variable, m)
		return nil

	case isNameStart(c) || (c == '\\' && isNameStart(lx.cur.peek(1))):
		lx.scanWord(m)
		return nil

	case isDigit(c) || (c == '.' && isDigit(lx.cur.peek(1))):
		lx.scanNumber()
		lx.emit(token.Number, m)
		return nil

	case c == '\'':
		return lx.scanSingleQuoted()

	case c == '"' || c == '`':
		return lx.scanDoubleQuoted(c)

	case lx.cur.hasPrefix("<<<"):
		if ok, err := lx.scanHeredoc(); ok || err != nil {
			return err
		}
	}

	return lx.scanPunct()
}

func (lx *lexer) scanLineComment() {
	m := lx.cur.mark()
	for !lx.cur.eof() && lx.cur.peek(0) != '\n' && !lx.cur.hasPrefix("?>") {
		lx.cur.bump()
	}
	lx.comments = append(lx.comments, token.Token{
		Kind:   token.Comment,
		Text:   lx.cur.from(m),
		Line:   m.line,
		Column: m.col,
		Offset: m.off,
	})
}

func (lx *lexer) scanBlockComment() error {
	m := lx.cur.mark()
	lx.cur.bumpN(2)
	for !lx.cur.hasPrefix("*/") {
		if lx.cur.eof() {
			return lx.errorf(m, "unterminated comment")
		}
		lx.cur.bump()
	}
	lx.cur.bumpN(2)
	lx.comments = append(lx.comments, token.Token{
		Kind:   token.Comment,
		Text:   lx.cur.from(m),
		Line:   m.line,
		Column: m.col,
		Offset: m.off,
	})
	return nil
}

// scanName consumes identifier characters, and namespace separators
// when namespaced is set.
func (lx *lexer) scanName(namespaced bool) {
	for !lx.cur.eof() {
		c := lx.cur.peek(0)
		switch {
		case isNameContinue(c):
			lx.cur.bump()
		case namespaced && c == '\\' && isNameStart(lx.cur.peek(1)):
			lx.cur.bump()
		default:
			return
		}
	}
}

// scanWord scans a keyword or a (possibly namespaced) identifier. Words
// in name position (after ->, ?->, :: or function) are never keywords.
func (lx *lexer) scanWord(m mark) {
	lx.cur.bump()
	lx.scanName(true)
	text := lx.cur.from(m)

	if token.LookupKeyword(text) && !lx.inNamePosition() {
		lx.emit(token.Keyword, m)
		return
	}
	lx.emit(token.Identifier, m)
}

func (lx *lexer) inNamePosition() bool {
	n := len(lx.tokens)
	if n == 0 {
		return false
	}
	prev := lx.tokens[n-1]
	if prev.Kind == token.Operator && prev.Text == "&" && n > 1 {
		// function &name()
		return lx.tokens[n-2].IsKeyword("function")
	}
	if prev.IsKeyword("function") {
		return true
	}
	if prev.Kind != token.Operator {
		return false
	}
	switch prev.Text {
	case "->", "?->", "::":
		return true
	}
	return false
}

func (lx *lexer) scanNumber() {
	for !lx.cur.eof() {
		c := lx.cur.peek(0)
		switch {
		case isNameContinue(c) || c == '.':
			lx.cur.bump()
		case (c == '+' || c == '-') && isDigit(lx.cur.peek(1)) && isExponent(lx.cur.src[lx.cur.off-1]):
			lx.cur.bump()
		default:
			return
		}
	}
}

func isExponent(b byte) bool {
	return b == 'e' || b == 'E'
}

// punctKinds maps single-byte punctuators to their kind.
var punctKinds = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	',': token.Comma,
	';': token.Semicolon,
}

// operators is ordered longest first.
var operators = []string{
	"<=>", "**=", "...", "<<=", ">>=", "===", "!==", "??=", "?->",
	"->", "=>", "::", "++", "--", "==", "!=", "<>", "<=", ">=", "&&", "||",
	"??", "+=", "-=", "*=", "/=", ".=", "%=", "&=", "|=", "^=", "<<", ">>", "**",
}

func (lx *lexer) scanPunct() error {
	m := lx.cur.mark()
	c := lx.cur.peek(0)

	if k, ok := punctKinds[c]; ok {
		lx.cur.bump()
		lx.emit(k, m)
		return nil
	}

	for _, op := range operators {
		if lx.cur.hasPrefix(op) {
			lx.cur.bumpN(len(op))
			lx.emit(token.Operator, m)
			return nil
		}
	}

	// Any other rune is a single-character operator.
	lx.cur.bump()
	lx.emit(token.Operator, m)
	return nil
}
