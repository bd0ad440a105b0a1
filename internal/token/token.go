// Package token defines the lexical tokens of PHP source as seen by phpspace.
package token

import "unicode/utf8"

// Kind classifies a token.
type Kind int

const (
	// EOF marks the end of the token stream.
	EOF Kind = iota
	// InlineHTML is text outside of PHP tags.
	InlineHTML
	// OpenTag is <?php, <?= or <?.
	OpenTag
	// CloseTag is ?>.
	CloseTag
	// Variable is $name.
	Variable
	// Identifier is a name, possibly namespaced (Foo\Bar, \strlen).
	Identifier
	// Keyword is a reserved word. Matching is case-insensitive.
	Keyword
	// String is a quoted, backtick, heredoc or nowdoc literal.
	String
	// Number is an integer or float literal.
	Number
	// Comment is a line or block comment. Comments are trivia and never
	// appear in the parser's token stream.
	Comment
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	// Operator is every other punctuator.
	Operator
)

var kindNames = [...]string{
	EOF:        "EOF",
	InlineHTML: "InlineHTML",
	OpenTag:    "OpenTag",
	CloseTag:   "CloseTag",
	Variable:   "Variable",
	Identifier: "Identifier",
	Keyword:    "Keyword",
	String:     "String",
	Number:     "Number",
	Comment:    "Comment",
	LParen:     "LParen",
	RParen:     "RParen",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	LBracket:   "LBracket",
	RBracket:   "RBracket",
	Comma:      "Comma",
	Semicolon:  "Semicolon",
	Operator:   "Operator",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Token is a single lexeme with its source position.
type Token struct {
	Kind   Kind
	Text   string // Original lexeme, verbatim.
	Line   int    // 1-indexed.
	Column int    // 1-indexed, counted in runes.
	Offset int    // Byte offset into the decoded source.
}

// EndColumn returns the column of the last rune of the token. It is only
// meaningful for tokens that do not span lines.
func (t Token) EndColumn() int {
	return t.Column + utf8.RuneCountInString(t.Text) - 1
}

// Is reports whether the token has one of the given kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// IsKeyword reports whether the token is the given keyword, ignoring case.
func (t Token) IsKeyword(word string) bool {
	return t.Kind == Keyword && equalFold(t.Text, word)
}

// equalFold is an ASCII-only strings.EqualFold; PHP keywords are ASCII.
func equalFold(s, word string) bool {
	if len(s) != len(word) {
		return false
	}
	for i := 0; i < len(s); i++ {
		a, b := s[i], word[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}
