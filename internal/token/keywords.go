package token

import "strings"

// keywords is the set of PHP reserved words recognized by the lexer,
// stored lowercase.
var keywords = map[string]bool{
	"abstract": true, "and": true, "array": true, "as": true,
	"break": true, "callable": true, "case": true, "catch": true,
	"class": true, "clone": true, "const": true, "continue": true,
	"declare": true, "default": true, "die": true, "do": true,
	"echo": true, "else": true, "elseif": true, "empty": true,
	"enddeclare": true, "endfor": true, "endforeach": true, "endif": true,
	"endswitch": true, "endwhile": true, "enum": true, "eval": true,
	"exit": true, "extends": true, "final": true, "finally": true,
	"fn": true, "for": true, "foreach": true, "function": true,
	"global": true, "goto": true, "if": true, "implements": true,
	"include": true, "include_once": true, "instanceof": true, "insteadof": true,
	"interface": true, "isset": true, "list": true, "match": true,
	"namespace": true, "new": true, "or": true, "parent": true,
	"print": true, "private": true, "protected": true, "public": true,
	"readonly": true, "require": true, "require_once": true, "return": true,
	"self": true, "static": true, "switch": true, "throw": true,
	"trait": true, "try": true, "unset": true, "use": true,
	"var": true, "while": true, "xor": true, "yield": true,
}

// LookupKeyword reports whether word is a PHP keyword, ignoring case.
func LookupKeyword(word string) bool {
	return keywords[strings.ToLower(word)]
}

// Modifiers are the keywords that may precede a class member declaration.
var modifiers = map[string]bool{
	"abstract":  true,
	"final":     true,
	"public":    true,
	"protected": true,
	"private":   true,
	"static":    true,
	"readonly":  true,
	"var":       true,
}

// IsModifier reports whether the token is a member modifier keyword.
func (t Token) IsModifier() bool {
	return t.Kind == Keyword && modifiers[strings.ToLower(t.Text)]
}
