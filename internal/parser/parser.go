package parser

import (
	"errors"
	"fmt"

	"github.com/donaldgifford/phpspace/internal/lexer"
	"github.com/donaldgifford/phpspace/internal/token"
)

// Error is a syntax error at a source position.
type Error struct {
	Line   int
	Column int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// callableKeywords may be directly followed by a call argument list.
var callableKeywords = []string{
	"isset", "empty", "unset", "eval", "exit", "die",
	"class", "static", "self", "parent",
}

// blockContinuations are keywords that continue a statement after a block.
var blockContinuations = []string{"else", "elseif", "catch", "finally"}

// infixKeywords continue an expression after a block.
var infixKeywords = []string{"instanceof", "and", "or", "xor", "as", "insteadof"}

// Parse converts PHP source into a syntax tree. The parser recognizes the
// structure of declarations, parameter lists, calls and bracketed groups;
// everything else is kept as flat token leaves inside statements.
func Parse(src string) (*Tree, error) {
	res, err := lexer.Lex(src)
	if err != nil {
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) {
			return nil, &Error{Line: lexErr.Line, Column: lexErr.Column, Msg: lexErr.Msg}
		}
		return nil, err
	}

	p := &state{toks: res.Tokens, b: NewBuilder(res.Tokens)}
	if err := p.parseScript(); err != nil {
		return nil, err
	}

	tree := p.b.Tree()
	tree.Comments = res.Comments
	return tree, nil
}

// state tracks the parser position.
type state struct {
	toks []token.Token
	pos  int
	b    *Builder
}

func (p *state) tok() token.Token {
	return p.toks[p.pos]
}

// peek returns the token n positions ahead, or the EOF token.
func (p *state) peek(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *state) at(k token.Kind) bool {
	return p.tok().Kind == k
}

func (p *state) atKeyword(words ...string) bool {
	for _, w := range words {
		if p.tok().IsKeyword(w) {
			return true
		}
	}
	return false
}

// leaf adds the current token as a leaf and advances.
func (p *state) leaf() NodeID {
	id := p.b.Leaf(p.pos)
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return id
}

func (p *state) errorf(format string, args ...any) error {
	t := p.tok()
	return &Error{Line: t.Line, Column: t.Column, Msg: fmt.Sprintf(format, args...)}
}

func (p *state) expect(k token.Kind) error {
	if !p.at(k) {
		return p.errorf("expected %s, found %s", describe(k), p.found())
	}
	p.leaf()
	return nil
}

func (p *state) found() string {
	t := p.tok()
	if t.Kind == token.EOF {
		return "end of file"
	}
	return fmt.Sprintf("%q", t.Text)
}

func describe(k token.Kind) string {
	switch k {
	case token.LParen:
		return `"("`
	case token.RParen:
		return `")"`
	case token.LBrace:
		return `"{"`
	case token.RBrace:
		return `"}"`
	case token.RBracket:
		return `"]"`
	}
	return k.String()
}

func (p *state) parseScript() error {
	p.b.Open(KindScript)
	for !p.at(token.EOF) {
		if err := p.parseItem(false); err != nil {
			return err
		}
	}
	p.b.Close()
	return nil
}

// parseItem parses one statement-level item inside a script or block.
func (p *state) parseItem(inClass bool) error {
	switch p.tok().Kind {
	case token.InlineHTML, token.OpenTag, token.CloseTag, token.Semicolon:
		p.leaf()
		return nil
	case token.RBrace, token.RParen, token.RBracket:
		return p.errorf("unexpected %s", p.found())
	}
	return p.parseStatement(inClass)
}

func (p *state) parseStatement(inClass bool) error {
	// Attributes are kept as siblings in front of what they annotate.
	for p.at(token.LBracket) && p.tok().Text == "#[" {
		if err := p.parseBracket(); err != nil {
			return err
		}
	}

	switch {
	case p.at(token.EOF), p.at(token.RBrace), p.at(token.CloseTag):
		return nil
	case p.at(token.LBrace):
		return p.parseBlock(false)
	case p.atClassDeclaration():
		return p.parseClass()
	}
	if kind, ok := p.atFunctionDeclaration(inClass); ok {
		return p.parseFunction(kind)
	}
	return p.parseSimpleStatement()
}

// atFunctionDeclaration looks ahead for [modifiers] function [&] name (.
func (p *state) atFunctionDeclaration(inClass bool) (Kind, bool) {
	i := 0
	for p.peek(i).IsModifier() {
		i++
	}
	if !p.peek(i).IsKeyword("function") {
		return 0, false
	}
	j := i + 1
	if t := p.peek(j); t.Kind == token.Operator && t.Text == "&" {
		j++
	}
	if p.peek(j).Kind != token.Identifier || p.peek(j+1).Kind != token.LParen {
		return 0, false
	}
	if i > 0 || inClass {
		return KindMethodDeclaration, true
	}
	return KindFunctionDeclaration, true
}

// atClassDeclaration looks ahead for [modifiers] class|interface|trait|enum name.
func (p *state) atClassDeclaration() bool {
	i := 0
	for p.peek(i).IsModifier() {
		i++
	}
	t := p.peek(i)
	for _, w := range []string{"class", "interface", "trait", "enum"} {
		if t.IsKeyword(w) {
			return p.peek(i+1).Kind == token.Identifier
		}
	}
	return false
}

func (p *state) parseClass() error {
	p.b.Open(KindClassDeclaration)
	for !p.at(token.LBrace) {
		switch p.tok().Kind {
		case token.EOF, token.Semicolon, token.RBrace, token.RParen, token.RBracket:
			return p.errorf("expected class body, found %s", p.found())
		}
		if err := p.parseElement(); err != nil {
			return err
		}
	}
	if err := p.parseBlock(true); err != nil {
		return err
	}
	p.b.Close()
	return nil
}

// parseFunction parses a named function or method declaration. The
// parentheses are children of the declaration; ParameterList holds only
// the parameters and separating commas.
func (p *state) parseFunction(kind Kind) error {
	p.b.Open(kind)
	for !p.atKeyword("function") {
		p.leaf() // modifiers
	}
	p.leaf()
	if p.at(token.Operator) && p.tok().Text == "&" {
		p.leaf()
	}
	p.leaf() // name
	if err := p.parseParameters(); err != nil {
		return err
	}
	if err := p.parseReturnType(); err != nil {
		return err
	}

	switch {
	case p.at(token.LBrace):
		if err := p.parseBlock(false); err != nil {
			return err
		}
	case p.at(token.Semicolon):
		p.leaf()
	default:
		return p.errorf("expected function body, found %s", p.found())
	}
	p.b.Close()
	return nil
}

// parseParameters parses ( [ParameterList] ) into the current node.
func (p *state) parseParameters() error {
	if err := p.expect(token.LParen); err != nil {
		return err
	}
	if !p.at(token.RParen) {
		if err := p.parseParameterList(); err != nil {
			return err
		}
	}
	return p.expect(token.RParen)
}

func (p *state) parseParameterList() error {
	p.b.Open(KindParameterList)
	for {
		if !p.at(token.Comma) {
			p.b.Open(KindParameter)
			if err := p.parseElementsUntil(token.Comma, token.RParen); err != nil {
				return err
			}
			p.b.Close()
		}
		if !p.at(token.Comma) {
			break
		}
		// A trailing comma belongs to the declaration so that every comma
		// in the list sits between two parameters.
		if p.peek(1).Kind == token.RParen {
			p.b.Close()
			p.leaf()
			return nil
		}
		p.leaf()
	}
	p.b.Close()
	return nil
}

// parseReturnType consumes ": type" up to the body.
func (p *state) parseReturnType() error {
	if !(p.at(token.Operator) && p.tok().Text == ":") {
		return nil
	}
	p.leaf()
	for {
		switch {
		case p.at(token.LBrace), p.at(token.Semicolon), p.at(token.EOF):
			return nil
		case p.at(token.Operator) && p.tok().Text == "=>":
			return nil
		case p.at(token.Comma), p.at(token.RParen), p.at(token.RBracket), p.at(token.RBrace):
			return nil
		}
		if err := p.parseElement(); err != nil {
			return err
		}
	}
}

// parseClosure parses [static] function|fn [&] ( params ) [use (...)] [: type] [{...}].
// The body of an arrow function stays in the enclosing expression.
func (p *state) parseClosure() error {
	p.b.Open(KindClosureExpression)
	if p.atKeyword("static") {
		p.leaf()
	}
	arrow := p.atKeyword("fn")
	p.leaf()
	if p.at(token.Operator) && p.tok().Text == "&" {
		p.leaf()
	}
	if err := p.parseParameters(); err != nil {
		return err
	}
	if p.atKeyword("use") {
		p.leaf()
		if !p.at(token.LParen) {
			return p.errorf("expected %s after use, found %s", describe(token.LParen), p.found())
		}
		if err := p.parseParen(); err != nil {
			return err
		}
	}
	if err := p.parseReturnType(); err != nil {
		return err
	}
	if !arrow {
		if !p.at(token.LBrace) {
			return p.errorf("expected closure body, found %s", p.found())
		}
		if err := p.parseBlock(false); err != nil {
			return err
		}
	}
	p.b.Close()
	return nil
}

// parseBlock parses { items }.
func (p *state) parseBlock(inClass bool) error {
	p.b.Open(KindBlock)
	if err := p.expect(token.LBrace); err != nil {
		return err
	}
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			return p.errorf("expected %s, found end of file", describe(token.RBrace))
		}
		if err := p.parseItem(inClass); err != nil {
			return err
		}
	}
	p.leaf()
	p.b.Close()
	return nil
}

// parseSimpleStatement parses a statement as a flat run of elements. A
// statement ends at ";", before "}" or "?>", at end of file, or after a
// block that nothing continues.
func (p *state) parseSimpleStatement() error {
	p.b.Open(KindStatement)
	startsWithDo := p.atKeyword("do")

	for {
		switch p.tok().Kind {
		case token.EOF, token.CloseTag, token.RBrace:
			p.b.Close()
			return nil
		case token.Semicolon:
			p.leaf()
			p.b.Close()
			return nil
		case token.RParen, token.RBracket:
			return p.errorf("unexpected %s", p.found())
		case token.LBrace:
			dynamic := p.opensDynamicName()
			if err := p.parseBlock(false); err != nil {
				return err
			}
			if !p.continuesAfterBlock(startsWithDo, dynamic) {
				p.b.Close()
				return nil
			}
			continue
		}
		if err := p.parseElement(); err != nil {
			return err
		}
	}
}

// continuesAfterBlock reports whether the token after a block belongs
// to the same statement. Only a dynamic name block can be called.
func (p *state) continuesAfterBlock(startsWithDo, dynamic bool) bool {
	t := p.tok()
	switch t.Kind {
	case token.LParen:
		return dynamic
	case token.Keyword:
		if startsWithDo && t.IsKeyword("while") {
			return true
		}
		for _, w := range blockContinuations {
			if t.IsKeyword(w) {
				return true
			}
		}
		for _, w := range infixKeywords {
			if t.IsKeyword(w) {
				return true
			}
		}
		return false
	case token.Variable, token.Identifier, token.String, token.Number,
		token.LBrace, token.RBrace, token.OpenTag, token.CloseTag,
		token.InlineHTML, token.EOF:
		return false
	case token.LBracket:
		return t.Text != "#["
	}
	return true
}

// opensDynamicName reports whether the "{" at the current position
// opens a dynamic name: ->{...}, ?->{...}, ::{...} or ${...}.
func (p *state) opensDynamicName() bool {
	if p.pos == 0 {
		return false
	}
	prev := p.toks[p.pos-1]
	if prev.Kind != token.Operator {
		return false
	}
	switch prev.Text {
	case "->", "?->", "::", "$":
		return true
	}
	return false
}

// parseElement parses one element of an expression.
func (p *state) parseElement() error {
	switch {
	case p.at(token.LParen):
		if p.previousIsCallee() {
			return p.parseCallArguments()
		}
		return p.parseParen()
	case p.at(token.LBracket):
		return p.parseBracket()
	case p.at(token.LBrace):
		return p.parseBlock(false)
	case p.atKeyword("function", "fn"):
		return p.parseClosure()
	case p.atKeyword("static") && (p.peek(1).IsKeyword("function") || p.peek(1).IsKeyword("fn")):
		return p.parseClosure()
	case p.at(token.EOF):
		return p.errorf("unexpected end of file")
	}
	p.leaf()
	return nil
}

// parseElementsUntil parses elements until one of the stop kinds. A
// closing bracket that is not a stop kind is an error.
func (p *state) parseElementsUntil(stops ...token.Kind) error {
	for {
		t := p.tok()
		for _, k := range stops {
			if t.Kind == k {
				return nil
			}
		}
		switch t.Kind {
		case token.RParen, token.RBracket, token.RBrace, token.EOF:
			return p.errorf("expected %s, found %s", describe(stops[len(stops)-1]), p.found())
		}
		if err := p.parseElement(); err != nil {
			return err
		}
	}
}

// previousIsCallee reports whether the node just before the current
// position can be called, making the next "(" an argument list.
func (p *state) previousIsCallee() bool {
	prev := p.b.LastChild()
	if prev == NoNode {
		return false
	}
	switch p.b.kind(prev) {
	case KindCallArgumentList, KindParenExpression, KindBracketExpression, KindBlock:
		return true
	case KindToken:
	default:
		return false
	}

	t, _ := p.b.token(prev)
	switch t.Kind {
	case token.Identifier, token.Variable:
		return true
	case token.Keyword:
		for _, w := range callableKeywords {
			if t.IsKeyword(w) {
				return true
			}
		}
	}
	return false
}

// parseCallArguments parses ( [Argument {, Argument} [,]] ).
func (p *state) parseCallArguments() error {
	p.b.Open(KindCallArgumentList)
	p.leaf()
	for !p.at(token.RParen) {
		if p.at(token.Comma) {
			p.leaf()
			continue
		}
		p.b.Open(KindArgument)
		if err := p.parseElementsUntil(token.Comma, token.RParen); err != nil {
			return err
		}
		p.b.Close()
	}
	p.leaf()
	p.b.Close()
	return nil
}

// parseParen parses ( [Expression] ).
func (p *state) parseParen() error {
	p.b.Open(KindParenExpression)
	p.leaf()
	if !p.at(token.RParen) {
		p.b.Open(KindExpression)
		if err := p.parseElementsUntilParen(); err != nil {
			return err
		}
		p.b.Close()
	}
	if err := p.expect(token.RParen); err != nil {
		return err
	}
	p.b.Close()
	return nil
}

// parseElementsUntilParen is parseElementsUntil(RParen) but also accepts
// semicolons, as in for (;;) headers.
func (p *state) parseElementsUntilParen() error {
	for !p.at(token.RParen) {
		if p.at(token.Semicolon) {
			p.leaf()
			continue
		}
		if err := p.parseElementsUntil(token.Semicolon, token.RParen); err != nil {
			return err
		}
	}
	return nil
}

// parseBracket parses [ ... ] and #[ ... ].
func (p *state) parseBracket() error {
	p.b.Open(KindBracketExpression)
	p.leaf()
	if err := p.parseElementsUntil(token.RBracket); err != nil {
		return err
	}
	p.leaf()
	p.b.Close()
	return nil
}
