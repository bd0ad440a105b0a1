// Package parser builds an arena syntax tree from PHP source.
package parser

import "github.com/donaldgifford/phpspace/internal/token"

// Kind classifies a node in the syntax tree.
type Kind int

const (
	// KindScript is the root of a file.
	KindScript Kind = iota
	// KindStatement is any statement without a more specific kind.
	KindStatement
	// KindBlock is { ... }.
	KindBlock
	// KindClassDeclaration is a class, interface, trait or enum.
	KindClassDeclaration
	// KindFunctionDeclaration is a named top-level or nested function.
	KindFunctionDeclaration
	// KindMethodDeclaration is a function declared in a class body or with modifiers.
	KindMethodDeclaration
	// KindClosureExpression is function () {...} or fn () => ...
	KindClosureExpression
	// KindParameterList is the comma-separated parameters of a declaration,
	// without the surrounding parentheses.
	KindParameterList
	// KindParameter is one parameter.
	KindParameter
	// KindCallArgumentList is ( args ) following a callee.
	KindCallArgumentList
	// KindArgument is one call argument.
	KindArgument
	// KindParenExpression is any other ( ... ).
	KindParenExpression
	// KindBracketExpression is [ ... ] or #[ ... ].
	KindBracketExpression
	// KindExpression is the content of a parenthesized expression.
	KindExpression
	// KindToken is a leaf wrapping one token.
	KindToken
)

var kindNames = [...]string{
	KindScript:              "Script",
	KindStatement:           "Statement",
	KindBlock:               "Block",
	KindClassDeclaration:    "ClassDeclaration",
	KindFunctionDeclaration: "FunctionDeclaration",
	KindMethodDeclaration:   "MethodDeclaration",
	KindClosureExpression:   "ClosureExpression",
	KindParameterList:       "ParameterList",
	KindParameter:           "Parameter",
	KindCallArgumentList:    "CallArgumentList",
	KindArgument:            "Argument",
	KindParenExpression:     "ParenExpression",
	KindBracketExpression:   "BracketExpression",
	KindExpression:          "Expression",
	KindToken:               "Token",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// NodeID addresses a node in a Tree's arena.
type NodeID int32

// NoNode is returned by navigation methods when there is no such node.
const NoNode NodeID = -1

// node is an arena slot. Relations are stored as indices.
type node struct {
	kind     Kind
	parent   NodeID
	index    int32 // Position among the parent's children.
	children []NodeID
	first    int32 // Token index of the first token, -1 if empty.
	last     int32 // Token index of the last token, -1 if empty.
	tok      int32 // Token index for KindToken leaves, -1 otherwise.
}

// Tree is an immutable syntax tree over a token stream. Nodes are stored
// in document (pre-order) order, so iterating IDs from 0 visits parents
// before children and earlier source before later source.
type Tree struct {
	Tokens   []token.Token
	Comments []token.Token
	nodes    []node
}

// Root returns the root node, or NoNode for an empty tree.
func (t *Tree) Root() NodeID {
	if len(t.nodes) == 0 {
		return NoNode
	}
	return 0
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Walk calls fn for every node in document order.
func (t *Tree) Walk(fn func(NodeID)) {
	for i := range t.nodes {
		fn(NodeID(i))
	}
}

// Kind returns the node's kind.
func (t *Tree) Kind(id NodeID) Kind {
	return t.nodes[id].kind
}

// Parent returns the parent node, or NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	return t.nodes[id].parent
}

// Children returns the node's children in source order. The slice must
// not be modified.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	return t.nodes[id].children
}

// PrevSibling returns the previous child of the same parent.
func (t *Tree) PrevSibling(id NodeID) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	n := t.nodes[id]
	if n.parent == NoNode || n.index == 0 {
		return NoNode
	}
	return t.nodes[n.parent].children[n.index-1]
}

// NextSibling returns the next child of the same parent.
func (t *Tree) NextSibling(id NodeID) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	n := t.nodes[id]
	if n.parent == NoNode {
		return NoNode
	}
	siblings := t.nodes[n.parent].children
	if int(n.index)+1 >= len(siblings) {
		return NoNode
	}
	return siblings[n.index+1]
}

// PrevNode returns the node immediately before id in document order at
// the same or a shallower depth: the previous sibling, or else the
// parent's PrevNode.
func (t *Tree) PrevNode(id NodeID) NodeID {
	for n := id; t.valid(n); n = t.nodes[n].parent {
		if s := t.PrevSibling(n); s != NoNode {
			return s
		}
	}
	return NoNode
}

// NextNode is the mirror of PrevNode.
func (t *Tree) NextNode(id NodeID) NodeID {
	for n := id; t.valid(n); n = t.nodes[n].parent {
		if s := t.NextSibling(n); s != NoNode {
			return s
		}
	}
	return NoNode
}

// HasTokens reports whether the node spans at least one token.
func (t *Tree) HasTokens(id NodeID) bool {
	return t.valid(id) && t.nodes[id].first >= 0
}

// FirstToken returns the first token of the node's span. It returns the
// zero Token for an empty node.
func (t *Tree) FirstToken(id NodeID) token.Token {
	if !t.HasTokens(id) {
		return token.Token{}
	}
	return t.Tokens[t.nodes[id].first]
}

// LastToken returns the last token of the node's span.
func (t *Tree) LastToken(id NodeID) token.Token {
	if !t.HasTokens(id) {
		return token.Token{}
	}
	return t.Tokens[t.nodes[id].last]
}

// Token returns the token of a KindToken leaf.
func (t *Tree) Token(id NodeID) (token.Token, bool) {
	if !t.valid(id) || t.nodes[id].tok < 0 {
		return token.Token{}, false
	}
	return t.Tokens[t.nodes[id].tok], true
}

// IsToken reports whether id is a leaf holding a token of kind k.
func (t *Tree) IsToken(id NodeID, k token.Kind) bool {
	tok, ok := t.Token(id)
	return ok && tok.Kind == k
}

// FirstChildToken returns the first leaf child holding a token of kind k.
func (t *Tree) FirstChildToken(id NodeID, k token.Kind) NodeID {
	for _, c := range t.Children(id) {
		if t.IsToken(c, k) {
			return c
		}
	}
	return NoNode
}

// ChildrenToken returns every leaf child holding a token of kind k.
func (t *Tree) ChildrenToken(id NodeID, k token.Kind) []NodeID {
	var out []NodeID
	for _, c := range t.Children(id) {
		if t.IsToken(c, k) {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns the first child of the given kind.
func (t *Tree) FirstChild(id NodeID, k Kind) NodeID {
	for _, c := range t.Children(id) {
		if t.nodes[c].kind == k {
			return c
		}
	}
	return NoNode
}
