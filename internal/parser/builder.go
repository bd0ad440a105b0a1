package parser

import "github.com/donaldgifford/phpspace/internal/token"

// Builder assembles a Tree top-down. Nodes are appended in the order
// they are opened, which keeps the arena in document order as long as
// callers open and add children in source order.
type Builder struct {
	toks  []token.Token
	nodes []node
	stack []NodeID
}

// NewBuilder returns a builder over the given token stream.
func NewBuilder(toks []token.Token) *Builder {
	return &Builder{toks: toks}
}

// Open starts a node of kind k as the last child of the current node.
func (b *Builder) Open(k Kind) NodeID {
	id := b.add(node{kind: k, first: -1, last: -1, tok: -1})
	b.stack = append(b.stack, id)
	return id
}

// Leaf adds a KindToken child for token index i.
func (b *Builder) Leaf(i int) NodeID {
	ti := int32(i)
	return b.add(node{kind: KindToken, first: ti, last: ti, tok: ti})
}

// Close finishes the current node, setting its span from its children.
func (b *Builder) Close() NodeID {
	id := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	n := &b.nodes[id]
	for _, c := range n.children {
		if b.nodes[c].first >= 0 {
			n.first = b.nodes[c].first
			break
		}
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if c := n.children[i]; b.nodes[c].last >= 0 {
			n.last = b.nodes[c].last
			break
		}
	}
	return id
}

// Depth returns the number of open nodes.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// LastChild returns the most recent child of the current node.
func (b *Builder) LastChild() NodeID {
	if len(b.stack) == 0 {
		return NoNode
	}
	children := b.nodes[b.stack[len(b.stack)-1]].children
	if len(children) == 0 {
		return NoNode
	}
	return children[len(children)-1]
}

// Tree returns the finished tree. Any nodes still open are closed.
func (b *Builder) Tree() *Tree {
	for len(b.stack) > 0 {
		b.Close()
	}
	return &Tree{Tokens: b.toks, nodes: b.nodes}
}

func (b *Builder) add(n node) NodeID {
	id := NodeID(len(b.nodes))
	n.parent = NoNode
	if len(b.stack) > 0 {
		p := b.stack[len(b.stack)-1]
		n.parent = p
		n.index = int32(len(b.nodes[p].children))
		b.nodes[p].children = append(b.nodes[p].children, id)
	}
	b.nodes = append(b.nodes, n)
	return id
}

// kind returns the kind of an already-added node.
func (b *Builder) kind(id NodeID) Kind {
	return b.nodes[id].kind
}

// token returns the token of an already-added leaf.
func (b *Builder) token(id NodeID) (token.Token, bool) {
	n := b.nodes[id]
	if n.tok < 0 {
		return token.Token{}, false
	}
	return b.toks[n.tok], true
}
