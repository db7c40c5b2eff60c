package vtree

import (
	"fmt"

	"github.com/vk/particlefn/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Tree is an authored node tree.
type Tree struct {
	nodes   []*Node
	byName  map[string]*Node
	sockets []*Socket
	order   []*Node
}

// Node is one node of a tree.
type Node struct {
	tree    *Tree
	index   int
	name    string
	def     *registry.NodeDefinition
	inputs  []*Socket
	outputs []*Socket
}

// Socket is one input or output socket of a node.
type Socket struct {
	node    *Node
	id      int
	index   int
	isInput bool
	name    string
	typ     registry.SocketType
	value   cty.Value

	origin  *Socket
	targets []*Socket
}

// Nodes returns every node in declaration order.
func (t *Tree) Nodes() []*Node {
	return t.nodes
}

// Node returns the node with the given name.
func (t *Tree) Node(name string) (*Node, bool) {
	n, ok := t.byName[name]
	return n, ok
}

// NodesByKind returns the nodes of one kind in declaration order.
func (t *Tree) NodesByKind(kind registry.NodeKind) []*Node {
	var nodes []*Node
	for _, n := range t.nodes {
		if n.def.Kind == kind {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// TopologicalOrder returns the nodes ordered so that every node comes after
// the nodes it reads from.
func (t *Tree) TopologicalOrder() []*Node {
	return t.order
}

// SocketCount returns the number of sockets in the tree. Socket IDs are
// dense in [0, SocketCount).
func (t *Tree) SocketCount() int {
	return len(t.sockets)
}

// Tree returns the tree the node belongs to.
func (n *Node) Tree() *Tree { return n.tree }

// Index returns the declaration position of the node.
func (n *Node) Index() int { return n.index }

// Name returns the display name of the node.
func (n *Node) Name() string { return n.name }

// IDName returns the node kind identifier.
func (n *Node) IDName() string { return n.def.IDName }

// Kind returns how the node takes part in compilation.
func (n *Node) Kind() registry.NodeKind { return n.def.Kind }

// Definition returns the registered definition of the node kind.
func (n *Node) Definition() *registry.NodeDefinition { return n.def }

// Inputs returns the input sockets in declaration order.
func (n *Node) Inputs() []*Socket { return n.inputs }

// Outputs returns the output sockets in declaration order.
func (n *Node) Outputs() []*Socket { return n.outputs }

// Input returns the input socket with the given name.
func (n *Node) Input(name string) (*Socket, bool) {
	return findSocket(n.inputs, name)
}

// Output returns the output socket with the given name.
func (n *Node) Output(name string) (*Socket, bool) {
	return findSocket(n.outputs, name)
}

func findSocket(sockets []*Socket, name string) (*Socket, bool) {
	for _, s := range sockets {
		if s.name == name {
			return s, true
		}
	}
	return nil, false
}

// Node returns the node owning the socket.
func (s *Socket) Node() *Node { return s.node }

// ID returns the tree-wide identifier of the socket.
func (s *Socket) ID() int { return s.id }

// Index returns the position of the socket among its node's inputs or outputs.
func (s *Socket) Index() int { return s.index }

// Name returns the socket name.
func (s *Socket) Name() string { return s.name }

// Type returns the socket data type.
func (s *Socket) Type() registry.SocketType { return s.typ }

// IsInput reports whether this is an input socket.
func (s *Socket) IsInput() bool { return s.isInput }

// IsOutput reports whether this is an output socket.
func (s *Socket) IsOutput() bool { return !s.isInput }

// Value returns the value of an input socket when it is not linked. Output
// and control sockets return cty.NilVal.
func (s *Socket) Value() cty.Value { return s.value }

// Origin returns the output socket linked into this input, or nil.
func (s *Socket) Origin() *Socket { return s.origin }

// Targets returns the input sockets this output is linked to.
func (s *Socket) Targets() []*Socket { return s.targets }

// IsLinked reports whether the socket has at least one link.
func (s *Socket) IsLinked() bool {
	return s.origin != nil || len(s.targets) > 0
}

func (s *Socket) String() string {
	return fmt.Sprintf("%s.%s", s.node.name, s.name)
}
