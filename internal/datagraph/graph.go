package datagraph

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Socket is a handle to an input or output socket of a Graph.
type Socket struct {
	output bool
	id     int
}

// IsInput reports whether the handle refers to an input socket.
func (s Socket) IsInput() bool { return !s.output }

// IsOutput reports whether the handle refers to an output socket.
func (s Socket) IsOutput() bool { return s.output }

// ID returns the index of the socket among all inputs or all outputs.
func (s Socket) ID() int { return s.id }

func (s Socket) String() string {
	if s.output {
		return fmt.Sprintf("out#%d", s.id)
	}
	return fmt.Sprintf("in#%d", s.id)
}

// Param describes one input or output of a Function.
type Param struct {
	Name string
	Type cty.Type
}

// Function is the unit of work attached to a graph node.
type Function struct {
	Name    string
	Inputs  []Param
	Outputs []Param
	// Call computes the outputs from the inputs, both in declaration order.
	// It is nil for placeholder and sink nodes.
	Call func(args []cty.Value) ([]cty.Value, error)
	// Placeholder marks functions whose outputs only exist once a concrete
	// particle is being evaluated.
	Placeholder bool
}

// Graph is an immutable graph of functions.
type Graph struct {
	nodes   []node
	inputs  []inputSocket
	outputs []outputSocket
}

type node struct {
	fn      *Function
	label   string
	inputs  []int
	outputs []int
}

type inputSocket struct {
	node   int
	index  int
	origin int
}

type outputSocket struct {
	node    int
	index   int
	targets []int
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Function returns the function of a node.
func (g *Graph) Function(node int) *Function {
	return g.nodes[node].fn
}

// Label returns the diagnostic label of a node.
func (g *Graph) Label(node int) string {
	return g.nodes[node].label
}

// IsPlaceholder reports whether the node is a placeholder.
func (g *Graph) IsPlaceholder(node int) bool {
	return g.nodes[node].fn.Placeholder
}

// NodeOf returns the node owning a socket.
func (g *Graph) NodeOf(s Socket) int {
	if s.output {
		return g.outputs[s.id].node
	}
	return g.inputs[s.id].node
}

// IndexOf returns the position of a socket among its node's inputs or outputs.
func (g *Graph) IndexOf(s Socket) int {
	if s.output {
		return g.outputs[s.id].index
	}
	return g.inputs[s.id].index
}

// InputsOf returns the input sockets of a node in order.
func (g *Graph) InputsOf(node int) []Socket {
	ids := g.nodes[node].inputs
	sockets := make([]Socket, len(ids))
	for i, id := range ids {
		sockets[i] = Socket{id: id}
	}
	return sockets
}

// OutputsOf returns the output sockets of a node in order.
func (g *Graph) OutputsOf(node int) []Socket {
	ids := g.nodes[node].outputs
	sockets := make([]Socket, len(ids))
	for i, id := range ids {
		sockets[i] = Socket{output: true, id: id}
	}
	return sockets
}

// OriginOf returns the output socket an input socket reads from.
func (g *Graph) OriginOf(s Socket) Socket {
	if s.output {
		panic(fmt.Sprintf("datagraph: OriginOf called with output socket %s", s))
	}
	return Socket{output: true, id: g.inputs[s.id].origin}
}

// TargetsOf returns the input sockets an output socket feeds.
func (g *Graph) TargetsOf(s Socket) []Socket {
	if !s.output {
		panic(fmt.Sprintf("datagraph: TargetsOf called with input socket %s", s))
	}
	ids := g.outputs[s.id].targets
	sockets := make([]Socket, len(ids))
	for i, id := range ids {
		sockets[i] = Socket{id: id}
	}
	return sockets
}

// Param returns the name and type of a socket.
func (g *Graph) Param(s Socket) Param {
	fn := g.nodes[g.NodeOf(s)].fn
	if s.output {
		return fn.Outputs[g.outputs[s.id].index]
	}
	return fn.Inputs[g.inputs[s.id].index]
}

// TypeOf returns the value type of a socket.
func (g *Graph) TypeOf(s Socket) cty.Type {
	return g.Param(s).Type
}

// Describe returns a human-readable name for a socket, for diagnostics.
func (g *Graph) Describe(s Socket) string {
	return fmt.Sprintf("%s.%s", g.nodes[g.NodeOf(s)].label, g.Param(s).Name)
}
