package datagraph

import (
	"fmt"
	"strings"
)

// NodeRef is returned by Builder.Insert and exposes the sockets of the new node.
type NodeRef struct {
	Index   int
	Inputs  []Socket
	Outputs []Socket
}

// Builder assembles a Graph. A Builder must not be used after Build.
type Builder struct {
	g *Graph
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{g: &Graph{}}
}

// Insert adds a node running fn. The label is used in diagnostics only.
func (b *Builder) Insert(fn *Function, label string) NodeRef {
	g := b.g
	ref := NodeRef{Index: len(g.nodes)}
	n := node{fn: fn, label: label}
	for i := range fn.Inputs {
		id := len(g.inputs)
		g.inputs = append(g.inputs, inputSocket{node: ref.Index, index: i, origin: -1})
		n.inputs = append(n.inputs, id)
		ref.Inputs = append(ref.Inputs, Socket{id: id})
	}
	for i := range fn.Outputs {
		id := len(g.outputs)
		g.outputs = append(g.outputs, outputSocket{node: ref.Index, index: i})
		n.outputs = append(n.outputs, id)
		ref.Outputs = append(ref.Outputs, Socket{output: true, id: id})
	}
	g.nodes = append(g.nodes, n)
	return ref
}

// Link connects an output socket to an input socket of the same type.
func (b *Builder) Link(from, to Socket) error {
	g := b.g
	if !from.output || to.output {
		return fmt.Errorf("link must go from an output to an input, got %s -> %s", from, to)
	}
	if g.inputs[to.id].origin >= 0 {
		return fmt.Errorf("input %s is already linked", g.Describe(to))
	}
	if ft, tt := g.TypeOf(from), g.TypeOf(to); !ft.Equals(tt) {
		return fmt.Errorf("cannot link %s (%s) to %s (%s)", g.Describe(from), ft.FriendlyName(), g.Describe(to), tt.FriendlyName())
	}
	g.inputs[to.id].origin = from.id
	g.outputs[from.id].targets = append(g.outputs[from.id].targets, to.id)
	return nil
}

// Build validates that every input socket is linked and returns the graph.
func (b *Builder) Build() (*Graph, error) {
	var unlinked []string
	for id, in := range b.g.inputs {
		if in.origin < 0 {
			unlinked = append(unlinked, b.g.Describe(Socket{id: id}))
		}
	}
	if len(unlinked) > 0 {
		return nil, fmt.Errorf("data graph has unlinked inputs: %s", strings.Join(unlinked, ", "))
	}
	g := b.g
	b.g = nil
	return g, nil
}
