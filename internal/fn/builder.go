package fn

import (
	"fmt"

	"github.com/vk/particlefn/internal/datagraph"
)

// Builder declares the boundary of a function over a data graph.
type Builder struct {
	graph   *datagraph.Graph
	inputs  []datagraph.Socket
	outputs []datagraph.Socket
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddInputs appends sockets to the positional inputs of the function.
func (b *Builder) AddInputs(graph *datagraph.Graph, sockets []datagraph.Socket) {
	b.useGraph(graph)
	b.inputs = append(b.inputs, sockets...)
}

// AddOutputs appends sockets to the positional outputs of the function.
func (b *Builder) AddOutputs(graph *datagraph.Graph, sockets []datagraph.Socket) {
	b.useGraph(graph)
	b.outputs = append(b.outputs, sockets...)
}

func (b *Builder) useGraph(graph *datagraph.Graph) {
	if b.graph != nil && b.graph != graph {
		panic("fn: sockets of one function must come from a single data graph")
	}
	b.graph = graph
}

// Build validates the declared boundary and returns the function.
func (b *Builder) Build(name string) (*Function, error) {
	fg := &FunctionGraph{
		graph:      b.graph,
		inputs:     b.inputs,
		outputs:    b.outputs,
		inputIndex: make(map[datagraph.Socket]int, len(b.inputs)),
	}
	for i, s := range b.inputs {
		if _, dup := fg.inputIndex[s]; dup {
			return nil, &BuildError{Function: name, Socket: b.graph.Describe(s), Reason: "declared as input twice"}
		}
		fg.inputIndex[s] = i
	}
	if err := fg.validate(name); err != nil {
		return nil, err
	}

	f := &Function{
		name:  name,
		sig:   fg.signature(),
		graph: fg,
	}
	f.tuple = &tupleCallBody{fg: fg}
	return f, nil
}

// FunctionGraph is a data graph restricted to the boundary of one function.
type FunctionGraph struct {
	graph      *datagraph.Graph
	inputs     []datagraph.Socket
	outputs    []datagraph.Socket
	inputIndex map[datagraph.Socket]int
}

func (fg *FunctionGraph) signature() Signature {
	var sig Signature
	for _, s := range fg.inputs {
		sig.Inputs = append(sig.Inputs, fg.graph.Param(s))
	}
	for _, s := range fg.outputs {
		sig.Outputs = append(sig.Outputs, fg.graph.Param(s))
	}
	return sig
}

// validate walks back from every output and fails on anything that cannot be
// computed without more inputs.
func (fg *FunctionGraph) validate(name string) error {
	visited := make(map[int]struct{})

	var visit func(s datagraph.Socket) error
	visit = func(s datagraph.Socket) error {
		if _, ok := fg.inputIndex[s]; ok {
			return nil
		}
		if s.IsInput() {
			return visit(fg.graph.OriginOf(s))
		}
		n := fg.graph.NodeOf(s)
		if _, ok := visited[n]; ok {
			return nil
		}
		fn := fg.graph.Function(n)
		if fn.Placeholder {
			return &BuildError{Function: name, Socket: fg.graph.Describe(s), Reason: "placeholder is not an input of the function"}
		}
		if fn.Call == nil {
			return &BuildError{Function: name, Socket: fg.graph.Describe(s), Reason: fmt.Sprintf("node %q cannot be evaluated", fg.graph.Label(n))}
		}
		visited[n] = struct{}{}
		for _, in := range fg.graph.InputsOf(n) {
			if err := visit(in); err != nil {
				return err
			}
		}
		return nil
	}

	for _, s := range fg.outputs {
		if err := visit(s); err != nil {
			return err
		}
	}
	return nil
}
