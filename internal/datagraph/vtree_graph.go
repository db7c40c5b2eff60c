package datagraph

import (
	"context"
	"fmt"

	"github.com/vk/particlefn/internal/ctxlog"
	"github.com/vk/particlefn/internal/registry"
	"github.com/vk/particlefn/internal/vtree"
	"github.com/zclconf/go-cty/cty"
)

// VTreeGraph is the data graph of a node tree together with the mapping from
// tree sockets to data graph sockets.
type VTreeGraph struct {
	graph   *Graph
	sockets map[*vtree.Socket]Socket
	sources map[Socket]*vtree.Socket
}

// Graph returns the underlying data graph.
func (vg *VTreeGraph) Graph() *Graph {
	return vg.graph
}

// LookupSocket returns the data graph socket of a tree socket. Control
// sockets, and consumer inputs whose link could not be typed, have none.
func (vg *VTreeGraph) LookupSocket(vs *vtree.Socket) (Socket, bool) {
	s, ok := vg.sockets[vs]
	return s, ok
}

// PlaceholderSource returns the tree output socket a placeholder output
// stands for.
func (vg *VTreeGraph) PlaceholderSource(s Socket) (*vtree.Socket, bool) {
	vs, ok := vg.sources[s]
	return vs, ok
}

// Dependencies is the ordered, duplicate-free result of a placeholder search.
// Every socket is a placeholder output; PlaceholderSource maps it back to
// the tree.
type Dependencies struct {
	Sockets []Socket
}

// Len returns the number of placeholder dependencies.
func (d Dependencies) Len() int {
	return len(d.Sockets)
}

// FindPlaceholderDependencies walks backwards from socket and returns every
// placeholder output it transitively reads. The walk visits node inputs in
// order, so the result is deterministic for a given graph.
func (vg *VTreeGraph) FindPlaceholderDependencies(socket Socket) Dependencies {
	var deps Dependencies
	found := make(map[Socket]struct{})
	visited := make(map[int]struct{})

	var visit func(s Socket)
	visit = func(s Socket) {
		if s.IsInput() {
			visit(vg.graph.OriginOf(s))
			return
		}
		n := vg.graph.NodeOf(s)
		if vg.graph.IsPlaceholder(n) {
			if _, ok := found[s]; !ok {
				found[s] = struct{}{}
				deps.Sockets = append(deps.Sockets, s)
			}
			return
		}
		if _, ok := visited[n]; ok {
			return
		}
		visited[n] = struct{}{}
		for _, in := range vg.graph.InputsOf(n) {
			visit(in)
		}
	}
	visit(socket)
	return deps
}

// FromTree builds the data graph of a tree. Function nodes call the cty
// functions of their definition, placeholder nodes become placeholders, and
// consumer nodes become sinks whose inputs can be computed. Unlinked inputs
// read a constant holding the socket value.
func FromTree(ctx context.Context, tree *vtree.Tree) (*VTreeGraph, error) {
	logger := ctxlog.FromContext(ctx)
	b := NewBuilder()
	vg := &VTreeGraph{
		sockets: make(map[*vtree.Socket]Socket),
		sources: make(map[Socket]*vtree.Socket),
	}

	for _, vnode := range tree.Nodes() {
		inputs := dataSockets(vnode.Inputs())
		outputs := dataSockets(vnode.Outputs())
		fn := &Function{
			Name:    vnode.IDName(),
			Inputs:  params(inputs),
			Outputs: params(outputs),
		}
		switch vnode.Kind() {
		case registry.FunctionNode:
			fn.Call = nodeCall(vnode.Definition(), outputs)
		case registry.PlaceholderNode:
			fn.Placeholder = true
		case registry.ConsumerNode:
		default:
			return nil, fmt.Errorf("node %q has unsupported kind %s", vnode.Name(), vnode.Kind())
		}

		ref := b.Insert(fn, vnode.Name())
		for i, vs := range inputs {
			vg.sockets[vs] = ref.Inputs[i]
		}
		for i, vs := range outputs {
			vg.sockets[vs] = ref.Outputs[i]
			if fn.Placeholder {
				vg.sources[ref.Outputs[i]] = vs
			}
		}
	}

	for _, vnode := range tree.Nodes() {
		for _, vs := range dataSockets(vnode.Inputs()) {
			target := vg.sockets[vs]
			origin := vs.Origin()
			if origin != nil && origin.Type().CtyType().Equals(vs.Type().CtyType()) {
				if err := b.Link(vg.sockets[origin], target); err != nil {
					return nil, err
				}
				continue
			}
			if origin != nil {
				logger.Warn("Ignoring link between incompatible sockets.", "from", origin.String(), "to", vs.String(), "from_type", origin.Type().String(), "to_type", vs.Type().String())
				if vnode.Kind() == registry.ConsumerNode {
					delete(vg.sockets, vs)
				}
			}
			value := b.Insert(constant(vs.Value()), vs.String())
			if err := b.Link(value.Outputs[0], target); err != nil {
				return nil, err
			}
		}
	}

	graph, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build data graph: %w", err)
	}
	vg.graph = graph
	logger.Debug("Data graph built.", "nodes", graph.NodeCount(), "mapped_sockets", len(vg.sockets))
	return vg, nil
}

func dataSockets(sockets []*vtree.Socket) []*vtree.Socket {
	var data []*vtree.Socket
	for _, s := range sockets {
		if s.Type().IsData() {
			data = append(data, s)
		}
	}
	return data
}

func params(sockets []*vtree.Socket) []Param {
	ps := make([]Param, len(sockets))
	for i, s := range sockets {
		ps[i] = Param{Name: s.Name(), Type: s.Type().CtyType()}
	}
	return ps
}

// nodeCall evaluates every output function of a definition on the same
// arguments.
func nodeCall(def *registry.NodeDefinition, outputs []*vtree.Socket) func([]cty.Value) ([]cty.Value, error) {
	fns := make([]registry.OutputDefinition, len(outputs))
	for i, vs := range outputs {
		fns[i], _ = def.Output(vs.Name())
	}
	return func(args []cty.Value) ([]cty.Value, error) {
		results := make([]cty.Value, len(fns))
		for i, out := range fns {
			v, err := out.Function.Call(args)
			if err != nil {
				return nil, fmt.Errorf("%s: output %q: %w", def.IDName, out.Name, err)
			}
			results[i] = v
		}
		return results, nil
	}
}

func constant(v cty.Value) *Function {
	return &Function{
		Name:    "value",
		Outputs: []Param{{Name: "Value", Type: v.Type()}},
		Call: func([]cty.Value) ([]cty.Value, error) {
			return []cty.Value{v}, nil
		},
	}
}
