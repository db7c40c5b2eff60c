package fn

import (
	"fmt"

	"github.com/vk/particlefn/internal/datagraph"
	"github.com/zclconf/go-cty/cty"
)

// tupleCallBody interprets the function graph directly, computing every
// node on demand and caching its outputs for the rest of the call.
type tupleCallBody struct {
	fg *FunctionGraph
}

func (b *tupleCallBody) call(args []cty.Value) ([]cty.Value, error) {
	ev := &evaluator{fg: b.fg, args: args, cache: make(map[int][]cty.Value)}
	out := make([]cty.Value, len(b.fg.outputs))
	for i, s := range b.fg.outputs {
		v, err := ev.value(s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

type evaluator struct {
	fg    *FunctionGraph
	args  []cty.Value
	cache map[int][]cty.Value
}

func (e *evaluator) value(s datagraph.Socket) (cty.Value, error) {
	if i, ok := e.fg.inputIndex[s]; ok {
		return e.args[i], nil
	}
	g := e.fg.graph
	if s.IsInput() {
		return e.value(g.OriginOf(s))
	}
	outs, err := e.node(g.NodeOf(s))
	if err != nil {
		return cty.NilVal, err
	}
	return outs[g.IndexOf(s)], nil
}

func (e *evaluator) node(n int) ([]cty.Value, error) {
	if outs, ok := e.cache[n]; ok {
		return outs, nil
	}
	g := e.fg.graph
	inputs := g.InputsOf(n)
	args := make([]cty.Value, len(inputs))
	for i, in := range inputs {
		v, err := e.value(in)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	outs, err := invoke(g, n, args)
	if err != nil {
		return nil, err
	}
	e.cache[n] = outs
	return outs, nil
}

func invoke(g *datagraph.Graph, n int, args []cty.Value) ([]cty.Value, error) {
	fn := g.Function(n)
	outs, err := fn.Call(args)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", g.Label(n), err)
	}
	if len(outs) != len(fn.Outputs) {
		return nil, fmt.Errorf("node %q returned %d values, declares %d outputs", g.Label(n), len(outs), len(fn.Outputs))
	}
	return outs, nil
}
