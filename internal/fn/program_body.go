package fn

import (
	"github.com/vk/particlefn/internal/datagraph"
	"github.com/zclconf/go-cty/cty"
)

// programBody is the function graph flattened into instructions over a slot
// array. Slots [0, len(inputs)) hold the arguments; every node output that
// the function needs owns one further slot.
type programBody struct {
	slots        int
	inputCount   int
	instructions []instruction
	outputSlots  []int
}

type instruction struct {
	node     int
	argSlots []int
	outSlots []int
}

func compileProgram(fg *FunctionGraph) *programBody {
	p := &programBody{inputCount: len(fg.inputs), slots: len(fg.inputs)}
	emitted := make(map[int][]int)
	g := fg.graph

	var resolve func(s datagraph.Socket) int
	resolve = func(s datagraph.Socket) int {
		if i, ok := fg.inputIndex[s]; ok {
			return i
		}
		if s.IsInput() {
			return resolve(g.OriginOf(s))
		}
		n := g.NodeOf(s)
		outSlots, ok := emitted[n]
		if !ok {
			inputs := g.InputsOf(n)
			argSlots := make([]int, len(inputs))
			for i, in := range inputs {
				argSlots[i] = resolve(in)
			}
			outSlots = make([]int, len(g.OutputsOf(n)))
			for i := range outSlots {
				outSlots[i] = p.slots
				p.slots++
			}
			emitted[n] = outSlots
			p.instructions = append(p.instructions, instruction{node: n, argSlots: argSlots, outSlots: outSlots})
		}
		return outSlots[g.IndexOf(s)]
	}

	for _, s := range fg.outputs {
		p.outputSlots = append(p.outputSlots, resolve(s))
	}
	return p
}

func (p *programBody) call(g *datagraph.Graph, args []cty.Value) ([]cty.Value, error) {
	slots := make([]cty.Value, p.slots)
	copy(slots, args)
	for _, ins := range p.instructions {
		nodeArgs := make([]cty.Value, len(ins.argSlots))
		for i, slot := range ins.argSlots {
			nodeArgs[i] = slots[slot]
		}
		outs, err := invoke(g, ins.node, nodeArgs)
		if err != nil {
			return nil, err
		}
		for i, slot := range ins.outSlots {
			slots[slot] = outs[i]
		}
	}
	out := make([]cty.Value, len(p.outputSlots))
	for i, slot := range p.outputSlots {
		out[i] = slots[slot]
	}
	return out, nil
}
