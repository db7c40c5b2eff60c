package fn

import (
	"fmt"

	"github.com/vk/particlefn/internal/datagraph"
	"github.com/zclconf/go-cty/cty"
)

// Signature lists the positional inputs and outputs of a function.
type Signature struct {
	Inputs  []datagraph.Param
	Outputs []datagraph.Param
}

// Function is a built, invocable function.
type Function struct {
	name    string
	sig     Signature
	graph   *FunctionGraph
	tuple   *tupleCallBody
	program *programBody
}

// Name returns the name the function was built with.
func (f *Function) Name() string {
	return f.name
}

// Signature returns the inputs and outputs of the function.
func (f *Function) Signature() Signature {
	return f.sig
}

// HasProgramBody reports whether AttachProgramBody ran on the function.
func (f *Function) HasProgramBody() bool {
	return f.program != nil
}

// Call evaluates the function. args are matched to the declared inputs by
// position and the outputs are returned in declared order. Call does not
// retain args.
func (f *Function) Call(args []cty.Value) ([]cty.Value, error) {
	if len(args) != len(f.sig.Inputs) {
		return nil, fmt.Errorf("function %q takes %d arguments, got %d", f.name, len(f.sig.Inputs), len(args))
	}
	for i, arg := range args {
		if want := f.sig.Inputs[i].Type; !arg.Type().Equals(want) {
			return nil, fmt.Errorf("function %q: argument %d (%s) must be %s, got %s", f.name, i, f.sig.Inputs[i].Name, want.FriendlyName(), arg.Type().FriendlyName())
		}
	}

	var (
		out []cty.Value
		err error
	)
	if f.program != nil {
		out, err = f.program.call(f.graph.graph, args)
	} else {
		out, err = f.tuple.call(args)
	}
	if err != nil {
		return nil, fmt.Errorf("function %q: %w", f.name, err)
	}
	return out, nil
}

// AttachProgramBody compiles the function graph into a linear program that
// Call uses from then on. It must run before the function is shared between
// goroutines.
func AttachProgramBody(f *Function) {
	if f.program == nil {
		f.program = compileProgram(f.graph)
	}
}
