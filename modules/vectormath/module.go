// Package vectormath provides nodes that build, split and combine vectors.
package vectormath

import (
	"math"

	"github.com/vk/particlefn/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

func vectorParam(name string) function.Parameter {
	return function.Parameter{Name: name, Type: registry.VectorType}
}

func floatParam(name string) function.Parameter {
	return function.Parameter{Name: name, Type: cty.Number}
}

var combineFunc = function.New(&function.Spec{
	Description: "Builds a vector from its components.",
	Params:      []function.Parameter{floatParam("x"), floatParam("y"), floatParam("z")},
	Type:        function.StaticReturnType(registry.VectorType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return cty.TupleVal(args), nil
	},
})

func componentFunc(i int) *function.Function {
	f := function.New(&function.Spec{
		Description: "Returns one component of a vector.",
		Params:      []function.Parameter{vectorParam("vector")},
		Type:        function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return args[0].Index(cty.NumberIntVal(int64(i))), nil
		},
	})
	return &f
}

var addFunc = function.New(&function.Spec{
	Description: "Adds two vectors component-wise.",
	Params:      []function.Parameter{vectorParam("a"), vectorParam("b")},
	Type:        function.StaticReturnType(registry.VectorType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		a, b := registry.VectorComponents(args[0]), registry.VectorComponents(args[1])
		return registry.VectorVal(a[0]+b[0], a[1]+b[1], a[2]+b[2]), nil
	},
})

var scaleFunc = function.New(&function.Spec{
	Description: "Multiplies every component of a vector by a factor.",
	Params:      []function.Parameter{vectorParam("vector"), floatParam("scale")},
	Type:        function.StaticReturnType(registry.VectorType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		v, s := registry.VectorComponents(args[0]), registry.FloatValue(args[1])
		return registry.VectorVal(v[0]*s, v[1]*s, v[2]*s), nil
	},
})

var lengthFunc = function.New(&function.Spec{
	Description: "Euclidean length of a vector.",
	Params:      []function.Parameter{vectorParam("vector")},
	Type:        function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		v := registry.VectorComponents(args[0])
		return cty.NumberFloatVal(math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])), nil
	},
})

var distanceFunc = function.New(&function.Spec{
	Description: "Euclidean distance between two points.",
	Params:      []function.Parameter{vectorParam("a"), vectorParam("b")},
	Type:        function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		a, b := registry.VectorComponents(args[0]), registry.VectorComponents(args[1])
		dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
		return cty.NumberFloatVal(math.Sqrt(dx*dx + dy*dy + dz*dz)), nil
	},
})

func output(name string, t registry.SocketType, f *function.Function) registry.OutputDefinition {
	return registry.OutputDefinition{
		SocketDefinition: registry.SocketDefinition{Name: name, Type: t},
		Function:         f,
	}
}

// Register registers the vector node kinds.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode(&registry.NodeDefinition{
		IDName: "fn_CombineVectorNode",
		Kind:   registry.FunctionNode,
		Inputs: []registry.SocketDefinition{
			{Name: "X", Type: registry.Float},
			{Name: "Y", Type: registry.Float},
			{Name: "Z", Type: registry.Float},
		},
		Outputs: []registry.OutputDefinition{output("Vector", registry.Vector, &combineFunc)},
	})
	r.RegisterNode(&registry.NodeDefinition{
		IDName: "fn_SeparateVectorNode",
		Kind:   registry.FunctionNode,
		Inputs: []registry.SocketDefinition{{Name: "Vector", Type: registry.Vector}},
		Outputs: []registry.OutputDefinition{
			output("X", registry.Float, componentFunc(0)),
			output("Y", registry.Float, componentFunc(1)),
			output("Z", registry.Float, componentFunc(2)),
		},
	})
	r.RegisterNode(&registry.NodeDefinition{
		IDName: "fn_AddVectorsNode",
		Kind:   registry.FunctionNode,
		Inputs: []registry.SocketDefinition{
			{Name: "A", Type: registry.Vector},
			{Name: "B", Type: registry.Vector},
		},
		Outputs: []registry.OutputDefinition{output("Result", registry.Vector, &addFunc)},
	})
	r.RegisterNode(&registry.NodeDefinition{
		IDName: "fn_ScaleVectorNode",
		Kind:   registry.FunctionNode,
		Inputs: []registry.SocketDefinition{
			{Name: "Vector", Type: registry.Vector},
			{Name: "Scale", Type: registry.Float, Default: cty.NumberIntVal(1)},
		},
		Outputs: []registry.OutputDefinition{output("Result", registry.Vector, &scaleFunc)},
	})
	r.RegisterNode(&registry.NodeDefinition{
		IDName:  "fn_VectorLengthNode",
		Kind:    registry.FunctionNode,
		Inputs:  []registry.SocketDefinition{{Name: "Vector", Type: registry.Vector}},
		Outputs: []registry.OutputDefinition{output("Length", registry.Float, &lengthFunc)},
	})
	r.RegisterNode(&registry.NodeDefinition{
		IDName: "fn_VectorDistanceNode",
		Kind:   registry.FunctionNode,
		Inputs: []registry.SocketDefinition{
			{Name: "A", Type: registry.Vector},
			{Name: "B", Type: registry.Vector},
		},
		Outputs: []registry.OutputDefinition{output("Distance", registry.Float, &distanceFunc)},
	})
}
