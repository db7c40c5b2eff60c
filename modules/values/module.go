// Package values provides nodes that hold a single constant value.
package values

import (
	"github.com/vk/particlefn/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

func passthrough(t registry.SocketType) *function.Function {
	f := function.New(&function.Spec{
		Description: "Returns its argument.",
		Params:      []function.Parameter{{Name: "value", Type: t.CtyType()}},
		Type:        function.StaticReturnType(t.CtyType()),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return args[0], nil
		},
	})
	return &f
}

// Register registers the value node kinds.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode(&registry.NodeDefinition{
		IDName: "fn_FloatValueNode",
		Kind:   registry.FunctionNode,
		Inputs: []registry.SocketDefinition{{Name: "Value", Type: registry.Float}},
		Outputs: []registry.OutputDefinition{
			{SocketDefinition: registry.SocketDefinition{Name: "Value", Type: registry.Float}, Function: passthrough(registry.Float)},
		},
	})
	r.RegisterNode(&registry.NodeDefinition{
		IDName: "fn_VectorValueNode",
		Kind:   registry.FunctionNode,
		Inputs: []registry.SocketDefinition{{Name: "Value", Type: registry.Vector}},
		Outputs: []registry.OutputDefinition{
			{SocketDefinition: registry.SocketDefinition{Name: "Value", Type: registry.Vector}, Function: passthrough(registry.Vector)},
		},
	})
	// Integers share the number type with floats; the output truncates.
	r.RegisterNode(&registry.NodeDefinition{
		IDName: "fn_IntegerValueNode",
		Kind:   registry.FunctionNode,
		Inputs: []registry.SocketDefinition{{Name: "Value", Type: registry.Integer}},
		Outputs: []registry.OutputDefinition{
			{SocketDefinition: registry.SocketDefinition{Name: "Value", Type: registry.Integer}, Function: &stdlib.IntFunc},
		},
	})
}
