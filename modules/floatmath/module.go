// Package floatmath provides binary math nodes on floats, backed by the cty
// standard library.
package floatmath

import (
	"github.com/vk/particlefn/internal/registry"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

var operations = []struct {
	idname string
	desc   string
	fn     *function.Function
}{
	{"fn_AddFloatsNode", "A + B", &stdlib.AddFunc},
	{"fn_SubtractFloatsNode", "A - B", &stdlib.SubtractFunc},
	{"fn_MultiplyFloatsNode", "A * B", &stdlib.MultiplyFunc},
	{"fn_DivideFloatsNode", "A / B", &stdlib.DivideFunc},
	{"fn_MinFloatsNode", "min(A, B)", &stdlib.MinFunc},
	{"fn_MaxFloatsNode", "max(A, B)", &stdlib.MaxFunc},
	{"fn_PowerFloatsNode", "A ^ B", &stdlib.PowFunc},
}

// Register registers every float math node kind.
func (m *Module) Register(r *registry.Registry) {
	for _, op := range operations {
		r.RegisterNode(&registry.NodeDefinition{
			IDName:      op.idname,
			Description: op.desc,
			Kind:        registry.FunctionNode,
			Inputs: []registry.SocketDefinition{
				{Name: "A", Type: registry.Float},
				{Name: "B", Type: registry.Float},
			},
			Outputs: []registry.OutputDefinition{
				{SocketDefinition: registry.SocketDefinition{Name: "Result", Type: registry.Float}, Function: op.fn},
			},
		})
	}
}
