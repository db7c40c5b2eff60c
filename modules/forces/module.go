// Package forces provides force nodes. Their inputs are compiled into
// particle functions and evaluated every step.
package forces

import (
	"github.com/vk/particlefn/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the force node kinds.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode(&registry.NodeDefinition{
		IDName:      "bp_GravityForceNode",
		Description: "Constant acceleration along a direction.",
		Kind:        registry.ConsumerNode,
		Inputs: []registry.SocketDefinition{
			{Name: "Direction", Type: registry.Vector, Default: registry.VectorVal(0, 0, -1)},
			{Name: "Strength", Type: registry.Float, Default: cty.NumberFloatVal(9.81)},
		},
	})
	r.RegisterNode(&registry.NodeDefinition{
		IDName:      "bp_TurbulenceForceNode",
		Description: "Noise based force field.",
		Kind:        registry.ConsumerNode,
		Inputs: []registry.SocketDefinition{
			{Name: "Strength", Type: registry.Vector, Default: registry.VectorVal(1, 1, 1)},
			{Name: "Size", Type: registry.Float, Default: cty.NumberFloatVal(0.5)},
		},
	})
	r.RegisterNode(&registry.NodeDefinition{
		IDName:      "bp_DragForceNode",
		Description: "Force against the direction of motion.",
		Kind:        registry.ConsumerNode,
		Inputs: []registry.SocketDefinition{
			{Name: "Strength", Type: registry.Float, Default: cty.NumberIntVal(1)},
		},
	})
}
