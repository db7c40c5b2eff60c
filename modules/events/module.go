// Package events provides event nodes. An event exposes a control output that
// action nodes hang off; its own data inputs are compiled like any consumer's.
package events

import (
	"github.com/vk/particlefn/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

var onEvent = registry.OutputDefinition{
	SocketDefinition: registry.SocketDefinition{Name: "Event", Type: registry.Control},
}

// Register registers the event node kinds.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode(&registry.NodeDefinition{
		IDName:      "bp_AgeReachedEventNode",
		Description: "Fires once when the particle becomes older than Age.",
		Kind:        registry.ConsumerNode,
		Inputs: []registry.SocketDefinition{
			{Name: "Age", Type: registry.Float, Default: cty.NumberIntVal(3)},
		},
		Outputs: []registry.OutputDefinition{onEvent},
	})
	r.RegisterNode(&registry.NodeDefinition{
		IDName:      "bp_MeshCollisionEventNode",
		Description: "Fires when the particle hits a collider.",
		Kind:        registry.ConsumerNode,
		Outputs:     []registry.OutputDefinition{onEvent},
	})
}
