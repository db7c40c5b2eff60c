// Package actions provides the action nodes that run when an event fires.
// Every action has a control input that orders it after its event.
package actions

import (
	"github.com/vk/particlefn/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

var execute = registry.SocketDefinition{Name: "Execute", Type: registry.Control}

// Register registers the action node kinds.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode(&registry.NodeDefinition{
		IDName:      "bp_ChangeVelocityNode",
		Description: "Replaces the velocity of the particle.",
		Kind:        registry.ConsumerNode,
		Inputs: []registry.SocketDefinition{
			execute,
			{Name: "Velocity", Type: registry.Vector},
		},
	})
	r.RegisterNode(&registry.NodeDefinition{
		IDName:      "bp_ExplodeParticleNode",
		Description: "Kills the particle and emits new ones in its place.",
		Kind:        registry.ConsumerNode,
		Inputs: []registry.SocketDefinition{
			execute,
			{Name: "Amount", Type: registry.Integer, Default: cty.NumberIntVal(10)},
			{Name: "Speed", Type: registry.Float, Default: cty.NumberIntVal(2)},
		},
	})
	r.RegisterNode(&registry.NodeDefinition{
		IDName:      "bp_KillParticleNode",
		Description: "Kills the particle when the condition holds.",
		Kind:        registry.ConsumerNode,
		Inputs: []registry.SocketDefinition{
			execute,
			{Name: "Condition", Type: registry.Boolean, Default: cty.True},
		},
	})
}
