// Package collisioninfo provides the node that exposes data of the collision
// event an action runs in.
package collisioninfo

import "github.com/vk/particlefn/internal/registry"

// IDName identifies the collision info node kind.
const IDName = "bp_CollisionInfoNode"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the node kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode(&registry.NodeDefinition{
		IDName:      IDName,
		Description: "Surface normal of the collision that triggered the action.",
		Kind:        registry.PlaceholderNode,
		Outputs: []registry.OutputDefinition{
			{SocketDefinition: registry.SocketDefinition{Name: "Normal", Type: registry.Vector}},
		},
	})
}
