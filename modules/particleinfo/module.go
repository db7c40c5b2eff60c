// Package particleinfo provides the node that exposes the state of the
// particle being evaluated.
package particleinfo

import "github.com/vk/particlefn/internal/registry"

const (
	// IDName identifies the particle info node kind.
	IDName = "bp_ParticleInfoNode"
	// AgeSocket is the one output that is computed instead of read from an
	// attribute.
	AgeSocket = "Age"
	// BirthTimeAttribute is the attribute the age is derived from.
	BirthTimeAttribute = "Birth Time"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the node kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterNode(&registry.NodeDefinition{
		IDName:      IDName,
		Description: "Attributes of the particle being evaluated.",
		Kind:        registry.PlaceholderNode,
		Outputs: []registry.OutputDefinition{
			{SocketDefinition: registry.SocketDefinition{Name: "ID", Type: registry.Integer}},
			{SocketDefinition: registry.SocketDefinition{Name: "Position", Type: registry.Vector}},
			{SocketDefinition: registry.SocketDefinition{Name: "Velocity", Type: registry.Vector}},
			{SocketDefinition: registry.SocketDefinition{Name: "Size", Type: registry.Float}},
			{SocketDefinition: registry.SocketDefinition{Name: AgeSocket, Type: registry.Float}},
		},
	})
}
