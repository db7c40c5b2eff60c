package particles

import (
	"fmt"
	"slices"
)

// ParticleSet is a view of a batch: the attribute storage plus the indices of
// the particles that are active in it. The indices are not necessarily
// contiguous.
type ParticleSet struct {
	attributes *AttributeArrays
	pindices   []int
}

// NewParticleSet creates a set over the given active indices. Indices outside
// the attribute storage panic.
func NewParticleSet(attributes *AttributeArrays, pindices []int) *ParticleSet {
	for _, p := range pindices {
		if p < 0 || p >= attributes.Size() {
			panic(fmt.Sprintf("particles: index %d outside batch of size %d", p, attributes.Size()))
		}
	}
	return &ParticleSet{attributes: attributes, pindices: slices.Clone(pindices)}
}

// NewFullParticleSet creates a set over every slot of the storage.
func NewFullParticleSet(attributes *AttributeArrays) *ParticleSet {
	pindices := make([]int, attributes.Size())
	for i := range pindices {
		pindices[i] = i
	}
	return &ParticleSet{attributes: attributes, pindices: pindices}
}

// Attributes returns the attribute storage of the batch.
func (s *ParticleSet) Attributes() *AttributeArrays {
	return s.attributes
}

// PIndices returns the active particle indices in iteration order.
func (s *ParticleSet) PIndices() []int {
	return s.pindices
}

// Len returns the number of active particles.
func (s *ParticleSet) Len() int {
	return len(s.pindices)
}
