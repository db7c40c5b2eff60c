package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a node tree and the
// sample batches it can be evaluated against.
type Model struct {
	Nodes   []*Node
	Links   []*Link
	Batches []*Batch
}

// Node is the format-agnostic representation of a `node` block.
type Node struct {
	IDName string
	Name   string
	// Inputs holds the values given to unlinked input sockets, keyed by
	// socket name.
	Inputs map[string]hcl.Expression
	Range  hcl.Range
}

// Link connects an output socket to an input socket.
type Link struct {
	FromNode   string
	FromSocket string
	ToNode     string
	ToSocket   string
	Range      hcl.Range
}

// Batch describes a sample particle batch.
type Batch struct {
	Name string
	Size int
	// Active lists the active particle indices. Nil means every slot.
	Active []int

	// Exactly one time representation is set: CurrentTimes, or
	// RemainingDurations together with EndTime.
	CurrentTimes       []float32
	RemainingDurations []float32
	EndTime            *float32

	// CollisionNormals, when set, evaluates the batch inside a collision event.
	CollisionNormals [][3]float32

	Attributes []*Attribute
}

// Attribute is one attribute column of a sample batch.
type Attribute struct {
	Name      string
	Type      string
	Values    cty.Value
	Broadcast bool
}

// Batch returns the batch with the given name.
func (m *Model) Batch(name string) (*Batch, bool) {
	for _, b := range m.Batches {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}
