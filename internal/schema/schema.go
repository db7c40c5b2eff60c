// Package schema holds the gohcl decoding targets for node tree files.
package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// --- Top-level Block Headers ---

// Root lists the block types a tree file may contain.
var Root = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "node", LabelNames: []string{"id_name", "name"}},
		{Type: "link"},
		{Type: "batch", LabelNames: []string{"name"}},
	},
}

// --- Node Tree Structures ---

// NodeInputs is the `inputs` block of a node. Every attribute sets the
// value of the unlinked input socket with the same name.
type NodeInputs struct {
	Body hcl.Body `hcl:",remain"`
}

// Node is the body of a `node "<id_name>" "<name>"` block.
type Node struct {
	Inputs *NodeInputs `hcl:"inputs,block"`
}

// Link is the body of a `link` block. Both ends are [node, socket] pairs.
type Link struct {
	From hcl.Expression `hcl:"from"`
	To   hcl.Expression `hcl:"to"`
}

// --- Evaluation Batches ---

// Attribute is an `attribute "<name>"` block inside a batch.
type Attribute struct {
	Name      string         `hcl:"name,label"`
	Type      hcl.Expression `hcl:"type"`
	Values    cty.Value      `hcl:"values"`
	Broadcast bool           `hcl:"broadcast,optional"`
}

// Batch is the body of a `batch "<name>"` block describing particles to
// evaluate the tree against.
type Batch struct {
	Size               int          `hcl:"size"`
	Active             []int        `hcl:"active,optional"`
	CurrentTimes       []float64    `hcl:"current_times,optional"`
	RemainingDurations []float64    `hcl:"remaining_durations,optional"`
	EndTime            *float64     `hcl:"end_time,optional"`
	CollisionNormals   [][]float64  `hcl:"collision_normals,optional"`
	Attributes         []*Attribute `hcl:"attribute,block"`
}
