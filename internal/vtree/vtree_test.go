package vtree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/particlefn/internal/registry"
	"github.com/vk/particlefn/internal/testutil"
	"github.com/zclconf/go-cty/cty"
)

func TestBuild(t *testing.T) {
	f := testutil.LoadTree(t, `
		node "bp_GravityForceNode" "Gravity" {}

		node "fn_CombineVectorNode" "Up" {
			inputs {
				Z = 2
			}
		}

		node "bp_ParticleInfoNode" "Particle Info" {}

		link {
			from = ["Up", "Vector"]
			to   = ["Gravity", "Direction"]
		}
		link {
			from = ["Particle Info", "Size"]
			to   = ["Up", "X"]
		}
	`)
	tree := f.Tree

	require.Len(t, tree.Nodes(), 3)
	assert.Equal(t, 2+4+5, tree.SocketCount())

	var order []string
	for _, n := range tree.TopologicalOrder() {
		order = append(order, n.Name())
	}
	assert.Equal(t, []string{"Particle Info", "Up", "Gravity"}, order)

	assert.Len(t, tree.NodesByKind(registry.ConsumerNode), 1)
	assert.Len(t, tree.NodesByKind(registry.PlaceholderNode), 1)

	up, ok := tree.Node("Up")
	require.True(t, ok)
	assert.Equal(t, "fn_CombineVectorNode", up.IDName())
	assert.Equal(t, registry.FunctionNode, up.Kind())
	assert.Same(t, tree, up.Tree())

	z, ok := up.Input("Z")
	require.True(t, ok)
	assert.True(t, z.Value().Equals(cty.NumberIntVal(2)).True())
	assert.False(t, z.IsLinked())
	y, _ := up.Input("Y")
	assert.True(t, y.Value().RawEquals(cty.Zero), "unset inputs take the type's zero value")

	x, _ := up.Input("X")
	require.True(t, x.IsLinked())
	assert.Equal(t, "Particle Info.Size", x.Origin().String())
	assert.True(t, x.IsInput())

	gravity, _ := tree.Node("Gravity")
	strength, _ := gravity.Input("Strength")
	assert.True(t, strength.Value().RawEquals(cty.NumberFloatVal(9.81)), "definition defaults apply")

	vector, _ := up.Output("Vector")
	assert.True(t, vector.IsOutput())
	require.Len(t, vector.Targets(), 1)
	assert.Equal(t, "Gravity.Direction", vector.Targets()[0].String())
}

func TestBuild_Errors(t *testing.T) {
	for _, tc := range []struct {
		name string
		tree string
		want string
	}{
		{
			name: "duplicate node name",
			tree: `
				node "bp_DragForceNode" "Drag" {}
				node "bp_DragForceNode" "Drag" {}
			`,
			want: `duplicate node name "Drag"`,
		},
		{
			name: "unknown node kind",
			tree: `node "bp_Teleport" "Away" {}`,
			want: `node "Away" has unknown kind "bp_Teleport"`,
		},
		{
			name: "unknown input",
			tree: `
				node "bp_DragForceNode" "Drag" {
					inputs {
						Speed = 1
					}
				}
			`,
			want: `has no input "Speed"`,
		},
		{
			name: "value for a control input",
			tree: `
				node "bp_KillParticleNode" "Kill" {
					inputs {
						Execute = true
					}
				}
			`,
			want: `input "Execute" of node "Kill" is a control socket`,
		},
		{
			name: "value of the wrong type",
			tree: `
				node "bp_GravityForceNode" "Gravity" {
					inputs {
						Direction = "down"
					}
				}
			`,
			want: `value of input "Direction" on node "Gravity"`,
		},
		{
			name: "null value",
			tree: `
				node "bp_DragForceNode" "Drag" {
					inputs {
						Strength = null
					}
				}
			`,
			want: "must be a known, non-null float",
		},
		{
			name: "unknown output",
			tree: `
				node "bp_ParticleInfoNode" "Particle Info" {}
				node "bp_DragForceNode" "Drag" {}
				link {
					from = ["Particle Info", "Mass"]
					to   = ["Drag", "Strength"]
				}
			`,
			want: `node "Particle Info" has no output "Mass"`,
		},
		{
			name: "input linked twice",
			tree: `
				node "bp_ParticleInfoNode" "Particle Info" {}
				node "bp_DragForceNode" "Drag" {}
				link {
					from = ["Particle Info", "Size"]
					to   = ["Drag", "Strength"]
				}
				link {
					from = ["Particle Info", "Age"]
					to   = ["Drag", "Strength"]
				}
			`,
			want: "input Drag.Strength is already linked from Particle Info.Size",
		},
		{
			name: "control to data link",
			tree: `
				node "bp_MeshCollisionEventNode" "Hit" {}
				node "bp_DragForceNode" "Drag" {}
				link {
					from = ["Hit", "Event"]
					to   = ["Drag", "Strength"]
				}
			`,
			want: "cannot link control socket Hit.Event to float socket Drag.Strength",
		},
		{
			name: "cycle",
			tree: `
				node "fn_AddFloatsNode" "A" {}
				node "fn_AddFloatsNode" "B" {}
				link {
					from = ["A", "Result"]
					to   = ["B", "A"]
				}
				link {
					from = ["B", "Result"]
					to   = ["A", "A"]
				}
			`,
			want: "cycle detected",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := testutil.LoadTreeFiles(t, map[string]string{"tree.hcl": tc.tree})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
