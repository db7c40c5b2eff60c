package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/particlefn/internal/app"
	"github.com/vk/particlefn/internal/testutil"
)

// TestErrors_InvalidHCLIsRejected verifies that a syntax error stops the
// application during startup.
func TestErrors_InvalidHCLIsRejected(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{"tree.hcl": `
		node "bp_DragForceNode" "Drag" {
			inputs {
				Strength = 2
		// missing closing braces
	`}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, app.Config{})

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "application startup panicked")
	assert.Contains(t, result.Err.Error(), "failed to parse HCL file")
	assert.Nil(t, result.App)
}

// TestErrors_TreeValidation verifies that structural problems of the tree are
// reported before anything is compiled.
func TestErrors_TreeValidation(t *testing.T) {
	for _, tc := range []struct {
		name string
		tree string
		want string
	}{
		{
			name: "cycle",
			tree: `
				node "fn_AddFloatsNode" "A" {}
				node "fn_MultiplyFloatsNode" "B" {}
				node "bp_DragForceNode" "Drag" {}
				link {
					from = ["A", "Result"]
					to   = ["B", "A"]
				}
				link {
					from = ["B", "Result"]
					to   = ["A", "B"]
				}
				link {
					from = ["B", "Result"]
					to   = ["Drag", "Strength"]
				}
			`,
			want: "cycle detected",
		},
		{
			name: "link to an unknown node",
			tree: `
				node "bp_DragForceNode" "Drag" {}
				link {
					from = ["Nowhere", "Result"]
					to   = ["Drag", "Strength"]
				}
			`,
			want: `link from non-existent node "Nowhere"`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			result := testutil.RunIntegrationTest(t, map[string]string{"tree.hcl": tc.tree}, app.Config{})
			require.Error(t, result.Err)
			assert.Contains(t, result.Err.Error(), "failed to build node tree")
			assert.Contains(t, result.Err.Error(), tc.want)
			assert.Empty(t, result.Output, "no report is written for an invalid tree")
		})
	}
}

// TestErrors_IncompatibleLinkDropsInput verifies that a consumer input linked
// from a socket of another value type is left out of its function.
func TestErrors_IncompatibleLinkDropsInput(t *testing.T) {
	files := map[string]string{"tree.hcl": `
		node "bp_ParticleInfoNode" "Particle Info" {}
		node "bp_KillParticleNode" "Kill" {
			inputs {
				Condition = false
			}
		}
		link {
			from = ["Particle Info", "Position"]
			to   = ["Kill", "Condition"]
		}
	`}

	result := testutil.RunIntegrationTest(t, files, app.Config{})

	require.NoError(t, result.Err, result.LogOutput)
	require.Len(t, result.Report.Functions, 1)
	kill := result.Report.Functions[0]
	assert.Equal(t, "Kill", kill.Node)
	assert.Empty(t, kill.Inputs)
	assert.Empty(t, kill.Dependencies)
	assert.Contains(t, result.LogOutput, "Ignoring link between incompatible sockets.")
}

// TestErrors_BatchCannotFeedNode verifies that a node whose inputs need data
// the batch does not carry is skipped while the others are evaluated.
func TestErrors_BatchCannotFeedNode(t *testing.T) {
	files := map[string]string{"tree.hcl": `
		node "bp_ParticleInfoNode" "Particle Info" {}
		node "bp_AgeReachedEventNode" "Old" {}
		node "bp_DragForceNode" "Drag" {}
		link {
			from = ["Particle Info", "Age"]
			to   = ["Old", "Age"]
		}
		link {
			from = ["Particle Info", "Size"]
			to   = ["Drag", "Strength"]
		}

		batch "sizes" {
			size = 2
			attribute "Size" {
				type   = float
				values = [0.25, 4]
			}
		}
	`}

	result := testutil.RunIntegrationTest(t, files, app.Config{Batch: "sizes"})

	require.NoError(t, result.Err, result.LogOutput)
	require.Len(t, result.Report.Batches, 1)
	nodes := map[string]string{}
	for _, n := range result.Report.Batches[0].Nodes {
		nodes[n.Node] = n.Skipped
		if n.Node == "Drag" {
			require.Len(t, n.Inputs, 1)
			require.Len(t, n.Inputs[0].Values, 2)
			assert.Equal(t, 0.25, n.Inputs[0].Values[0].Value)
			assert.Equal(t, 4.0, n.Inputs[0].Values[1].Value)
		}
	}
	assert.Equal(t, "batch has no particle times", nodes["Old"])
	assert.Empty(t, nodes["Drag"])
	assert.Contains(t, result.LogOutput, "Skipping node.")
}
