package particlefn

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/particlefn/internal/config"
	"github.com/vk/particlefn/internal/datagraph"
	"github.com/vk/particlefn/internal/fn"
	"github.com/vk/particlefn/internal/registry"
	"github.com/vk/particlefn/internal/vtree"
	"github.com/vk/particlefn/modules/particleinfo"
	"github.com/vk/particlefn/modules/values"
	"github.com/zclconf/go-cty/cty"
)

func buildTree(t *testing.T, model *config.Model) *vtree.Tree {
	t.Helper()
	reg := registry.NewWithModules(&particleinfo.Module{}, &values.Module{})
	tree, err := vtree.Build(context.Background(), model, reg)
	require.NoError(t, err)
	return tree
}

func TestDependencySet(t *testing.T) {
	tree := buildTree(t, &config.Model{Nodes: []*config.Node{
		{IDName: particleinfo.IDName, Name: "Particle Info"},
	}})
	info, _ := tree.Node("Particle Info")
	size, _ := info.Output("Size")
	age, _ := info.Output(particleinfo.AgeSocket)

	b := datagraph.NewBuilder()
	ref := b.Insert(&datagraph.Function{
		Name:        "info",
		Outputs:     []datagraph.Param{{Name: "Size", Type: cty.Number}, {Name: "Age", Type: cty.Number}},
		Placeholder: true,
	}, "Particle Info")

	t.Run("keeps first discovery order without duplicates", func(t *testing.T) {
		d := newDependencySet()
		d.add(Dependency{Socket: ref.Outputs[1], Source: age})
		d.add(Dependency{Socket: ref.Outputs[0], Source: size})
		d.add(Dependency{Socket: ref.Outputs[1], Source: age})

		assert.Equal(t, 2, d.len())
		assert.Equal(t, []datagraph.Socket{ref.Outputs[1], ref.Outputs[0]}, d.sockets())
		assert.Same(t, age, d.entries[0].Source)
	})

	t.Run("Panic: dependency without source", func(t *testing.T) {
		d := newDependencySet()
		assert.PanicsWithError(t, "particlefn: invariant violated: placeholder out#0 has no source socket", func() {
			d.add(Dependency{Socket: ref.Outputs[0]})
		})
	})
}

func TestCreateInputProvider(t *testing.T) {
	tree := buildTree(t, &config.Model{Nodes: []*config.Node{
		{IDName: particleinfo.IDName, Name: "Particle Info"},
		{IDName: "fn_FloatValueNode", Name: "Value", Inputs: map[string]hcl.Expression{
			"Value": hcl.StaticExpr(cty.NumberIntVal(1), hcl.Range{}),
		}},
	}})
	info, _ := tree.Node("Particle Info")
	value, _ := tree.Node("Value")

	for _, tc := range []struct {
		socket string
		want   InputProvider
	}{
		{"Position", AttributeProvider{Name: "Position"}},
		{"Size", AttributeProvider{Name: "Size"}},
		{"Age", AgeProvider{}},
	} {
		t.Run(tc.socket, func(t *testing.T) {
			vs, ok := info.Output(tc.socket)
			require.True(t, ok)
			assert.Equal(t, tc.want, createInputProvider(vs))
		})
	}

	t.Run("Panic: not a placeholder", func(t *testing.T) {
		vs, _ := value.Output("Value")
		assert.PanicsWithError(t, `particlefn: invariant violated: no input provider for Value.Value (fn_FloatValueNode)`, func() {
			createInputProvider(vs)
		})
	})
}

func TestCreateFromSockets_BuildFailure(t *testing.T) {
	// A sink reading a placeholder that is not declared as a dependency
	// cannot be built into a per-particle function.
	b := datagraph.NewBuilder()
	ph := b.Insert(&datagraph.Function{
		Name:        "info",
		Outputs:     []datagraph.Param{{Name: "Size", Type: cty.Number}},
		Placeholder: true,
	}, "Particle Info")
	sink := b.Insert(&datagraph.Function{Name: "drag", Inputs: []datagraph.Param{{Name: "Strength", Type: cty.Number}}}, "Drag")
	require.NoError(t, b.Link(ph.Outputs[0], sink.Inputs[0]))
	g, err := b.Build()
	require.NoError(t, err)

	pf, err := createFromSockets(g, "Drag Inputs", sink.Inputs, []bool{true}, newDependencySet(), options{programBody: true})
	require.Error(t, err)
	assert.Nil(t, pf, "no partial artifact on failure")
	var buildErr *fn.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "Drag Inputs", buildErr.Function)

	t.Run("Panic: misaligned flags", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = createFromSockets(g, "Drag Inputs", sink.Inputs, nil, newDependencySet(), options{})
		})
	})
}

func TestInputArray_Value(t *testing.T) {
	a := InputArray{Data: []float32{1.5, 2.5}, Stride: 4}
	assert.True(t, a.Value(1).RawEquals(cty.NumberFloatVal(2.5)))

	broadcast := InputArray{Data: []int32{7}, Stride: 0}
	assert.True(t, broadcast.Value(5).RawEquals(cty.NumberIntVal(7)))

	assert.PanicsWithError(t, "particlefn: invariant violated: input array holds unsupported data []string", func() {
		InputArray{Data: []string{"x"}, Stride: 1}.Value(0)
	})
}
