package datagraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/particlefn/internal/datagraph"
	"github.com/vk/particlefn/internal/testutil"
	"github.com/zclconf/go-cty/cty"
)

func number(name string) datagraph.Param {
	return datagraph.Param{Name: name, Type: cty.Number}
}

func TestBuilder(t *testing.T) {
	source := &datagraph.Function{Name: "source", Outputs: []datagraph.Param{number("Out")}, Placeholder: true}
	sink := &datagraph.Function{Name: "sink", Inputs: []datagraph.Param{number("In")}}
	flag := &datagraph.Function{Name: "flag", Outputs: []datagraph.Param{{Name: "Out", Type: cty.Bool}}}

	t.Run("links and describes sockets", func(t *testing.T) {
		b := datagraph.NewBuilder()
		src := b.Insert(source, "Source")
		dst := b.Insert(sink, "Sink")
		require.NoError(t, b.Link(src.Outputs[0], dst.Inputs[0]))

		g, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, 2, g.NodeCount())
		assert.True(t, g.IsPlaceholder(src.Index))
		assert.False(t, g.IsPlaceholder(dst.Index))
		assert.Equal(t, "Sink", g.Label(dst.Index))
		assert.Equal(t, src.Outputs[0], g.OriginOf(dst.Inputs[0]))
		assert.Equal(t, []datagraph.Socket{dst.Inputs[0]}, g.TargetsOf(src.Outputs[0]))
		assert.Equal(t, "Source.Out", g.Describe(src.Outputs[0]))
		assert.Equal(t, 0, g.IndexOf(dst.Inputs[0]))
		assert.Equal(t, dst.Index, g.NodeOf(dst.Inputs[0]))
		assert.True(t, g.TypeOf(dst.Inputs[0]).Equals(cty.Number))
	})

	t.Run("rejects bad links", func(t *testing.T) {
		b := datagraph.NewBuilder()
		src := b.Insert(source, "Source")
		other := b.Insert(source, "Other")
		bad := b.Insert(flag, "Flag")
		dst := b.Insert(sink, "Sink")

		assert.ErrorContains(t, b.Link(dst.Inputs[0], src.Outputs[0]), "must go from an output to an input")
		assert.ErrorContains(t, b.Link(bad.Outputs[0], dst.Inputs[0]), "cannot link Flag.Out (bool) to Sink.In (number)")
		require.NoError(t, b.Link(src.Outputs[0], dst.Inputs[0]))
		assert.ErrorContains(t, b.Link(other.Outputs[0], dst.Inputs[0]), "input Sink.In is already linked")
	})

	t.Run("rejects unlinked inputs", func(t *testing.T) {
		b := datagraph.NewBuilder()
		b.Insert(sink, "First")
		b.Insert(sink, "Second")
		_, err := b.Build()
		assert.EqualError(t, err, "data graph has unlinked inputs: First.In, Second.In")
	})

	t.Run("socket accessors panic on the wrong direction", func(t *testing.T) {
		b := datagraph.NewBuilder()
		src := b.Insert(source, "Source")
		dst := b.Insert(sink, "Sink")
		require.NoError(t, b.Link(src.Outputs[0], dst.Inputs[0]))
		g, err := b.Build()
		require.NoError(t, err)

		assert.Panics(t, func() { g.OriginOf(src.Outputs[0]) })
		assert.Panics(t, func() { g.TargetsOf(dst.Inputs[0]) })
	})
}

func TestFromTree(t *testing.T) {
	f := testutil.LoadTree(t, `
		node "bp_ParticleInfoNode" "Particle Info" {}

		node "fn_AddFloatsNode" "Grow" {
			inputs {
				B = 2
			}
		}
		node "fn_AddFloatsNode" "Blend" {}
		node "fn_MultiplyFloatsNode" "Mix" {}

		node "bp_DragForceNode" "Drag" {}
		node "bp_KillParticleNode" "Kill" {}

		link {
			from = ["Particle Info", "Size"]
			to   = ["Grow", "A"]
		}
		link {
			from = ["Particle Info", "Age"]
			to   = ["Blend", "A"]
		}
		link {
			from = ["Particle Info", "Size"]
			to   = ["Blend", "B"]
		}
		link {
			from = ["Grow", "Result"]
			to   = ["Mix", "A"]
		}
		link {
			from = ["Blend", "Result"]
			to   = ["Mix", "B"]
		}
		link {
			from = ["Mix", "Result"]
			to   = ["Drag", "Strength"]
		}
		link {
			from = ["Particle Info", "Velocity"]
			to   = ["Kill", "Condition"]
		}
	`)
	vg := f.Graph
	g := vg.Graph()

	// Six tree nodes plus constants for Grow.B and Kill.Condition.
	assert.Equal(t, 8, g.NodeCount())

	info := f.Node(t, "Particle Info")
	size, _ := info.Output("Size")
	age, _ := info.Output("Age")
	sizeSocket, ok := vg.LookupSocket(size)
	require.True(t, ok)
	assert.True(t, sizeSocket.IsOutput())
	source, ok := vg.PlaceholderSource(sizeSocket)
	require.True(t, ok)
	assert.Same(t, size, source)

	t.Run("control sockets are not mapped", func(t *testing.T) {
		execute, _ := f.Node(t, "Kill").Input("Execute")
		_, ok := vg.LookupSocket(execute)
		assert.False(t, ok)
	})

	t.Run("incompatible consumer links are dropped", func(t *testing.T) {
		condition, _ := f.Node(t, "Kill").Input("Condition")
		_, ok := vg.LookupSocket(condition)
		assert.False(t, ok)
		assert.Contains(t, f.Logs.String(), "Ignoring link between incompatible sockets.")
	})

	t.Run("placeholder dependencies are ordered and unique", func(t *testing.T) {
		strength, _ := f.Node(t, "Drag").Input("Strength")
		s, ok := vg.LookupSocket(strength)
		require.True(t, ok)

		deps := vg.FindPlaceholderDependencies(s)
		require.Equal(t, 2, deps.Len())
		var sources []string
		for _, ps := range deps.Sockets {
			vs, ok := vg.PlaceholderSource(ps)
			require.True(t, ok)
			sources = append(sources, vs.String())
		}
		assert.Equal(t, []string{"Particle Info.Size", "Particle Info.Age"}, sources)
		ageSocket, _ := vg.LookupSocket(age)
		assert.Equal(t, []datagraph.Socket{sizeSocket, ageSocket}, deps.Sockets)
	})

	t.Run("constant inputs have no dependencies", func(t *testing.T) {
		b, _ := f.Node(t, "Grow").Input("B")
		s, ok := vg.LookupSocket(b)
		require.True(t, ok)
		assert.Zero(t, vg.FindPlaceholderDependencies(s).Len())
		assert.Equal(t, "Grow.B", g.Label(g.NodeOf(g.OriginOf(s))))
	})

	t.Run("function nodes call their definition", func(t *testing.T) {
		grow := f.Node(t, "Grow")
		result, _ := grow.Output("Result")
		s, _ := vg.LookupSocket(result)
		fn := g.Function(g.NodeOf(s))
		require.NotNil(t, fn.Call)
		out, err := fn.Call([]cty.Value{cty.NumberIntVal(3), cty.NumberIntVal(2)})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.True(t, out[0].Equals(cty.NumberIntVal(5)).True())
	})
}
