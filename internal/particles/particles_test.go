package particles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInfo() *AttributesInfo {
	return NewAttributesInfo(
		AttributeDecl{Name: "Birth Time", Type: Float},
		AttributeDecl{Name: "Position", Type: Vector},
		AttributeDecl{Name: "ID", Type: Integer},
		AttributeDecl{Name: "Kill State", Type: Byte},
	)
}

func TestAttributeArrays(t *testing.T) {
	t.Run("per-particle layout", func(t *testing.T) {
		a := NewAttributeArrays(testInfo(), 3)
		Set(a, "Birth Time", []float32{1, 2, 3})

		i, ok := a.AttributeIndex("Birth Time")
		require.True(t, ok)
		assert.Equal(t, 4, a.AttributeStride(i))
		assert.Equal(t, Float, a.AttributeType(i))
		assert.Equal(t, []float32{1, 2, 3}, a.Buffer(i))

		pos, ok := a.AttributeIndex("Position")
		require.True(t, ok)
		assert.Equal(t, 12, a.AttributeStride(pos))
	})

	t.Run("broadcast layout has zero stride", func(t *testing.T) {
		a := NewAttributeArrays(testInfo(), 4)
		SetBroadcast(a, "Position", Float3{0, 0, 1})

		i, _ := a.AttributeIndex("Position")
		assert.Equal(t, 0, a.AttributeStride(i))
		assert.Equal(t, []Float3{{0, 0, 1}}, Get[Float3](a, "Position"))

		Set(a, "Position", []Float3{{1, 0, 0}})
		assert.Equal(t, 12, a.AttributeStride(i))
		assert.Len(t, Get[Float3](a, "Position"), 4)
	})

	t.Run("missing attribute", func(t *testing.T) {
		a := NewAttributeArrays(testInfo(), 1)
		_, ok := a.AttributeIndex("Color")
		assert.False(t, ok)
		assert.Panics(t, func() { Get[float32](a, "Color") })
	})

	t.Run("wrong element type", func(t *testing.T) {
		a := NewAttributeArrays(testInfo(), 1)
		assert.Panics(t, func() { Get[int32](a, "Birth Time") })
	})

	t.Run("duplicate declaration", func(t *testing.T) {
		assert.Panics(t, func() {
			NewAttributesInfo(AttributeDecl{Name: "Age", Type: Float}, AttributeDecl{Name: "Age", Type: Float})
		})
	})
}

func TestParticleSet(t *testing.T) {
	a := NewAttributeArrays(testInfo(), 5)

	set := NewParticleSet(a, []int{4, 1, 3})
	assert.Equal(t, []int{4, 1, 3}, set.PIndices())
	assert.Equal(t, 3, set.Len())
	assert.Same(t, a, set.Attributes())

	full := NewFullParticleSet(a)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, full.PIndices())

	assert.Panics(t, func() { NewParticleSet(a, []int{5}) })
}

func TestArena(t *testing.T) {
	arena := NewArena(4)

	first := Allocate[float32](arena)
	require.Len(t, first, 4)
	first[2] = 7
	vectors := Allocate[Float3](arena)
	require.Len(t, vectors, 4)
	assert.Equal(t, 2, arena.Live())

	arena.Release()
	assert.Equal(t, 0, arena.Live())
	arena.Release()

	reused := Allocate[float32](arena)
	assert.Equal(t, []float32{0, 0, 0, 0}, reused, "reused buffers are cleared")
	assert.Equal(t, 1, arena.Live())
}

func TestParseAttributeType(t *testing.T) {
	tests := []struct {
		in   string
		want AttributeType
	}{
		{"float", Float},
		{"float3", Vector},
		{"vector", Vector},
		{"int", Integer},
		{"byte", Byte},
	}
	for _, tt := range tests {
		got, err := ParseAttributeType(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseAttributeType("color")
	assert.ErrorContains(t, err, "unknown attribute type")
}
