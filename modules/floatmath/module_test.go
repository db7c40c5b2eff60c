package floatmath

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/particlefn/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

func TestOperations(t *testing.T) {
	r := registry.NewWithModules(&Module{})
	require.NoError(t, r.ValidateRegistry(context.Background()))
	assert.Equal(t, len(operations), r.Len())

	for _, tc := range []struct {
		idname string
		a, b   float64
		want   float64
	}{
		{"fn_AddFloatsNode", 1.5, 2, 3.5},
		{"fn_SubtractFloatsNode", 1, 4, -3},
		{"fn_MultiplyFloatsNode", 3, -2, -6},
		{"fn_DivideFloatsNode", 1, 4, 0.25},
		{"fn_MinFloatsNode", 1, 4, 1},
		{"fn_MaxFloatsNode", 1, 4, 4},
		{"fn_PowerFloatsNode", 2, 3, 8},
	} {
		t.Run(tc.idname, func(t *testing.T) {
			def, ok := r.Node(tc.idname)
			require.True(t, ok)
			assert.Equal(t, registry.FunctionNode, def.Kind)

			out, ok := def.Output("Result")
			require.True(t, ok)
			v, err := out.Function.Call([]cty.Value{cty.NumberFloatVal(tc.a), cty.NumberFloatVal(tc.b)})
			require.NoError(t, err)
			assert.InDelta(t, tc.want, registry.FloatValue(v), 1e-9)
		})
	}
}
