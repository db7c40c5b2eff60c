package particlefn

import (
	"fmt"
	"slices"

	"github.com/vk/particlefn/internal/fn"
	"github.com/vk/particlefn/internal/particles"
	"github.com/vk/particlefn/internal/registry"
	"github.com/vk/particlefn/internal/vtree"
	"github.com/zclconf/go-cty/cty"
)

// ParticleFunction is the compiled form of the data inputs of one consumer
// node. It is immutable and may be evaluated concurrently.
type ParticleFunction struct {
	name    string
	static  *fn.Function
	dynamic *fn.Function

	// dependencies[i] is parameter i of dynamic, providers[i] produces it.
	dependencies []Dependency
	providers    []InputProvider

	// dependsOnParticle[i] selects the function computing output i and
	// position[i] is the index of output i within that function.
	dependsOnParticle []bool
	position          []int
	inputs            []*vtree.Socket
}

// Name returns the diagnostic name of the function.
func (pf *ParticleFunction) Name() string {
	return pf.name
}

// Static returns the function computing the outputs that are the same for
// every particle. It takes no arguments.
func (pf *ParticleFunction) Static() *fn.Function {
	return pf.static
}

// Dynamic returns the function computing the per-particle outputs. Its
// arguments are the values of Dependencies, in order.
func (pf *ParticleFunction) Dynamic() *fn.Function {
	return pf.dynamic
}

// Dependencies returns the placeholder outputs Dynamic reads.
func (pf *ParticleFunction) Dependencies() []Dependency {
	return slices.Clone(pf.dependencies)
}

// Providers returns one input provider per dependency.
func (pf *ParticleFunction) Providers() []InputProvider {
	return slices.Clone(pf.providers)
}

// OutputCount returns the number of compiled inputs of the node.
func (pf *ParticleFunction) OutputCount() int {
	return len(pf.dependsOnParticle)
}

// DependsOnParticle reports whether output i differs per particle.
func (pf *ParticleFunction) DependsOnParticle(i int) bool {
	return pf.dependsOnParticle[i]
}

// Input returns the node input socket compiled into output i.
func (pf *ParticleFunction) Input(i int) *vtree.Socket {
	return pf.inputs[i]
}

// Compute evaluates the function for every particle of ctx. The static
// function runs once; the dynamic function runs once per particle index,
// and is skipped entirely when it has no outputs.
func (pf *ParticleFunction) Compute(ctx *EvalContext) (*Result, error) {
	invariant(ctx != nil && ctx.Particles != nil, "evaluation context without particles")

	static, err := pf.static.Call(nil)
	if err != nil {
		return nil, err
	}
	r := &Result{pf: pf, static: static}

	outputs := len(pf.dynamic.Signature().Outputs)
	if outputs == 0 {
		return r, nil
	}

	arrays := make([]InputArray, len(pf.providers))
	for i, p := range pf.providers {
		arrays[i] = p.Get(ctx)
	}

	// Inactive particles read the zero value of the output type.
	size := ctx.Particles.Attributes().Size()
	r.dynamic = make([][]cty.Value, outputs)
	for i, param := range pf.dynamic.Signature().Outputs {
		zero := zeroValue(param.Type)
		r.dynamic[i] = make([]cty.Value, size)
		for p := range r.dynamic[i] {
			r.dynamic[i][p] = zero
		}
	}

	args := make([]cty.Value, len(arrays))
	for _, p := range ctx.Particles.PIndices() {
		for i, a := range arrays {
			args[i] = a.Value(p)
		}
		values, err := pf.dynamic.Call(args)
		if err != nil {
			return nil, fmt.Errorf("particle %d: %w", p, err)
		}
		for i, v := range values {
			r.dynamic[i][p] = v
		}
	}
	return r, nil
}

func zeroValue(ty cty.Type) cty.Value {
	switch {
	case ty.Equals(cty.Number):
		return cty.Zero
	case ty.Equals(cty.Bool):
		return cty.False
	case ty.IsTupleType():
		elems := make([]cty.Value, len(ty.TupleElementTypes()))
		for i, et := range ty.TupleElementTypes() {
			elems[i] = zeroValue(et)
		}
		return cty.TupleVal(elems)
	}
	violation("no zero value for %s", ty.FriendlyName())
	return cty.NilVal
}

// Result holds the computed inputs of a consumer node for one batch.
type Result struct {
	pf      *ParticleFunction
	static  []cty.Value
	dynamic [][]cty.Value
}

// Get returns output i for pindex. Static outputs ignore pindex. Per-particle
// outputs of inactive particles hold the zero value of their type.
func (r *Result) Get(i, pindex int) cty.Value {
	k := r.pf.position[i]
	if !r.pf.dependsOnParticle[i] {
		return r.static[k]
	}
	return r.dynamic[k][pindex]
}

// Float returns a numeric output as float32.
func (r *Result) Float(i, pindex int) float32 {
	return float32(registry.FloatValue(r.Get(i, pindex)))
}

// Float3 returns a vector output.
func (r *Result) Float3(i, pindex int) particles.Float3 {
	c := registry.VectorComponents(r.Get(i, pindex))
	return particles.Float3{float32(c[0]), float32(c[1]), float32(c[2])}
}

// Bool returns a boolean output.
func (r *Result) Bool(i, pindex int) bool {
	return r.Get(i, pindex).True()
}
