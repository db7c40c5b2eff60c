package particlefn

import (
	"fmt"

	"github.com/vk/particlefn/internal/particles"
	"github.com/vk/particlefn/internal/registry"
	"github.com/vk/particlefn/internal/vtree"
	"github.com/vk/particlefn/modules/collisioninfo"
	"github.com/vk/particlefn/modules/particleinfo"
	"github.com/zclconf/go-cty/cty"
)

// EvalContext is the batch a particle function is evaluated against.
type EvalContext struct {
	Particles *particles.ParticleSet
	// Action is the event being handled, nil outside of events.
	Action particles.ActionContext
	// Times is required when a function reads the particle age.
	Times particles.ParticleTimes
	// Arena provides scratch buffers for computed inputs. Its array size
	// must cover every particle index of Particles.
	Arena *particles.Arena
}

// InputArray is the per-particle data of one dependency. Data is a
// []uint8, []int32, []float32 or []particles.Float3 indexed by particle
// index. A Stride of zero means element 0 applies to every particle.
// Temporary arrays live in the arena of the EvalContext and are only valid
// until the arena is released.
type InputArray struct {
	Data      any
	Stride    int
	Temporary bool
}

// Value returns the value of the array for pindex.
func (a InputArray) Value(pindex int) cty.Value {
	i := pindex
	if a.Stride == 0 {
		i = 0
	}
	switch data := a.Data.(type) {
	case []float32:
		return cty.NumberFloatVal(float64(data[i]))
	case []int32:
		return cty.NumberIntVal(int64(data[i]))
	case []uint8:
		return cty.NumberIntVal(int64(data[i]))
	case []particles.Float3:
		v := data[i]
		return registry.VectorVal(float64(v[0]), float64(v[1]), float64(v[2]))
	}
	violation("input array holds unsupported data %T", a.Data)
	return cty.NilVal
}

// ProviderKind tells the three input providers apart.
type ProviderKind int

const (
	AttributeInput ProviderKind = iota
	CollisionNormalInput
	AgeInput
)

func (k ProviderKind) String() string {
	switch k {
	case AttributeInput:
		return "attribute"
	case CollisionNormalInput:
		return "collision normal"
	case AgeInput:
		return "age"
	default:
		return fmt.Sprintf("ProviderKind(%d)", int(k))
	}
}

// InputProvider produces the per-particle values of one dependency. The set
// of providers is closed.
type InputProvider interface {
	Kind() ProviderKind
	Get(ctx *EvalContext) InputArray
	isInputProvider()
}

// AttributeProvider reads a stored particle attribute.
type AttributeProvider struct {
	Name string
}

func (AttributeProvider) Kind() ProviderKind { return AttributeInput }
func (AttributeProvider) isInputProvider()   {}

// Get returns the buffer of the attribute without copying it.
func (p AttributeProvider) Get(ctx *EvalContext) InputArray {
	attrs := ctx.Particles.Attributes()
	index, ok := attrs.AttributeIndex(p.Name)
	invariant(ok, "attribute %q does not exist", p.Name)
	return InputArray{
		Data:   attrs.Buffer(index),
		Stride: attrs.AttributeStride(index),
	}
}

// CollisionNormalProvider reads the surface normal of a collision event.
type CollisionNormalProvider struct{}

func (CollisionNormalProvider) Kind() ProviderKind { return CollisionNormalInput }
func (CollisionNormalProvider) isInputProvider()   {}

// Get returns the normals of the collision in ctx.Action.
func (CollisionNormalProvider) Get(ctx *EvalContext) InputArray {
	switch action := ctx.Action.(type) {
	case *particles.CollisionEvent:
		return InputArray{Data: action.Normals, Stride: particles.Vector.Size()}
	default:
		violation("collision normal requested while handling %T", ctx.Action)
		return InputArray{}
	}
}

// AgeProvider computes the age of every particle from its birth time.
type AgeProvider struct{}

func (AgeProvider) Kind() ProviderKind { return AgeInput }
func (AgeProvider) isInputProvider()   {}

// Get allocates the ages from the arena of ctx.
func (AgeProvider) Get(ctx *EvalContext) InputArray {
	attrs := ctx.Particles.Attributes()
	invariant(ctx.Arena != nil, "age requested without an arena")
	invariant(ctx.Arena.ArraySize() >= attrs.Size(), "arena array size %d is smaller than batch size %d", ctx.Arena.ArraySize(), attrs.Size())

	index, ok := attrs.AttributeIndex(particleinfo.BirthTimeAttribute)
	invariant(ok, "attribute %q does not exist", particleinfo.BirthTimeAttribute)
	invariant(attrs.AttributeType(index) == particles.Float, "attribute %q has type %s, want %s",
		particleinfo.BirthTimeAttribute, attrs.AttributeType(index), particles.Float)
	birth := particles.Get[float32](attrs, particleinfo.BirthTimeAttribute)
	birthAt := func(pindex int) float32 {
		if attrs.AttributeStride(index) == 0 {
			return birth[0]
		}
		return birth[pindex]
	}

	ages := particles.Allocate[float32](ctx.Arena)
	switch times := ctx.Times.(type) {
	case particles.CurrentTimes:
		for _, p := range ctx.Particles.PIndices() {
			ages[p] = times.Times[p] - birthAt(p)
		}
	case particles.DurationAndEnd:
		for _, p := range ctx.Particles.PIndices() {
			ages[p] = times.EndTime - times.RemainingDurations[p] - birthAt(p)
		}
	default:
		violation("age requested with particle times %T", ctx.Times)
	}
	return InputArray{Data: ages, Stride: particles.Float.Size(), Temporary: true}
}

// createInputProvider picks the provider for the tree output socket a
// placeholder stands for.
func createInputProvider(vs *vtree.Socket) InputProvider {
	switch vs.Node().IDName() {
	case particleinfo.IDName:
		if vs.Name() == particleinfo.AgeSocket {
			return AgeProvider{}
		}
		return AttributeProvider{Name: vs.Name()}
	case collisioninfo.IDName:
		return CollisionNormalProvider{}
	default:
		violation("no input provider for %s (%s)", vs, vs.Node().IDName())
		return nil
	}
}
