package engine

import (
	"fmt"

	"github.com/vk/particlefn/internal/config"
	"github.com/vk/particlefn/internal/particles"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Batch is a particle batch ready to be evaluated.
type Batch struct {
	Name      string
	Particles *particles.ParticleSet
	Action    particles.ActionContext
	Times     particles.ParticleTimes
}

// NewBatch validates a batch declaration and materializes its attributes.
func NewBatch(decl *config.Batch) (*Batch, error) {
	if decl.Size < 0 {
		return nil, fmt.Errorf("batch %q: size must not be negative", decl.Name)
	}

	var decls []particles.AttributeDecl
	seen := make(map[string]struct{}, len(decl.Attributes))
	for _, a := range decl.Attributes {
		if _, dup := seen[a.Name]; dup {
			return nil, fmt.Errorf("batch %q: attribute %q declared twice", decl.Name, a.Name)
		}
		seen[a.Name] = struct{}{}
		typ, err := particles.ParseAttributeType(a.Type)
		if err != nil {
			return nil, fmt.Errorf("batch %q attribute %q: %w", decl.Name, a.Name, err)
		}
		decls = append(decls, particles.AttributeDecl{Name: a.Name, Type: typ})
	}
	attrs := particles.NewAttributeArrays(particles.NewAttributesInfo(decls...), decl.Size)
	for _, a := range decl.Attributes {
		if err := fillAttribute(attrs, decl, a); err != nil {
			return nil, fmt.Errorf("batch %q attribute %q: %w", decl.Name, a.Name, err)
		}
	}

	pindices := decl.Active
	if pindices == nil {
		pindices = make([]int, decl.Size)
		for i := range pindices {
			pindices[i] = i
		}
	}
	for _, p := range pindices {
		if p < 0 || p >= decl.Size {
			return nil, fmt.Errorf("batch %q: active index %d is outside of [0, %d)", decl.Name, p, decl.Size)
		}
	}

	b := &Batch{
		Name:      decl.Name,
		Particles: particles.NewParticleSet(attrs, pindices),
	}

	switch {
	case decl.CurrentTimes != nil && decl.RemainingDurations != nil:
		return nil, fmt.Errorf("batch %q: current_times and remaining_durations are mutually exclusive", decl.Name)
	case decl.CurrentTimes != nil:
		if len(decl.CurrentTimes) != decl.Size {
			return nil, fmt.Errorf("batch %q: expected %d current times, got %d", decl.Name, decl.Size, len(decl.CurrentTimes))
		}
		b.Times = particles.CurrentTimes{Times: decl.CurrentTimes}
	case decl.RemainingDurations != nil:
		if decl.EndTime == nil {
			return nil, fmt.Errorf("batch %q: remaining_durations requires end_time", decl.Name)
		}
		if len(decl.RemainingDurations) != decl.Size {
			return nil, fmt.Errorf("batch %q: expected %d remaining durations, got %d", decl.Name, decl.Size, len(decl.RemainingDurations))
		}
		b.Times = particles.DurationAndEnd{RemainingDurations: decl.RemainingDurations, EndTime: *decl.EndTime}
	}

	if decl.CollisionNormals != nil {
		if len(decl.CollisionNormals) != decl.Size {
			return nil, fmt.Errorf("batch %q: expected %d collision normals, got %d", decl.Name, decl.Size, len(decl.CollisionNormals))
		}
		normals := make([]particles.Float3, len(decl.CollisionNormals))
		for i, n := range decl.CollisionNormals {
			normals[i] = particles.Float3(n)
		}
		b.Action = &particles.CollisionEvent{Normals: normals}
	}
	return b, nil
}

func fillAttribute(attrs *particles.AttributeArrays, decl *config.Batch, a *config.Attribute) error {
	index, _ := attrs.AttributeIndex(a.Name)
	switch attrs.AttributeType(index) {
	case particles.Byte:
		var values []uint8
		if err := decodeValues(a.Values, cty.List(cty.Number), &values); err != nil {
			return err
		}
		return store(attrs, decl, a, values)
	case particles.Integer:
		var values []int32
		if err := decodeValues(a.Values, cty.List(cty.Number), &values); err != nil {
			return err
		}
		return store(attrs, decl, a, values)
	case particles.Float:
		var values []float32
		if err := decodeValues(a.Values, cty.List(cty.Number), &values); err != nil {
			return err
		}
		return store(attrs, decl, a, values)
	default:
		var raw [][]float32
		if err := decodeValues(a.Values, cty.List(cty.List(cty.Number)), &raw); err != nil {
			return err
		}
		values := make([]particles.Float3, len(raw))
		for i, v := range raw {
			if len(v) != 3 {
				return fmt.Errorf("value %d must have 3 components, got %d", i, len(v))
			}
			values[i] = particles.Float3{v[0], v[1], v[2]}
		}
		return store(attrs, decl, a, values)
	}
}

func decodeValues(v cty.Value, ty cty.Type, target any) error {
	converted, err := convert.Convert(v, ty)
	if err != nil {
		return fmt.Errorf("cannot convert values to %s: %w", ty.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, target)
}

func store[T particles.Element](attrs *particles.AttributeArrays, decl *config.Batch, a *config.Attribute, values []T) error {
	if a.Broadcast {
		if len(values) != 1 {
			return fmt.Errorf("broadcast attribute needs exactly one value, got %d", len(values))
		}
		particles.SetBroadcast(attrs, a.Name, values[0])
		return nil
	}
	if len(values) > decl.Size {
		return fmt.Errorf("%d values do not fit a batch of size %d", len(values), decl.Size)
	}
	particles.Set(attrs, a.Name, values)
	return nil
}
