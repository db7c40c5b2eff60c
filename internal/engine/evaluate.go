package engine

import (
	"context"
	"fmt"

	"github.com/vk/particlefn/internal/ctxlog"
	"github.com/vk/particlefn/internal/particlefn"
	"github.com/vk/particlefn/internal/particles"
	"github.com/vk/particlefn/internal/registry"
	"github.com/vk/particlefn/modules/particleinfo"
)

// Evaluate computes every compiled function against batch. Functions whose
// dependencies the batch cannot provide are reported as skipped.
func (e *Engine) Evaluate(ctx context.Context, compiled []*Compiled, batch *Batch) (*BatchReport, error) {
	logger := ctxlog.FromContext(ctx).With("batch", batch.Name)
	attrs := batch.Particles.Attributes()

	arena := particles.NewArena(attrs.Size())
	defer arena.Release()

	report := &BatchReport{
		Name:   batch.Name,
		Size:   attrs.Size(),
		Active: batch.Particles.PIndices(),
	}
	for _, c := range compiled {
		nr := NodeResult{Node: c.Node.Name()}
		if reason := missingInput(c.Function, batch); reason != "" {
			logger.Warn("Skipping node.", "node", c.Node.Name(), "reason", reason)
			nr.Skipped = reason
			report.Nodes = append(report.Nodes, nr)
			continue
		}

		result, err := c.Function.Compute(&particlefn.EvalContext{
			Particles: batch.Particles,
			Action:    batch.Action,
			Times:     batch.Times,
			Arena:     arena,
		})
		arena.Release()
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", c.Node.Name(), err)
		}

		for i := 0; i < c.Function.OutputCount(); i++ {
			ir := InputResult{Socket: c.Function.Input(i).Name()}
			if !c.Function.DependsOnParticle(i) {
				ir.Value = plain(result.Get(i, 0))
			} else {
				for _, p := range batch.Particles.PIndices() {
					ir.Values = append(ir.Values, ParticleValue{Index: p, Value: plain(result.Get(i, p))})
				}
			}
			nr.Inputs = append(nr.Inputs, ir)
		}
		logger.Debug("Evaluated node.", "node", c.Node.Name(), "inputs", len(nr.Inputs))
		report.Nodes = append(report.Nodes, nr)
	}
	return report, nil
}

// missingInput returns why batch cannot feed pf, or "" if it can.
func missingInput(pf *particlefn.ParticleFunction, batch *Batch) string {
	attrs := batch.Particles.Attributes()
	deps := pf.Dependencies()
	for i, p := range pf.Providers() {
		switch p := p.(type) {
		case particlefn.AttributeProvider:
			index, ok := attrs.AttributeIndex(p.Name)
			if !ok {
				return fmt.Sprintf("batch has no attribute %q", p.Name)
			}
			want := deps[i].Source.Type()
			if got := attrs.AttributeType(index); !attributeFits(got, want) {
				return fmt.Sprintf("batch attribute %q is %s, input needs %s", p.Name, got, want)
			}
		case particlefn.AgeProvider:
			if batch.Times == nil {
				return "batch has no particle times"
			}
			i, ok := attrs.AttributeIndex(particleinfo.BirthTimeAttribute)
			if !ok || attrs.AttributeType(i) != particles.Float {
				return fmt.Sprintf("batch has no float attribute %q", particleinfo.BirthTimeAttribute)
			}
		case particlefn.CollisionNormalProvider:
			if batch.Action == nil {
				return "batch is not a collision event"
			}
		}
	}
	return ""
}

// attributeFits reports whether an attribute of type got can feed a socket
// of type want.
func attributeFits(got particles.AttributeType, want registry.SocketType) bool {
	switch want {
	case registry.Vector:
		return got == particles.Vector
	case registry.Float, registry.Integer:
		return got != particles.Vector
	default:
		return false
	}
}
