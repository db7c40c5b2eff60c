package engine

import (
	"fmt"
	"io"
	"math/big"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Report is the printable outcome of compiling a tree and evaluating its
// batches.
type Report struct {
	Functions []FunctionReport `json:"functions" yaml:"functions"`
	Batches   []*BatchReport   `json:"batches,omitempty" yaml:"batches,omitempty"`
}

// FunctionReport describes the shape of one compiled particle function.
type FunctionReport struct {
	Node         string              `json:"node" yaml:"node"`
	Kind         string              `json:"kind" yaml:"kind"`
	Inputs       []InputSummary      `json:"inputs" yaml:"inputs"`
	Dependencies []DependencySummary `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// InputSummary describes one compiled input. Value is only set for inputs
// that are the same for every particle.
type InputSummary struct {
	Socket      string `json:"socket" yaml:"socket"`
	PerParticle bool   `json:"per_particle" yaml:"per_particle"`
	Value       any    `json:"value,omitempty" yaml:"value,omitempty"`
}

// DependencySummary names a per-particle input source and its provider.
type DependencySummary struct {
	Source   string `json:"source" yaml:"source"`
	Provider string `json:"provider" yaml:"provider"`
}

// BatchReport holds the evaluated inputs of every node for one batch.
type BatchReport struct {
	Name   string       `json:"name" yaml:"name"`
	Size   int          `json:"size" yaml:"size"`
	Active []int        `json:"active" yaml:"active,flow"`
	Nodes  []NodeResult `json:"nodes" yaml:"nodes"`
}

// NodeResult holds the evaluated inputs of one node.
type NodeResult struct {
	Node    string        `json:"node" yaml:"node"`
	Skipped string        `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Inputs  []InputResult `json:"inputs,omitempty" yaml:"inputs,omitempty"`
}

// InputResult is a static Value or one value per active particle.
type InputResult struct {
	Socket string          `json:"socket" yaml:"socket"`
	Value  any             `json:"value,omitempty" yaml:"value,omitempty"`
	Values []ParticleValue `json:"values,omitempty" yaml:"values,omitempty"`
}

// ParticleValue is the value of an input for one particle index.
type ParticleValue struct {
	Index int `json:"index" yaml:"index"`
	Value any `json:"value" yaml:"value"`
}

// Summarize describes the compiled functions. Static inputs are evaluated,
// per-particle inputs are only listed.
func (e *Engine) Summarize(compiled []*Compiled) ([]FunctionReport, error) {
	var out []FunctionReport
	for _, c := range compiled {
		static, err := c.Function.Static().Call(nil)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", c.Node.Name(), err)
		}

		fr := FunctionReport{Node: c.Node.Name(), Kind: c.Node.IDName()}
		next := 0
		for i := 0; i < c.Function.OutputCount(); i++ {
			is := InputSummary{Socket: c.Function.Input(i).Name(), PerParticle: c.Function.DependsOnParticle(i)}
			if !is.PerParticle {
				is.Value = plain(static[next])
				next++
			}
			fr.Inputs = append(fr.Inputs, is)
		}
		providers := c.Function.Providers()
		for i, dep := range c.Function.Dependencies() {
			fr.Dependencies = append(fr.Dependencies, DependencySummary{
				Source:   dep.Source.String(),
				Provider: providers[i].Kind().String(),
			})
		}
		out = append(out, fr)
	}
	return out, nil
}

// Encode writes the report as "json" or "yaml".
func (r *Report) Encode(w io.Writer, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// plain converts a socket value into a value both encoders understand.
func plain(v cty.Value) any {
	switch {
	case v == cty.NilVal || v.IsNull():
		return nil
	case v.Type() == cty.Number:
		return number(v.AsBigFloat())
	case v.Type() == cty.Bool:
		return v.True()
	case v.Type().IsTupleType() || v.Type().IsListType():
		var out []any
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			out = append(out, plain(ev))
		}
		return out
	default:
		return v.GoString()
	}
}

func number(f *big.Float) any {
	if f.IsInt() {
		if i, acc := f.Int64(); acc == big.Exact {
			return i
		}
	}
	// Attribute data is single precision; print the shortest float32 form.
	v, _ := f.Float32()
	short, _ := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'g', -1, 32), 64)
	return short
}
