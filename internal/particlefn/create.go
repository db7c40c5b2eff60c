package particlefn

import (
	"github.com/vk/particlefn/internal/datagraph"
	"github.com/vk/particlefn/internal/fn"
	"github.com/vk/particlefn/internal/vtree"
)

type options struct {
	programBody bool
}

// Option configures Create.
type Option func(*options)

// WithProgramBody controls whether the per-particle function is compiled to a
// program body. It is enabled by default.
func WithProgramBody(enabled bool) Option {
	return func(o *options) {
		o.programBody = enabled
	}
}

// Create compiles the data inputs of vnode into a particle function. Inputs
// of vnode that have no data socket in vg, such as control inputs, are left
// out. On error no function is returned.
func Create(vnode *vtree.Node, vg *datagraph.VTreeGraph, opts ...Option) (*ParticleFunction, error) {
	o := options{programBody: true}
	for _, opt := range opts {
		opt(&o)
	}

	sockets, inputs := findInputDataSockets(vnode, vg)
	flags, deps := findParticleDependencies(vg, sockets)
	pf, err := createFromSockets(vg.Graph(), vnode.Name()+" Inputs", sockets, flags, deps, o)
	if err != nil {
		return nil, err
	}
	pf.inputs = inputs
	return pf, nil
}

func createFromSockets(g *datagraph.Graph, name string, sockets []datagraph.Socket, flags []bool, deps *dependencySet, o options) (*ParticleFunction, error) {
	invariant(len(flags) == len(sockets), "%d dependency flags for %d sockets", len(flags), len(sockets))

	var withDeps, withoutDeps []datagraph.Socket
	position := make([]int, len(sockets))
	for i, s := range sockets {
		if flags[i] {
			position[i] = len(withDeps)
			withDeps = append(withDeps, s)
		} else {
			position[i] = len(withoutDeps)
			withoutDeps = append(withoutDeps, s)
		}
	}

	static, err := createFunctionWithoutDeps(g, name, withoutDeps)
	if err != nil {
		return nil, err
	}
	dynamic, err := createFunctionWithDeps(g, name, withDeps, deps, o)
	if err != nil {
		return nil, err
	}

	providers := make([]InputProvider, deps.len())
	for i, dep := range deps.entries {
		providers[i] = createInputProvider(dep.Source)
	}

	return &ParticleFunction{
		name:              name,
		static:            static,
		dynamic:           dynamic,
		dependencies:      deps.entries,
		providers:         providers,
		dependsOnParticle: flags,
		position:          position,
	}, nil
}

func createFunctionWithoutDeps(g *datagraph.Graph, name string, outputs []datagraph.Socket) (*fn.Function, error) {
	b := fn.NewBuilder()
	b.AddOutputs(g, outputs)
	return b.Build(name)
}

func createFunctionWithDeps(g *datagraph.Graph, name string, outputs []datagraph.Socket, deps *dependencySet, o options) (*fn.Function, error) {
	b := fn.NewBuilder()
	b.AddInputs(g, deps.sockets())
	b.AddOutputs(g, outputs)
	f, err := b.Build(name)
	if err != nil {
		return nil, err
	}
	if o.programBody {
		fn.AttachProgramBody(f)
	}
	return f, nil
}
