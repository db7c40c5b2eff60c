package particlefn

import (
	"github.com/vk/particlefn/internal/datagraph"
	"github.com/vk/particlefn/internal/vtree"
)

// Dependency is a placeholder output read by a particle function, together
// with the tree socket it stands for.
type Dependency struct {
	Socket datagraph.Socket
	Source *vtree.Socket
}

// dependencySet keeps dependencies in first-discovery order without
// duplicates.
type dependencySet struct {
	entries []Dependency
	index   map[datagraph.Socket]int
}

func newDependencySet() *dependencySet {
	return &dependencySet{index: make(map[datagraph.Socket]int)}
}

func (d *dependencySet) add(dep Dependency) {
	if _, ok := d.index[dep.Socket]; ok {
		return
	}
	invariant(dep.Source != nil, "placeholder %s has no source socket", dep.Socket)
	d.index[dep.Socket] = len(d.entries)
	d.entries = append(d.entries, dep)
	invariant(len(d.entries) == len(d.index), "dependency set out of sync: %d entries, %d indexed", len(d.entries), len(d.index))
}

func (d *dependencySet) len() int {
	return len(d.entries)
}

func (d *dependencySet) sockets() []datagraph.Socket {
	out := make([]datagraph.Socket, len(d.entries))
	for i, dep := range d.entries {
		out[i] = dep.Socket
	}
	return out
}

// findParticleDependencies reports for every socket whether it transitively
// reads a placeholder, and collects all placeholders read by any of them.
func findParticleDependencies(vg *datagraph.VTreeGraph, sockets []datagraph.Socket) ([]bool, *dependencySet) {
	flags := make([]bool, len(sockets))
	deps := newDependencySet()
	for i, s := range sockets {
		found := vg.FindPlaceholderDependencies(s)
		flags[i] = found.Len() > 0
		for _, ps := range found.Sockets {
			source, ok := vg.PlaceholderSource(ps)
			invariant(ok, "placeholder %s has no source socket", ps)
			deps.add(Dependency{Socket: ps, Source: source})
		}
	}
	return flags, deps
}

// findInputDataSockets maps the inputs of vnode to data graph sockets.
// Inputs without a data socket, such as control inputs, are skipped.
func findInputDataSockets(vnode *vtree.Node, vg *datagraph.VTreeGraph) ([]datagraph.Socket, []*vtree.Socket) {
	var (
		sockets []datagraph.Socket
		inputs  []*vtree.Socket
	)
	for _, vs := range vnode.Inputs() {
		s, ok := vg.LookupSocket(vs)
		if !ok {
			continue
		}
		sockets = append(sockets, s)
		inputs = append(inputs, vs)
	}
	return sockets, inputs
}
