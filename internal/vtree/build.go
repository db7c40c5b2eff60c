package vtree

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/particlefn/internal/config"
	"github.com/vk/particlefn/internal/ctxlog"
	"github.com/vk/particlefn/internal/dag"
	"github.com/vk/particlefn/internal/registry"
	"github.com/zclconf/go-cty/cty/convert"
)

// Build validates a model against the registry and constructs the tree.
func Build(ctx context.Context, model *config.Model, reg *registry.Registry) (*Tree, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting node tree construction.", "nodes", len(model.Nodes), "links", len(model.Links))

	tree := &Tree{byName: make(map[string]*Node, len(model.Nodes))}

	// First pass: create all nodes with their sockets and socket values.
	for _, decl := range model.Nodes {
		if err := tree.addNode(decl, reg); err != nil {
			return nil, err
		}
	}
	logger.Debug("Build: Node creation complete.", "node_count", len(tree.nodes), "socket_count", len(tree.sockets))

	// Second pass: link sockets.
	deps := dag.New()
	for _, n := range tree.nodes {
		deps.AddNode(n.name)
	}
	for _, link := range model.Links {
		if err := tree.addLink(link, deps); err != nil {
			return nil, err
		}
	}
	logger.Debug("Build: Socket linking complete.")

	order, err := deps.TopologicalOrder()
	if err != nil {
		return nil, fmt.Errorf("error validating node tree: %w", err)
	}
	tree.order = make([]*Node, len(order))
	for i, name := range order {
		tree.order[i] = tree.byName[name]
	}
	logger.Debug("Build: Cycle detection passed.")

	return tree, nil
}

func (t *Tree) addNode(decl *config.Node, reg *registry.Registry) error {
	if decl.Name == "" {
		return fmt.Errorf("%s: node of kind %q has no name", decl.Range, decl.IDName)
	}
	if _, exists := t.byName[decl.Name]; exists {
		return fmt.Errorf("%s: duplicate node name %q", decl.Range, decl.Name)
	}
	def, ok := reg.Node(decl.IDName)
	if !ok {
		return fmt.Errorf("%s: node %q has unknown kind %q", decl.Range, decl.Name, decl.IDName)
	}

	n := &Node{tree: t, index: len(t.nodes), name: decl.Name, def: def}
	for i, in := range def.Inputs {
		s := t.newSocket(n, i, true, in.Name, in.Type)
		if in.Type.IsData() {
			s.value = in.DefaultValue()
		}
		n.inputs = append(n.inputs, s)
	}
	for i, out := range def.Outputs {
		n.outputs = append(n.outputs, t.newSocket(n, i, false, out.Name, out.Type))
	}

	names := make([]string, 0, len(decl.Inputs))
	for name := range decl.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		expr := decl.Inputs[name]
		s, ok := n.Input(name)
		if !ok {
			return fmt.Errorf("%s: node %q (%s) has no input %q", expr.Range(), decl.Name, decl.IDName, name)
		}
		if !s.typ.IsData() {
			return fmt.Errorf("%s: input %q of node %q is a control socket and takes no value", expr.Range(), name, decl.Name)
		}
		val, diags := expr.Value(nil)
		if diags.HasErrors() {
			return diags
		}
		converted, err := convert.Convert(val, s.typ.CtyType())
		if err != nil {
			return fmt.Errorf("%s: value of input %q on node %q: %w", expr.Range(), name, decl.Name, err)
		}
		if converted.IsNull() || !converted.IsWhollyKnown() {
			return fmt.Errorf("%s: value of input %q on node %q must be a known, non-null %s", expr.Range(), name, decl.Name, s.typ)
		}
		s.value = converted
	}

	t.nodes = append(t.nodes, n)
	t.byName[n.name] = n
	return nil
}

func (t *Tree) newSocket(n *Node, index int, isInput bool, name string, typ registry.SocketType) *Socket {
	s := &Socket{
		node:    n,
		id:      len(t.sockets),
		index:   index,
		isInput: isInput,
		name:    name,
		typ:     typ,
	}
	t.sockets = append(t.sockets, s)
	return s
}

func (t *Tree) addLink(link *config.Link, deps *dag.Graph) error {
	fromNode, ok := t.byName[link.FromNode]
	if !ok {
		return fmt.Errorf("%s: link from non-existent node %q", link.Range, link.FromNode)
	}
	toNode, ok := t.byName[link.ToNode]
	if !ok {
		return fmt.Errorf("%s: link to non-existent node %q", link.Range, link.ToNode)
	}
	from, ok := fromNode.Output(link.FromSocket)
	if !ok {
		return fmt.Errorf("%s: node %q has no output %q", link.Range, link.FromNode, link.FromSocket)
	}
	to, ok := toNode.Input(link.ToSocket)
	if !ok {
		return fmt.Errorf("%s: node %q has no input %q", link.Range, link.ToNode, link.ToSocket)
	}
	if to.origin != nil {
		return fmt.Errorf("%s: input %s is already linked from %s", link.Range, to, to.origin)
	}
	if (from.typ == registry.Control) != (to.typ == registry.Control) {
		return fmt.Errorf("%s: cannot link %s socket %s to %s socket %s", link.Range, from.typ, from, to.typ, to)
	}
	if err := deps.AddEdge(fromNode.name, toNode.name); err != nil {
		return fmt.Errorf("%s: %w", link.Range, err)
	}

	to.origin = from
	from.targets = append(from.targets, to)
	return nil
}
