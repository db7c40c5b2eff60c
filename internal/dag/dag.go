package dag

import (
	"fmt"
	"slices"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{
		id:         id,
		index:      len(g.order),
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
	g.order = append(g.order, id)
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. An error is returned
// if either node does not exist or if the edge would create a self-reference.
// Adding the same edge twice is a no-op.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	if _, exists := fromNode.dependents[toID]; exists {
		return nil
	}
	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode

	return nil
}

// TopologicalOrder returns every node ID such that each node appears after
// all of its dependencies. Independent nodes keep their insertion order. An
// error is returned if the graph contains a cycle.
func (g *Graph) TopologicalOrder() ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// permanent: nodes that have been fully visited and are not part of a cycle.
	// temporary: nodes currently in the recursion stack for the current traversal.
	permanent := make(map[string]bool, len(g.nodes))
	temporary := make(map[string]bool)
	result := make([]string, 0, len(g.nodes))

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			return fmt.Errorf("cycle detected involving node '%s'", n.id)
		}

		temporary[n.id] = true

		deps := make([]*node, 0, len(n.deps))
		for _, dep := range n.deps {
			deps = append(deps, dep)
		}
		slices.SortFunc(deps, func(a, b *node) int { return a.index - b.index })
		for _, dep := range deps {
			if err := visit(dep); err != nil {
				return err
			}
		}

		delete(temporary, n.id)
		permanent[n.id] = true
		result = append(result, n.id)
		return nil
	}

	for _, id := range g.order {
		if err := visit(g.nodes[id]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

