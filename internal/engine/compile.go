package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/vk/particlefn/internal/ctxlog"
	"github.com/vk/particlefn/internal/datagraph"
	"github.com/vk/particlefn/internal/particlefn"
	"github.com/vk/particlefn/internal/registry"
	"github.com/vk/particlefn/internal/vtree"
	"golang.org/x/sync/errgroup"
)

// Engine compiles and evaluates the consumer nodes of a tree.
type Engine struct {
	workers int
	opts    []particlefn.Option
}

// New creates an engine that compiles up to workers nodes at a time.
func New(workers int, opts ...particlefn.Option) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{workers: workers, opts: opts}
}

// Compiled pairs a consumer node with its particle function.
type Compiled struct {
	Node     *vtree.Node
	Function *particlefn.ParticleFunction
}

// CompileTree compiles every consumer node of tree. All nodes are attempted;
// the returned error aggregates every failure. The result follows the
// topological order of the tree.
func (e *Engine) CompileTree(ctx context.Context, tree *vtree.Tree, vg *datagraph.VTreeGraph) ([]*Compiled, error) {
	logger := ctxlog.FromContext(ctx)

	var consumers []*vtree.Node
	for _, n := range tree.TopologicalOrder() {
		if n.Kind() == registry.ConsumerNode {
			consumers = append(consumers, n)
		}
	}
	logger.Debug("Compiling consumer nodes.", "count", len(consumers), "workers", e.workers)

	results := make([]*Compiled, len(consumers))
	var (
		mu   sync.Mutex
		errs *multierror.Error
	)
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, vnode := range consumers {
		g.Go(func() error {
			pf, err := particlefn.Create(vnode, vg, e.opts...)
			if err != nil {
				logger.Warn("Failed to compile node.", "node", vnode.Name(), "error", err)
				mu.Lock()
				errs = multierror.Append(errs, fmt.Errorf("node %q: %w", vnode.Name(), err))
				mu.Unlock()
				return nil
			}
			logger.Debug("Compiled particle function.",
				"node", vnode.Name(),
				"static", len(pf.Static().Signature().Outputs),
				"dynamic", len(pf.Dynamic().Signature().Outputs),
				"dependencies", len(pf.Providers()),
			)
			results[i] = &Compiled{Node: vnode, Function: pf}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	logger.Info("Compiled node tree.", "functions", len(results))
	return results, nil
}
