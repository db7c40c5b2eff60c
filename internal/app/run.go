package app

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/particlefn/internal/ctxlog"
	"github.com/vk/particlefn/internal/datagraph"
	"github.com/vk/particlefn/internal/engine"
	"github.com/vk/particlefn/internal/particlefn"
	"github.com/vk/particlefn/internal/vtree"
)

// Run compiles the loaded tree, evaluates the configured batch if any, and
// writes the report to w.
func (a *App) Run(ctx context.Context, w io.Writer) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	tree, err := vtree.Build(ctx, a.model, a.registry)
	if err != nil {
		return fmt.Errorf("failed to build node tree: %w", err)
	}
	vg, err := datagraph.FromTree(ctx, tree)
	if err != nil {
		return fmt.Errorf("failed to build data graph: %w", err)
	}
	a.logger.Debug("Data graph built.", "node_count", vg.Graph().NodeCount())

	eng := engine.New(a.config.WorkerCount, particlefn.WithProgramBody(a.config.ProgramBody))
	compiled, err := eng.CompileTree(ctx, tree, vg)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}
	if len(compiled) == 0 {
		a.logger.Warn("No consumer nodes found in tree, nothing to compile.")
	}

	report := &engine.Report{}
	report.Functions, err = eng.Summarize(compiled)
	if err != nil {
		return fmt.Errorf("failed to summarize functions: %w", err)
	}

	if a.config.Batch != "" {
		decl, ok := a.model.Batch(a.config.Batch)
		if !ok {
			return fmt.Errorf("batch %q is not declared in the tree files", a.config.Batch)
		}
		batch, err := engine.NewBatch(decl)
		if err != nil {
			return err
		}
		result, err := eng.Evaluate(ctx, compiled, batch)
		if err != nil {
			return fmt.Errorf("evaluation failed: %w", err)
		}
		report.Batches = append(report.Batches, result)
		a.logger.Info("Batch evaluated.", "batch", batch.Name, "particles", batch.Particles.Len())
	}

	if err := report.Encode(w, a.config.ReportFormat); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
