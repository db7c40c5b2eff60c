package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/particlefn/internal/config"
	"github.com/vk/particlefn/internal/ctxlog"
	"github.com/vk/particlefn/internal/fsutil"
	"github.com/vk/particlefn/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL tree loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under the given paths and merges their blocks
// into one model. Paths may name files or directories.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()
	for _, file := range files {
		f, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		if err := l.decodeFile(ctx, f.Body, model); err != nil {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, err)
		}
	}

	logger.Debug("HCL loading complete.", "nodes", len(model.Nodes), "links", len(model.Links), "batches", len(model.Batches))
	return model, nil
}

func (l *Loader) decodeFile(ctx context.Context, body hcl.Body, model *config.Model) error {
	content, diags := body.Content(schema.Root)
	if diags.HasErrors() {
		return diags
	}
	for _, block := range content.Blocks {
		switch block.Type {
		case "node":
			n, err := l.translateNode(block)
			if err != nil {
				return err
			}
			model.Nodes = append(model.Nodes, n)
		case "link":
			link, err := l.translateLink(block)
			if err != nil {
				return err
			}
			model.Links = append(model.Links, link)
		case "batch":
			b, err := l.translateBatch(ctx, block)
			if err != nil {
				return err
			}
			model.Batches = append(model.Batches, b)
		}
	}
	return nil
}

// findAllHCLFiles expands the given paths into a flat, duplicate-free list
// of .hcl files.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			all = append(all, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			add(p)
		}
	}
	return all, nil
}
