package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/particlefn/internal/app"
	"github.com/vk/particlefn/internal/config"
	"github.com/vk/particlefn/internal/ctxlog"
	"github.com/vk/particlefn/internal/datagraph"
	"github.com/vk/particlefn/internal/hcl"
	"github.com/vk/particlefn/internal/registry"
	"github.com/vk/particlefn/internal/vtree"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Fixture holds every stage of a tree loaded through the real pipeline.
type Fixture struct {
	Ctx      context.Context
	Logs     *SafeBuffer
	Registry *registry.Registry
	Model    *config.Model
	Tree     *vtree.Tree
	Graph    *datagraph.VTreeGraph
}

// Node returns the tree node with the given name or fails the test.
func (f *Fixture) Node(t *testing.T, name string) *vtree.Node {
	t.Helper()
	n, ok := f.Tree.Node(name)
	require.True(t, ok, "node %q not found in tree", name)
	return n
}

// Batch returns the batch declaration with the given name or fails the test.
func (f *Fixture) Batch(t *testing.T, name string) *config.Batch {
	t.Helper()
	b, ok := f.Model.Batch(name)
	require.True(t, ok, "batch %q not found in tree files", name)
	return b
}

// LoadTree writes treeHCL to a temporary file and runs it through the loader,
// the tree builder and the data graph builder with the core modules. Any
// failure fails the test.
func LoadTree(t *testing.T, treeHCL string) *Fixture {
	t.Helper()
	f, err := LoadTreeFiles(t, map[string]string{"tree.hcl": treeHCL})
	require.NoError(t, err)
	return f
}

// LoadTreeFiles is LoadTree for several files. It returns the first error of
// the pipeline, with the fixture filled up to the failing stage.
func LoadTreeFiles(t *testing.T, files map[string]string) (*Fixture, error) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	logs := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f := &Fixture{
		Ctx:      ctxlog.WithLogger(context.Background(), logger),
		Logs:     logs,
		Registry: registry.NewWithModules(app.CoreModules()...),
	}
	t.Cleanup(func() {
		if os.Getenv("PARTICLEFN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	var err error
	if f.Model, err = hcl.NewLoader().Load(f.Ctx, dir); err != nil {
		return f, err
	}
	if f.Tree, err = vtree.Build(f.Ctx, f.Model, f.Registry); err != nil {
		return f, err
	}
	if f.Graph, err = datagraph.FromTree(f.Ctx, f.Tree); err != nil {
		return f, err
	}
	return f, nil
}
