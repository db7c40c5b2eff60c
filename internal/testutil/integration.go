package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"github.com/vk/particlefn/internal/app"
	"github.com/vk/particlefn/internal/engine"
	"github.com/vk/particlefn/internal/hcl"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
	// Report is the decoded JSON report. It is nil when the run failed or
	// the report was written in another format.
	Report *engine.Report
}

// RunIntegrationTest writes files into a temporary tree directory and runs
// the whole application on it. Startup panics are recovered into Err.
// TreePath, LogLevel and LogFormat of cfg are filled in when empty.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	if cfg.TreePath == "" {
		cfg.TreePath = dir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 4
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv("PARTICLEFN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, hcl.NewLoader())
	}()
	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	var out bytes.Buffer
	result := &HarnessResult{App: testApp}
	result.Err = testApp.Run(context.Background(), &out)
	result.Output = out.String()
	result.LogOutput = logBuffer.String()

	if result.Err == nil && appConfig.ReportFormat == "json" {
		result.Report = &engine.Report{}
		require.NoError(t, json.Unmarshal(out.Bytes(), result.Report), "report is not valid JSON:\n%s", out.String())
	}
	return result
}
