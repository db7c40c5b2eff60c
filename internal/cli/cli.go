package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vk/particlefn/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// envPrefix is prepended to every option name to form its environment
// variable, e.g. PARTICLEFN_LOG_LEVEL.
const envPrefix = "PARTICLEFN"

// Parse processes command-line arguments and PARTICLEFN_* environment
// variables. It returns a populated Config, a boolean indicating if the
// program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	var (
		ran        bool
		positional []string
	)
	cmd := &cobra.Command{
		Use:   "particlefn [flags] [TREE_PATH]",
		Short: "Compile the inputs of particle nodes into per-particle functions.",
		Long: `particlefn compiles the data inputs of every force, event and action node
of a node tree into a static function and a per-particle function, and
prints a report. With --batch it also evaluates them for a sample batch.

TREE_PATH is a single .hcl file or a directory containing .hcl files.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			ran = true
			positional = args
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	bindOptions(v, cmd, []opt{
		{flag: "tree", short: "t", dflt: "", desc: "Path to the tree file or directory."},
		{flag: "log-format", dflt: "text", desc: "Log output format. Options: 'text' or 'json'."},
		{flag: "log-level", dflt: "info", desc: "Set the logging level. Options: 'debug', 'info', 'warn', 'error'."},
		{flag: "workers", dflt: 4, desc: "Number of nodes compiled concurrently."},
		{flag: "format", dflt: "json", desc: "Report format. Options: 'json' or 'yaml'."},
		{flag: "batch", dflt: "", desc: "Name of a batch declared in the tree files to evaluate."},
		{flag: "no-program-body", dflt: false, desc: "Evaluate per-particle functions with the graph interpreter."},
	})

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if !ran {
		// --help was requested and cobra already printed it.
		return nil, true, nil
	}
	slog.Debug("Arguments parsed successfully.")

	path := v.GetString("tree")
	if path == "" && len(positional) > 0 {
		path = positional[0]
	}
	slog.Debug("Tree path determined.", "path", path)

	if path == "" {
		slog.Debug("No tree path provided, printing usage and exiting.")
		_ = cmd.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(v.GetString("log-format"))
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(v.GetString("log-level"))
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		TreePath:     path,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		WorkerCount:  v.GetInt("workers"),
		ReportFormat: strings.ToLower(v.GetString("format")),
		Batch:        v.GetString("batch"),
		ProgramBody:  !v.GetBool("no-program-body"),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// opt is a single command-line option that can also be set through the
// environment.
type opt struct {
	flag  string
	short string
	dflt  any
	desc  string
}

// bindOptions adds opts to cmd and registers them with v, so that a flag
// given on the command line wins over the environment, which wins over the
// default.
func bindOptions(v *viper.Viper, cmd *cobra.Command, opts []opt) {
	for _, o := range opts {
		switch d := o.dflt.(type) {
		case string:
			cmd.Flags().StringP(o.flag, o.short, d, o.desc)
		case int:
			cmd.Flags().IntP(o.flag, o.short, d, o.desc)
		case bool:
			cmd.Flags().BoolP(o.flag, o.short, d, o.desc)
		default:
			panic(fmt.Errorf("unknown option type %T for flag %q", o.dflt, o.flag))
		}
		if err := v.BindPFlag(o.flag, cmd.Flags().Lookup(o.flag)); err != nil {
			panic(err)
		}
	}
}
