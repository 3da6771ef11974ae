// Command lilcc is the LIL'C front-end driver: it lexes, parses, and runs
// name and type analysis over a source file, reporting every diagnostic it
// collects. With --emit-asm it also runs the downstream stack-machine code
// generator over a program that passed both analysis passes.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hassan/lilcc/internal/codegen"
	"github.com/hassan/lilcc/internal/config"
	"github.com/hassan/lilcc/internal/lexer"
	"github.com/hassan/lilcc/internal/parser"
	"github.com/hassan/lilcc/internal/semantic"
	"github.com/hassan/lilcc/internal/symtab"
)

type options struct {
	configPath string
	verbose    bool
	emitAsm    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "lilcc <infile> <outfile>",
		Short:         "Compile a LIL'C source file",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1], opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to .lilcc.yaml (default: nearest one found next to infile)")
	flags.BoolVar(&opts.verbose, "verbose", false, "log each compiler phase at debug level")
	flags.BoolVar(&opts.emitAsm, "emit-asm", false, "write generated stack-machine assembly to outfile instead of a success marker")
	return cmd
}

func run(infile, outfile string, opts *options) error {
	cfg, err := loadConfig(infile, opts)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Verbose || opts.verbose)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	sessionID := uuid.New()
	logger = logger.With(zap.String("session_id", sessionID.String()), zap.String("infile", infile))

	source, err := os.ReadFile(infile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", infile, err)
	}

	logger.Debug("lexing and parsing")
	p := parser.New(lexer.New(string(source)))
	prog, parseErrors := p.ParseProgram()
	if len(parseErrors) > 0 {
		logger.Error("parse failed", zap.Int("error_count", len(parseErrors)))
		for _, e := range parseErrors {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("%d parse error(s)", len(parseErrors))
	}

	reporter := semantic.NewReporter()
	reporter.DotHints = cfg.DotHints
	stack := symtab.NewStack()

	logger.Debug("running name analysis")
	if ok := semantic.NameAnalysis(prog, reporter, stack); !ok {
		logger.Error("name analysis failed", zap.Int("diagnostic_count", len(reporter.Diagnostics())))
		return reportAndFail(reporter)
	}

	logger.Debug("running type analysis")
	if ok := semantic.TypeAnalysis(prog, reporter); !ok {
		logger.Error("type analysis failed", zap.Int("diagnostic_count", len(reporter.Diagnostics())))
		return reportAndFail(reporter)
	}

	if reporter.HasErrors() {
		// Both passes returned true (no early-abort) but still recorded
		// diagnostics along the way - report them and fail the compile.
		logger.Error("analysis recorded diagnostics without aborting", zap.Int("diagnostic_count", len(reporter.Diagnostics())))
		return reportAndFail(reporter)
	}

	if !opts.emitAsm {
		return os.WriteFile(outfile, []byte("OK\n"), 0o644)
	}

	logger.Debug("generating code", zap.String("dialect", cfg.AsmDialect))
	out, err := os.Create(outfile)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outfile, err)
	}
	defer out.Close()
	if err := codegen.Generate(prog, out); err != nil {
		return fmt.Errorf("code generation: %w", err)
	}
	return nil
}

func loadConfig(infile string, opts *options) (*config.Config, error) {
	if opts.configPath != "" {
		return config.Load(opts.configPath)
	}
	return config.LoadForSource(infile)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	return cfg.Build()
}

func reportAndFail(r *semantic.Reporter) error {
	for _, d := range r.Diagnostics() {
		fmt.Fprintln(os.Stderr, d)
	}
	return fmt.Errorf("%d semantic error(s)", len(r.Diagnostics()))
}
