/*
File    : numera/cmd/numera/cmd/run.go
Project : Numera
*/
package cmd

import (
	"github.com/numera-lang/numera/pipeline"
	"github.com/spf13/cobra"
)

var (
	noOptimize bool
	dumpTokens bool
	dumpAST    bool
	dumpIR     bool
	traceRun   bool
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Compile and execute a Numera program",
	Long: `Compile a Numera source file through the full pipeline and execute
the optimized IR on the virtual machine.

Examples:
  # Run a program
  numera run program.num

  # Run without any optimization passes
  numera run --no-optimize program.num

  # Show every intermediate artifact
  numera run --trace --dump-tokens --dump-ast --dump-ir program.num`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeFile(args[0])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	registerRunFlags(runCmd)
	registerRunFlags(rootCmd)
}

// registerRunFlags attaches the execution flags to a command; the root
// command accepts them too, so `numera program.num --trace` works.
func registerRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&noOptimize, "no-optimize", false, "disable all optimization passes")
	cmd.Flags().BoolVar(&dumpTokens, "dump-tokens", false, "print the token stream")
	cmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST")
	cmd.Flags().BoolVar(&dumpIR, "dump-ir", false, "print generated and optimized IR")
	cmd.Flags().BoolVar(&traceRun, "trace", false, "announce each pipeline stage")
}

// executeFile runs the full pipeline over a source file, applying the
// command-line overrides on top of the loaded configuration.
func executeFile(filename string) error {
	source := readSourceFile(filename)

	cfg := loadConfig()
	if noOptimize {
		cfg.Optimizer.ConstantPropagation = false
		cfg.Optimizer.DeadCode = false
		cfg.Optimizer.StrengthReduction = false
		cfg.Optimizer.LoopInvariant = false
	}
	if dumpTokens {
		cfg.Pipeline.DumpTokens = true
	}
	if dumpAST {
		cfg.Pipeline.DumpAST = true
	}
	if dumpIR {
		cfg.Pipeline.DumpIR = true
	}
	if traceRun {
		cfg.Pipeline.TraceStages = true
	}

	p := pipeline.NewPipeline(source, cfg)
	if err := p.Run(); err != nil {
		exitWithError("%s", err)
	}
	return nil
}
