/*
File    : numera/pipeline/pipeline.go
Project : Numera
*/

// Package pipeline drives the compilation stages in their fixed order:
// lexical analysis, parsing, code generation, optimization, execution.
// Each stage consumes the previous stage's materialized output; every
// failure is fatal and is attributed to the stage it happened in.
package pipeline

import (
	"fmt"
	"io"
	"os"

	"github.com/numera-lang/numera/config"
	"github.com/numera-lang/numera/generator"
	"github.com/numera-lang/numera/ir"
	"github.com/numera-lang/numera/lexer"
	"github.com/numera-lang/numera/optimizer"
	"github.com/numera-lang/numera/parser"
	"github.com/numera-lang/numera/vm"
)

// Stage names used in error attribution and trace output.
const (
	StageLex      = "Lexical Analysis"
	StageParse    = "Parsing"
	StageGenerate = "CodeGenerator"
	StageOptimize = "Optimizer"
	StageExecute  = "Execute"
)

// Pipeline owns one compilation run: the source text, the configuration,
// the artifacts of every completed stage, and the program's standard
// input and output.
type Pipeline struct {
	Source string
	Config *config.Config

	Stdin  io.Reader // consumed only when the program reaches INPUT
	Stdout io.Writer // receives one line per PRINT
	Trace  io.Writer // receives stage banners and artifact dumps

	Tokens        []lexer.Token
	Program       *parser.ProgramNode
	Generated     []ir.Instruction
	GeneratedCode string
	Optimized     []ir.Instruction
	OptimizedCode string
}

// NewPipeline creates a pipeline over source text with the given
// configuration (nil means defaults), wired to the process's standard
// streams.
func NewPipeline(source string, cfg *config.Config) *Pipeline {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Pipeline{
		Source: source,
		Config: cfg,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Trace:  os.Stdout,
	}
}

// stageError attributes a stage failure. This is the single error shape
// the pipeline reports.
func stageError(stage string, err error) error {
	return fmt.Errorf("Error during compilation pipeline at stage %s: %s", stage, err)
}

// trace prints a stage banner when stage tracing is enabled.
func (p *Pipeline) trace(format string, args ...interface{}) {
	if p.Config.Pipeline.TraceStages {
		fmt.Fprintf(p.Trace, format+"\n", args...)
	}
}

// Compile runs the front half of the pipeline: lex, parse, generate,
// optimize. The artifacts of each stage are kept on the pipeline.
func (p *Pipeline) Compile() error {
	p.trace("Starting %s...", StageLex)
	lex := lexer.NewLexer(p.Source)
	tokens, err := lex.ConsumeTokens()
	if err != nil {
		return stageError(StageLex, err)
	}
	p.Tokens = tokens
	if p.Config.Pipeline.DumpTokens {
		fmt.Fprintln(p.Trace, "Tokens Generated:")
		for _, tok := range p.Tokens {
			fmt.Fprintf(p.Trace, "  <%s, %q>\n", tok.Type, tok.Literal)
		}
	}

	p.trace("Starting %s...", StageParse)
	program, err := parser.NewParser(tokens).Parse()
	if err != nil {
		return stageError(StageParse, err)
	}
	p.Program = program
	if p.Config.Pipeline.DumpAST {
		fmt.Fprintln(p.Trace, "AST Generated:")
		fmt.Fprint(p.Trace, parser.PrintAST(program))
	}

	p.trace("Starting %s...", StageGenerate)
	gen := generator.NewGenerator()
	if err := gen.Generate(program); err != nil {
		return stageError(StageGenerate, err)
	}
	p.Generated = gen.Instructions()
	p.GeneratedCode = gen.Code()
	if p.Config.Pipeline.DumpIR {
		fmt.Fprintln(p.Trace, "Generated Code:")
		fmt.Fprintln(p.Trace, p.GeneratedCode)
	}

	p.trace("Starting %s...", StageOptimize)
	p.Optimized = optimizer.Optimize(p.Generated, p.optimizerOptions())
	p.OptimizedCode = ir.Format(p.Optimized)
	if p.Config.Pipeline.DumpIR {
		fmt.Fprintln(p.Trace, "Optimized Code:")
		fmt.Fprintln(p.Trace, p.OptimizedCode)
	}

	return nil
}

// optimizerOptions maps the configuration's pass toggles onto the
// optimizer's options.
func (p *Pipeline) optimizerOptions() optimizer.Options {
	return optimizer.Options{
		ConstantPropagation: p.Config.Optimizer.ConstantPropagation,
		DeadCode:            p.Config.Optimizer.DeadCode,
		StrengthReduction:   p.Config.Optimizer.StrengthReduction,
		LoopInvariant:       p.Config.Optimizer.LoopInvariant,
	}
}

// Execute runs the optimized program on the virtual machine. Compile must
// have succeeded first.
func (p *Pipeline) Execute() error {
	_, err := p.executeSteps(-1)
	return err
}

// executeSteps runs the machine with an optional step bound.
func (p *Pipeline) executeSteps(maxSteps int) (bool, error) {
	p.trace("Starting %s...", StageExecute)
	machine := vm.NewVM(p.Optimized)
	machine.SetWriter(p.Stdout)
	machine.SetReader(p.Stdin)

	halted, err := machine.RunSteps(maxSteps)
	if err != nil {
		return false, stageError(StageExecute, err)
	}
	return halted, nil
}

// Run executes the full pipeline: compile, then execute.
func (p *Pipeline) Run() error {
	if err := p.Compile(); err != nil {
		return err
	}
	return p.Execute()
}

// RunBounded executes the full pipeline with a step bound on the machine,
// reporting whether the program halted on its own. It exists for driving
// programs that intentionally never terminate.
func (p *Pipeline) RunBounded(maxSteps int) (bool, error) {
	if err := p.Compile(); err != nil {
		return false, err
	}
	return p.executeSteps(maxSteps)
}
