/*
File    : numera/repl/repl.go
Project : Numera

Package repl implements the interactive mode of the Numera compiler.
Each input line holds one or more statements; the line is wrapped into a
complete procedure, compiled through the full pipeline (lexer, parser,
generator, optimizer), and executed on the virtual machine. A line that
already starts with "procedure" is compiled as-is. State does not persist
between lines: every line is its own program.

The REPL uses the readline library for line editing and command history,
and colored output for feedback.
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/numera-lang/numera/config"
	"github.com/numera-lang/numera/pipeline"
)

// Color definitions for REPL output:
// - blueColor: decorative separator lines
// - yellowColor: version information
// - redColor: error messages
// - greenColor: the banner
// - cyanColor: informational messages and instructions
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl represents one interactive session's configuration.
type Repl struct {
	Banner  string         // ASCII art banner displayed at startup
	Version string         // Version string of the compiler
	Line    string         // Separator line for visual formatting
	Prompt  string         // Command prompt shown to the user
	Config  *config.Config // Pipeline configuration for every line
}

// NewRepl creates and initializes a new REPL instance.
func NewRepl(banner string, version string, line string, prompt string, cfg *config.Config) *Repl {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Repl{Banner: banner, Version: version, Line: line, Prompt: prompt, Config: cfg}
}

// PrintBannerInfo displays the welcome banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to Numera!")
	cyanColor.Fprintf(writer, "%s\n", "Type statements and press enter; each line runs as its own program")
	cyanColor.Fprintf(writer, "%s\n", "Example: var x = 2; print(x+3);")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start begins the REPL main loop: display the banner, set up readline,
// then read, compile, and run lines until '.exit' or end of input.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {

	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		rl.SaveHistory(line)
		r.executeLine(writer, line)
	}
}

// WrapStatements turns a statement line into a complete program. Lines
// already beginning with "procedure" pass through unchanged.
func WrapStatements(line string) string {
	if strings.HasPrefix(strings.TrimSpace(line), "procedure") {
		return line
	}
	return "procedure main is begin " + line + " end"
}

// executeLine compiles and runs one input line through the pipeline,
// printing any stage error in red.
func (r *Repl) executeLine(writer io.Writer, line string) {
	p := pipeline.NewPipeline(WrapStatements(line), r.Config)
	p.Stdout = writer
	p.Trace = writer

	if err := p.Run(); err != nil {
		redColor.Fprintf(writer, "%s\n", err)
	}
}
