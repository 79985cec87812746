/*
File    : numera/cmd/numera/cmd/repl.go
Project : Numera
*/
package cmd

import (
	"os"

	"github.com/numera-lang/numera/repl"
	"github.com/spf13/cobra"
)

// BANNER is the ASCII art logo displayed when starting the REPL
var BANNER = `
 ███╗   ██╗██╗   ██╗███╗   ███╗███████╗██████╗  █████╗
 ████╗  ██║██║   ██║████╗ ████║██╔════╝██╔══██╗██╔══██╗
 ██╔██╗ ██║██║   ██║██╔████╔██║█████╗  ██████╔╝███████║
 ██║╚██╗██║██║   ██║██║╚██╔╝██║██╔══╝  ██╔══██╗██╔══██║
 ██║ ╚████║╚██████╔╝██║ ╚═╝ ██║███████╗██║  ██║██║  ██║
 ╚═╝  ╚═══╝ ╚═════╝ ╚═╝     ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝
`

// LINE is a separator line used for visual formatting in the REPL
var LINE = "----------------------------------------------------------------"

// PROMPT is the command prompt displayed in REPL mode
var PROMPT = "numera >>> "

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive Numera REPL",
	Long: `Start an interactive session. Each input line holds statements that
are wrapped into a complete procedure, compiled, optimized, and run;
state does not persist between lines.

Example session:
  numera >>> var x = 2; print(x+3);
  5`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repler := repl.NewRepl(BANNER, Version, LINE, PROMPT, loadConfig())
		repler.Start(os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
