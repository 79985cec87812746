/*
File    : numera/cmd/numera/cmd/root.go
Project : Numera
*/

// Package cmd implements the numera command tree.
package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/numera-lang/numera/config"
	"github.com/spf13/cobra"
)

// Version of the numera compiler (set by build flags)
var Version = "0.1.0-dev"

// redColor renders error messages and critical failures
var redColor = color.New(color.FgRed)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "numera [file]",
	Short: "Numera compiler and interpreter",
	Long: `numera is an ahead-of-time compiler and interpreter for the Numera
toy language. A program is a single procedure main with declarations and
statements; it is lowered to a three-address IR, optimized (constant
folding and propagation, common-subexpression elimination, dead code
elimination, strength reduction, loop-invariant code motion), and run on
a small register-file virtual machine.

Running numera with a file argument compiles and executes it; the
subcommands expose the individual pipeline stages.`,
	Version:       Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return executeFile(args[0])
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a numera.toml configuration file")
}

// exitWithError prints a fatal diagnostic in red and stops the process.
func exitWithError(format string, args ...interface{}) {
	redColor.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// readSourceFile loads a source file, treating an unreadable file as a
// fatal I/O error.
func readSourceFile(filename string) string {
	content, err := os.ReadFile(filename)
	if err != nil {
		exitWithError("[FILE ERROR] Could not read file '%s': %v", filename, err)
	}
	return string(content)
}

// loadConfig loads the effective configuration for a command.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		exitWithError("[CONFIG ERROR] %v", err)
	}
	return cfg
}
