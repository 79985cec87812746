/*
File    : numera/cmd/numera/cmd/ir.go
Project : Numera
*/
package cmd

import (
	"fmt"

	"github.com/numera-lang/numera/pipeline"
	"github.com/spf13/cobra"
)

var rawIR bool

var irCmd = &cobra.Command{
	Use:   "ir <file>",
	Short: "Compile a Numera program and print its IR",
	Long: `Compile a Numera source file and print the three-address IR without
executing it. By default the optimized IR is printed; --raw prints the
generator's output before the optimization passes.

Examples:
  # Print the optimized IR
  numera ir program.num

  # Print the IR as generated, before optimization
  numera ir --raw program.num`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := readSourceFile(args[0])

		p := pipeline.NewPipeline(source, loadConfig())
		if err := p.Compile(); err != nil {
			exitWithError("%s", err)
		}

		if rawIR {
			fmt.Println(p.GeneratedCode)
		} else {
			fmt.Println(p.OptimizedCode)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(irCmd)

	irCmd.Flags().BoolVar(&rawIR, "raw", false, "print unoptimized IR")
}
