/*
File    : numera/cmd/numera/cmd/parse.go
Project : Numera
*/
package cmd

import (
	"fmt"

	"github.com/numera-lang/numera/lexer"
	"github.com/numera-lang/numera/parser"
	"github.com/spf13/cobra"
)

var showSource bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a Numera program and print its AST",
	Long: `Parse a Numera source file and print the abstract syntax tree as an
indented node dump.

Examples:
  # Print the AST
  numera parse program.num

  # Also print the pretty-printed source form
  numera parse --show-source program.num`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := readSourceFile(args[0])

		lex := lexer.NewLexer(source)
		tokens, err := lex.ConsumeTokens()
		if err != nil {
			exitWithError("%s", err)
		}

		program, err := parser.NewParser(tokens).Parse()
		if err != nil {
			exitWithError("%s", err)
		}

		fmt.Print(parser.PrintAST(program))
		if showSource {
			fmt.Println(program.Literal())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&showSource, "show-source", false, "also print the pretty-printed source form")
}
