/*
File    : numera/cmd/numera/cmd/lex.go
Project : Numera
*/
package cmd

import (
	"fmt"

	"github.com/numera-lang/numera/lexer"
	"github.com/spf13/cobra"
)

var showLine bool

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a Numera program",
	Long: `Tokenize a Numera source file and print the resulting tokens.

This command is useful for debugging the lexer and understanding how
source code is tokenized.

Examples:
  # Tokenize a program
  numera lex program.num

  # Show source line numbers
  numera lex --show-line program.num`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := readSourceFile(args[0])

		lex := lexer.NewLexer(source)
		tokens, err := lex.ConsumeTokens()
		if err != nil {
			exitWithError("%s", err)
		}

		for _, tok := range tokens {
			if showLine {
				fmt.Printf("<%s, %q> @%d\n", tok.Type, tok.Literal, tok.Line)
			} else {
				fmt.Printf("<%s, %q>\n", tok.Type, tok.Literal)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().BoolVar(&showLine, "show-line", false, "show source line numbers")
}
