package cmd

import (
	"fmt"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/errors"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/lexer"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/pkg/token"
	"github.com/spf13/cobra"
)

var (
	lexEvalExpr string
	lexShowPos  bool
	lexTrace    bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a PLC file or expression",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show line:column for each token")
	lexCmd.Flags().BoolVar(&lexTrace, "trace", false, "trace lexer dispatch to stderr")
}

func runLex(cmd *cobra.Command, args []string) error {
	input, _, err := readInput(lexEvalExpr, args)
	if err != nil {
		return err
	}

	var opts []lexer.Option
	if lexTrace {
		opts = append(opts, lexer.WithTracing(func(format string, a ...any) {
			fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", a...)
		}))
	}

	l := lexer.New(input, opts...)
	for {
		tok, perr := l.Next()
		if perr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), errors.Format(perr, input))
			return fmt.Errorf("lexing failed")
		}
		printToken(cmd, tok)
		if tok.Type == token.EOF {
			return nil
		}
	}
}

func printToken(cmd *cobra.Command, tok token.Token) {
	if lexShowPos {
		fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-20q @%d:%d\n", tok.Type, tok.Literal, tok.Line, tok.Column)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%-12s %q\n", tok.Type, tok.Literal)
}
