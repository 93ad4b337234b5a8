package cmd

import (
	"fmt"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/errors"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/lexer"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/parser"
	"github.com/spf13/cobra"
)

var (
	parseEvalExpr string
	parseDumpAST  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse PLC source and print its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "print Go-struct form instead of source-like form")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, _, err := readInput(parseEvalExpr, args)
	if err != nil {
		return err
	}

	toks, perr := lexer.Tokenize(input)
	if perr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), errors.Format(perr, input))
		return fmt.Errorf("lexing failed")
	}

	src, perr := parser.Parse(toks)
	if perr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), errors.Format(perr, input))
		return fmt.Errorf("parsing failed")
	}

	if parseDumpAST {
		fmt.Fprintf(cmd.OutOrStdout(), "%#v\n", src)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), src.String())
	return nil
}
