package cmd

import (
	"fmt"
	"os"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/errors"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/interp"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/lexer"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/parser"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	runEvalExpr string
	runDumpAST  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a PLC file or inline expression",
	Long: `Lex, parse, semantically analyze and execute a PLC program,
exiting with main's return value as the process exit code.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "run inline code instead of reading from file")
	runCmd.Flags().BoolVar(&runDumpAST, "dump-ast", false, "print the parsed AST before running")
}

func runRun(cmd *cobra.Command, args []string) error {
	input, _, err := readInput(runEvalExpr, args)
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

	if runDumpAST {
		fmt.Fprintln(cmd.OutOrStdout(), src.String())
	}

	if aerr := semantic.Analyze(src); aerr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), errors.Format(aerr, input))
		return fmt.Errorf("analysis failed")
	}

	i := interp.New(cmd.OutOrStdout())
	code, rerr := i.Run(src)
	if rerr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), errors.Format(rerr, input))
		return fmt.Errorf("execution failed")
	}

	if code != 0 {
		os.Exit(code)
	}
	return nil
}
