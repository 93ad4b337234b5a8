package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/errors"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/generator"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/lexer"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/parser"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/semantic"
	"github.com/spf13/cobra"
)

var compileOutputFile string

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a PLC file to Java-family source text",
	Long: `Lex, parse, analyze and generate a .java source file that mirrors
the program's field and method structure. Calls to the built-ins print and
range are emitted as plain calls; the generated class does not define them.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileOutputFile, "output", "o", "", "output file (default: <input>.java)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

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

	if aerr := semantic.Analyze(src); aerr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), errors.Format(aerr, input))
		return fmt.Errorf("analysis failed")
	}

	outFile := compileOutputFile
	if outFile == "" {
		ext := filepath.Ext(filename)
		outFile = strings.TrimSuffix(filename, ext) + ".java"
	}

	f, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", outFile, err)
	}
	defer f.Close()

	if err := generator.Write(f, src); err != nil {
		return fmt.Errorf("code generation failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Compiled %s -> %s\n", filename, outFile)
	return nil
}
