// Package cmd implements the plc command-line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "plc",
	Short: "PLC lexer, parser, analyzer, interpreter and generator",
	Long: `plc is a pedagogical imperative language pipeline: a lexer, a
recursive-descent parser, a semantic analyzer, a tree-walking interpreter,
and a Java-family source generator.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("plc version {{.Version}}\nCommit: %s\n", GitCommit))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

// readInput resolves the run/lex/parse commands' shared argument
// convention: an inline -e expression or a file path. With neither it
// returns an error; stdin is not read.
func readInput(evalExpr string, args []string) (input, filename string, err error) {
	switch {
	case evalExpr != "":
		return evalExpr, "<eval>", nil
	case len(args) == 1:
		content, rerr := os.ReadFile(args[0])
		if rerr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], rerr)
		}
		return string(content), args[0], nil
	default:
		return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
	}
}
