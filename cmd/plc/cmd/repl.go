package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/errors"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/pkg/plc"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read a whole program from stdin line-by-line and run it",
	Long: `Since every PLC program requires a top-level main method, the REPL
accumulates lines into a buffer and runs the buffer as a complete program
whenever a blank line is entered. Type :run to run the buffer without a
blank line, or :reset to discard it.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	engine := plc.New(plc.WithOutput(out))

	var buf strings.Builder

	fmt.Fprintln(out, "plc repl — enter a program, blank line to run, :reset to clear, Ctrl-D to quit")
	for {
		fmt.Fprint(out, "plc> ")
		if !scanner.Scan() {
			return nil
		}
		line := scanner.Text()

		switch strings.TrimSpace(line) {
		case ":reset":
			buf.Reset()
			continue
		case ":run":
			runBuffer(out, engine, buf.String())
			continue
		case "":
			if buf.Len() > 0 {
				runBuffer(out, engine, buf.String())
				buf.Reset()
			}
			continue
		}

		buf.WriteString(line)
		buf.WriteString("\n")
	}
}

func runBuffer(out io.Writer, engine *plc.Engine, source string) {
	code, err := engine.Eval(source)
	if err != nil {
		if cerr, ok := err.(*plc.CompileError); ok {
			fmt.Fprintln(out, errors.Format(cerr.Err, source))
			return
		}
		fmt.Fprintln(out, err.Error())
		return
	}
	fmt.Fprintf(out, "(exit %d)\n", code)
}
