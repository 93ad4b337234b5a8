// Command plc is the PLC language CLI: lex, parse, run, compile and repl.
package main

import (
	"fmt"
	"os"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/cmd/plc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
