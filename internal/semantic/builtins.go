package semantic

import "github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/env"

// installBuiltins defines the free functions every PLC program gets,
// without any source-level declaration: print, range and length. These
// carry type signatures only; the interpreter installs its own copies with
// working Implementations into its own root scope (see interp.New).
func installBuiltins(root *env.Scope) {
	root.DefineFunction(&env.Function{
		Name:           "print",
		JVMName:        "print",
		ParameterTypes: []*env.Type{env.Any},
		ReturnType:     env.Nil,
	}, 1)

	root.DefineFunction(&env.Function{
		Name:           "range",
		JVMName:        "range",
		ParameterTypes: []*env.Type{env.Integer, env.Integer},
		ReturnType:     env.IntegerIterable,
	}, 2)

	root.DefineFunction(&env.Function{
		Name:           "length",
		JVMName:        "length",
		ParameterTypes: []*env.Type{env.String},
		ReturnType:     env.Integer,
	}, 1)
}
