package interp

import (
	"fmt"
	"math/big"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/env"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/errors"
)

// installBuiltins defines the free functions every PLC program gets. Their
// signatures mirror semantic.installBuiltins; the two are kept separate
// because the analyzer only ever needs a type signature while the
// interpreter needs a working Implementation.
func (i *Interpreter) installBuiltins() {
	i.root.DefineFunction(&env.Function{
		Name:       "print",
		ReturnType: env.Nil,
		Implementation: func(args []any) (any, error) {
			fmt.Fprintln(i.output, formatValue(args[0]))
			return nil, nil
		},
	}, 1)

	i.root.DefineFunction(&env.Function{
		Name:       "range",
		ReturnType: env.IntegerIterable,
		Implementation: func(args []any) (any, error) {
			from, ok := args[0].(*big.Int)
			if !ok {
				return nil, errors.NewRuntimeError("range's first argument must be an Integer")
			}
			to, ok := args[1].(*big.Int)
			if !ok {
				return nil, errors.NewRuntimeError("range's second argument must be an Integer")
			}
			return intRange{from: from.Int64(), to: to.Int64()}, nil
		},
	}, 2)

	i.root.DefineFunction(&env.Function{
		Name:       "length",
		ReturnType: env.Integer,
		Implementation: func(args []any) (any, error) {
			s, ok := args[0].(string)
			if !ok {
				return nil, errors.NewRuntimeError("length's argument must be a String")
			}
			return big.NewInt(int64(len([]rune(s)))), nil
		},
	}, 1)
}

// formatValue renders a runtime value the way print displays it.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case *big.Int:
		return val.String()
	case *big.Float:
		return val.Text('g', -1)
	case rune:
		return string(val)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

// evalMethodCall dispatches a receiver-qualified call. String is the only
// built-in type carrying methods (length, charAt); a user-defined PLC
// program has no other receiver types to dispatch on.
func (i *Interpreter) evalMethodCall(receiver any, name string, args []any) (any, *errors.RuntimeError) {
	s, ok := receiver.(string)
	if !ok {
		return nil, errors.NewRuntimeError("value has no method %q", name)
	}

	switch name {
	case "length":
		return big.NewInt(int64(len([]rune(s)))), nil
	case "charAt":
		idx, ok := args[0].(*big.Int)
		if !ok {
			return nil, errors.NewRuntimeError("charAt's argument must be an Integer")
		}
		runes := []rune(s)
		n := idx.Int64()
		if n < 0 || n >= int64(len(runes)) {
			return nil, errors.NewRuntimeError("charAt index %d out of range for string of length %d", n, len(runes))
		}
		return runes[n], nil
	default:
		return nil, errors.NewRuntimeError("String has no method %q", name)
	}
}
