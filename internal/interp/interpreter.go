// Package interp implements a tree-walking evaluator over an analyzed
// ast.Source.
package interp

import (
	"fmt"
	"io"
	"math/big"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/ast"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/env"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/errors"
)

// Interpreter walks an analyzed AST, carrying its own runtime scope tree
// distinct from the one the analyzer built. Keeping the two separate
// (rather than reusing the analyzer's *env.Variable instances as storage
// cells) gives every function call a fresh set of parameter and local
// bindings, which recursive calls require.
type Interpreter struct {
	root   *env.Scope
	cursor *env.Cursor
	output io.Writer
}

// New creates an Interpreter that writes built-in print output to output.
func New(output io.Writer) *Interpreter {
	root := env.NewRootScope()
	interp := &Interpreter{root: root, cursor: env.NewCursor(root), output: output}
	interp.installBuiltins()
	return interp
}

// Run evaluates src's field initializers in order, binds its methods, then
// invokes main and returns its result as the program's exit code. The
// analyzer also accepts a main whose return type is Any, so a result that is
// not an *big.Int is reported as a RuntimeError.
func (i *Interpreter) Run(src *ast.Source) (int, *errors.RuntimeError) {
	for _, f := range src.Fields {
		val, err := i.evalExpression(f.Value)
		if err != nil {
			return 0, err
		}
		i.root.DefineVariable(&env.Variable{Name: f.Name, Type: f.Symbol.Type, Value: val})
	}

	for _, m := range src.Methods {
		i.root.DefineFunction(&env.Function{
			Name:          m.Name,
			ParameterTypes: m.Symbol.ParameterTypes,
			ReturnType:    m.Symbol.ReturnType,
			DefiningScope: i.root,
			Params:        m.Params,
			Implementation: i.userFunctionImpl(m),
		}, len(m.Params))
	}

	mainFn, ok := i.root.LookupFunction("main", 0)
	if !ok {
		return 0, errors.NewRuntimeError("no function named main")
	}
	result, err := mainFn.Implementation(nil)
	if err != nil {
		if rerr, ok := err.(*errors.RuntimeError); ok {
			return 0, rerr
		}
		return 0, errors.NewRuntimeError("%s", err.Error())
	}

	n, ok := result.(*big.Int)
	if !ok {
		return 0, errors.NewRuntimeError("main did not return an Integer")
	}
	return int(n.Int64()), nil
}

// userFunctionImpl adapts a user-defined Method into the
// env.Function.Implementation shape shared with built-ins, so that call
// dispatch (see evalCall) never needs to distinguish the two.
func (i *Interpreter) userFunctionImpl(m *ast.Method) func(args []any) (any, error) {
	return func(args []any) (any, error) {
		guard := i.cursor.EnterScope(i.root.NewChild())
		defer guard.Release()

		for idx, name := range m.Params {
			i.cursor.Current().DefineVariable(&env.Variable{Name: name, Value: args[idx]})
		}

		sig, err := i.execStatements(m.Body)
		if err != nil {
			return nil, err
		}
		if sig.kind != signalReturn {
			return nil, errors.NewRuntimeError("method %s completed without a RETURN", m.Name)
		}
		return sig.value, nil
	}
}

type signalKind int

const (
	signalNone signalKind = iota
	signalReturn
)

type signal struct {
	kind  signalKind
	value any
}

func (i *Interpreter) execStatements(stmts []ast.Statement) (signal, *errors.RuntimeError) {
	for _, stmt := range stmts {
		sig, err := i.execStatement(stmt)
		if err != nil {
			return signal{}, err
		}
		if sig.kind != signalNone {
			return sig, nil
		}
	}
	return signal{}, nil
}

func (i *Interpreter) execStatement(stmt ast.Statement) (signal, *errors.RuntimeError) {
	switch s := stmt.(type) {
	case *ast.Declaration:
		return signal{}, i.execDeclaration(s)
	case *ast.Assignment:
		return signal{}, i.execAssignment(s)
	case *ast.ExpressionStatement:
		_, err := i.evalExpression(s.Expr)
		return signal{}, err
	case *ast.If:
		return i.execIf(s)
	case *ast.For:
		return i.execFor(s)
	case *ast.While:
		return i.execWhile(s)
	case *ast.Return:
		val, err := i.evalExpression(s.Value)
		if err != nil {
			return signal{}, err
		}
		return signal{kind: signalReturn, value: val}, nil
	default:
		return signal{}, errors.NewRuntimeError("unknown statement type %T", stmt)
	}
}

func (i *Interpreter) execDeclaration(d *ast.Declaration) *errors.RuntimeError {
	val, err := i.evalExpression(d.Value)
	if err != nil {
		return err
	}
	i.cursor.Current().DefineVariable(&env.Variable{Name: d.Name, Value: val})
	return nil
}

func (i *Interpreter) execAssignment(a *ast.Assignment) *errors.RuntimeError {
	val, err := i.evalExpression(a.Value)
	if err != nil {
		return err
	}
	v, ok := i.cursor.Current().LookupVariable(a.Receiver.Name)
	if !ok {
		return errors.NewRuntimeError("undefined variable %q", a.Receiver.Name)
	}
	v.Value = val
	return nil
}

func (i *Interpreter) execIf(s *ast.If) (signal, *errors.RuntimeError) {
	cond, err := i.evalExpression(s.Condition)
	if err != nil {
		return signal{}, err
	}
	condBool, ok := cond.(bool)
	if !ok {
		return signal{}, errors.NewRuntimeError("if condition did not evaluate to a Boolean, got %T", cond)
	}

	guard := i.cursor.Enter()
	defer guard.Release()

	if condBool {
		return i.execStatements(s.Then)
	}
	if len(s.Else) > 0 {
		return i.execStatements(s.Else)
	}
	return signal{}, nil
}

func (i *Interpreter) execWhile(s *ast.While) (signal, *errors.RuntimeError) {
	for {
		cond, err := i.evalExpression(s.Condition)
		if err != nil {
			return signal{}, err
		}
		condBool, ok := cond.(bool)
		if !ok {
			return signal{}, errors.NewRuntimeError("while condition did not evaluate to a Boolean, got %T", cond)
		}
		if !condBool {
			return signal{}, nil
		}

		guard := i.cursor.Enter()
		sig, err := i.execStatements(s.Body)
		guard.Release()
		if err != nil {
			return signal{}, err
		}
		if sig.kind != signalNone {
			return sig, nil
		}
	}
}

func (i *Interpreter) execFor(s *ast.For) (signal, *errors.RuntimeError) {
	iterVal, err := i.evalExpression(s.Iterable)
	if err != nil {
		return signal{}, err
	}
	rng, ok := iterVal.(intRange)
	if !ok {
		return signal{}, errors.NewRuntimeError("for's iterable did not evaluate to an IntegerIterable")
	}

	for n := rng.from; n < rng.to; n++ {
		guard := i.cursor.Enter()
		i.cursor.Current().DefineVariable(&env.Variable{Name: s.Name, Value: big.NewInt(n)})
		sig, err := i.execStatements(s.Body)
		guard.Release()
		if err != nil {
			return signal{}, err
		}
		if sig.kind != signalNone {
			return sig, nil
		}
	}
	return signal{}, nil
}

// intRange is the runtime representation of an IntegerIterable: the
// half-open interval [from, to), produced by the range builtin.
type intRange struct {
	from, to int64
}

func (r intRange) String() string { return fmt.Sprintf("range(%d, %d)", r.from, r.to) }
