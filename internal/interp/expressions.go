package interp

import (
	"math/big"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/ast"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/errors"
)

func (i *Interpreter) evalExpression(expr ast.Expression) (any, *errors.RuntimeError) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil
	case *ast.Group:
		return i.evalExpression(e.Inner)
	case *ast.Binary:
		return i.evalBinary(e)
	case *ast.Access:
		return i.evalAccess(e)
	case *ast.Function:
		return i.evalCall(e)
	default:
		return nil, errors.NewRuntimeError("unknown expression type %T", expr)
	}
}

func (i *Interpreter) evalAccess(a *ast.Access) (any, *errors.RuntimeError) {
	if a.Receiver == nil {
		v, ok := i.cursor.Current().LookupVariable(a.Name)
		if !ok {
			return nil, errors.NewRuntimeError("undefined variable %q", a.Name)
		}
		return v.Value, nil
	}
	// The analyzer types a receiver-qualified Access against the receiver
	// type's method table, but no runtime value carries readable fields, so
	// such a read always fails here.
	return nil, errors.NewRuntimeError("field access on %s is not supported", a.Name)
}

func (i *Interpreter) evalCall(f *ast.Function) (any, *errors.RuntimeError) {
	args := make([]any, len(f.Args))
	for idx, a := range f.Args {
		v, err := i.evalExpression(a)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	if f.Receiver == nil {
		fn, ok := i.cursor.Current().LookupFunction(f.Name, len(args))
		if !ok {
			return nil, errors.NewRuntimeError("undefined function %s/%d", f.Name, len(args))
		}
		result, err := fn.Implementation(args)
		if err != nil {
			return nil, asRuntimeError(err)
		}
		return result, nil
	}

	receiver, err := i.evalExpression(f.Receiver)
	if err != nil {
		return nil, err
	}
	return i.evalMethodCall(receiver, f.Name, args)
}

func asRuntimeError(err error) *errors.RuntimeError {
	if rerr, ok := err.(*errors.RuntimeError); ok {
		return rerr
	}
	return errors.NewRuntimeError("%s", err.Error())
}

func (i *Interpreter) evalBinary(b *ast.Binary) (any, *errors.RuntimeError) {
	left, err := i.evalExpression(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpression(b.Right)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case ast.OpAnd:
		lb, rb, err := asBoolPair(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lb && rb, nil
	case ast.OpOr:
		lb, rb, err := asBoolPair(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return lb || rb, nil
	case ast.OpLT, ast.OpLTEq, ast.OpGT, ast.OpGTEq:
		return compareOrdered(b.Op, left, right), nil
	case ast.OpEq:
		return structuralEqual(left, right), nil
	case ast.OpNotEq:
		return !structuralEqual(left, right), nil
	case ast.OpAdd:
		return i.evalAdd(left, right)
	case ast.OpSub, ast.OpMul, ast.OpDiv:
		return i.evalArith(b.Op, left, right)
	default:
		return nil, errors.NewRuntimeError("unknown binary operator %s", b.Op)
	}
}

// asBoolPair guards the unchecked assertions AND/OR used to perform. Both
// operands are expected to be Boolean after analysis, but a parameter typed
// Any or a mismatched-comparison result flowing into one (see
// compareOrdered) can still reach here as something else at runtime.
func asBoolPair(op ast.BinaryOp, left, right any) (bool, bool, *errors.RuntimeError) {
	lb, ok := left.(bool)
	if !ok {
		return false, false, errors.NewRuntimeError("%s requires Boolean operands, got %T", op, left)
	}
	rb, ok := right.(bool)
	if !ok {
		return false, false, errors.NewRuntimeError("%s requires Boolean operands, got %T", op, right)
	}
	return lb, rb, nil
}

// compareOrdered implements relational comparison. Per the runtime
// semantics, operands of differing concrete runtime type yield nil rather
// than a failure, even though the analyzer's static Comparable check
// allows the two sides to name different Comparable kinds.
func compareOrdered(op ast.BinaryOp, left, right any) any {
	switch l := left.(type) {
	case *big.Int:
		r, ok := right.(*big.Int)
		if !ok {
			return nil
		}
		return applyCmp(op, l.Cmp(r))
	case *big.Float:
		r, ok := right.(*big.Float)
		if !ok {
			return nil
		}
		return applyCmp(op, l.Cmp(r))
	case rune:
		r, ok := right.(rune)
		if !ok {
			return nil
		}
		return applyCmp(op, int(l)-int(r))
	case string:
		r, ok := right.(string)
		if !ok {
			return nil
		}
		switch {
		case l < r:
			return applyCmp(op, -1)
		case l > r:
			return applyCmp(op, 1)
		default:
			return applyCmp(op, 0)
		}
	default:
		return nil
	}
}

func applyCmp(op ast.BinaryOp, cmp int) bool {
	switch op {
	case ast.OpLT:
		return cmp < 0
	case ast.OpLTEq:
		return cmp <= 0
	case ast.OpGT:
		return cmp > 0
	case ast.OpGTEq:
		return cmp >= 0
	default:
		return false
	}
}

func structuralEqual(left, right any) bool {
	switch l := left.(type) {
	case nil:
		return right == nil
	case *big.Int:
		r, ok := right.(*big.Int)
		return ok && l.Cmp(r) == 0
	case *big.Float:
		r, ok := right.(*big.Float)
		return ok && l.Cmp(r) == 0
	case bool, rune, string:
		return left == right
	default:
		return false
	}
}

func (i *Interpreter) evalAdd(left, right any) (any, *errors.RuntimeError) {
	if ls, ok := left.(string); ok {
		if rs, ok := right.(string); ok {
			return ls + rs, nil
		}
	}
	return i.evalArith(ast.OpAdd, left, right)
}

// evalArith implements -, * and / (and the numeric branch of +) in
// arbitrary precision. Decimal division rounds HALF_EVEN, per the
// arbitrary-precision numerics design note.
func (i *Interpreter) evalArith(op ast.BinaryOp, left, right any) (any, *errors.RuntimeError) {
	switch l := left.(type) {
	case *big.Int:
		r, ok := right.(*big.Int)
		if !ok {
			return nil, errors.NewRuntimeError("%s requires two Integer operands", op)
		}
		return intArith(op, l, r)
	case *big.Float:
		r, ok := right.(*big.Float)
		if !ok {
			return nil, errors.NewRuntimeError("%s requires two Decimal operands", op)
		}
		return decimalArith(op, l, r)
	default:
		return nil, errors.NewRuntimeError("%s is not defined for this operand type", op)
	}
}

func intArith(op ast.BinaryOp, l, r *big.Int) (any, *errors.RuntimeError) {
	result := new(big.Int)
	switch op {
	case ast.OpAdd:
		return result.Add(l, r), nil
	case ast.OpSub:
		return result.Sub(l, r), nil
	case ast.OpMul:
		return result.Mul(l, r), nil
	case ast.OpDiv:
		if r.Sign() == 0 {
			return nil, errors.NewRuntimeError("division by zero")
		}
		return result.Quo(l, r), nil
	default:
		return nil, errors.NewRuntimeError("unknown arithmetic operator %s", op)
	}
}

func decimalArith(op ast.BinaryOp, l, r *big.Float) (any, *errors.RuntimeError) {
	prec := l.Prec()
	if r.Prec() > prec {
		prec = r.Prec()
	}
	result := new(big.Float).SetPrec(prec).SetMode(big.ToNearestEven)
	switch op {
	case ast.OpAdd:
		return result.Add(l, r), nil
	case ast.OpSub:
		return result.Sub(l, r), nil
	case ast.OpMul:
		return result.Mul(l, r), nil
	case ast.OpDiv:
		if r.Sign() == 0 {
			return nil, errors.NewRuntimeError("division by zero")
		}
		return result.Quo(l, r), nil
	default:
		return nil, errors.NewRuntimeError("unknown arithmetic operator %s", op)
	}
}
