// Package semantic implements name resolution and static type checking
// over the AST produced by the parser.
package semantic

import (
	"math"
	"math/big"

	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/ast"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/env"
	"github.com/dmorsecode/Lexer-Parser-Analyzer-Project/internal/errors"
)

// Analyzer walks a parsed Source in document order, binding symbols and
// resolving the type of every expression node in place.
type Analyzer struct {
	root    *env.Scope
	cursor  *env.Cursor
	method  *ast.Method // the method currently being analyzed, for Return
	returns []*env.Type // analyzed type of each Return seen in the current method body
}

// New creates an Analyzer with a fresh root scope populated with the
// built-in bindings every PLC program gets (see installBuiltins).
func New() *Analyzer {
	root := env.NewRootScope()
	installBuiltins(root)
	return &Analyzer{root: root, cursor: env.NewCursor(root)}
}

// Analyze performs full semantic analysis of src, decorating its AST in
// place, and returns the first violation found.
func Analyze(src *ast.Source) *errors.AnalysisError {
	a := New()
	return a.analyzeSource(src)
}

func (a *Analyzer) analyzeSource(src *ast.Source) *errors.AnalysisError {
	for _, f := range src.Fields {
		if err := a.analyzeField(f); err != nil {
			return err
		}
	}

	// Method symbols are all defined up front so forward calls between
	// methods resolve regardless of declaration order.
	for _, m := range src.Methods {
		if err := a.defineMethodSymbol(m); err != nil {
			return err
		}
	}
	for _, m := range src.Methods {
		if err := a.analyzeMethodBody(m); err != nil {
			return err
		}
	}

	mainFn, ok := a.root.LookupFunction("main", 0)
	if !ok || !env.RequireAssignable(env.Integer, mainFn.ReturnType) {
		return errors.NewAnalysisErrorNoPos("a function named 'main' with arity 0 and return type Integer must exist")
	}
	return nil
}

func (a *Analyzer) analyzeField(f *ast.Field) *errors.AnalysisError {
	typ, err := a.analyzeDeclarationLike(f.Pos(), f.HasType, f.TypeName, f.Value)
	if err != nil {
		return err
	}
	f.Symbol = &env.Variable{Name: f.Name, JVMName: f.Name, Type: typ}
	a.cursor.Current().DefineVariable(f.Symbol)
	return nil
}

// analyzeDeclarationLike implements the Declaration type rule shared by
// Field and Declaration: must have a type annotation or an initializer;
// infer from the initializer when no annotation is present; then enforce
// assignability between the two when both are present.
func (a *Analyzer) analyzeDeclarationLike(pos int, hasType bool, typeName string, value ast.Expression) (*env.Type, *errors.AnalysisError) {
	if !hasType && value == nil {
		return nil, errors.NewAnalysisError(pos, "declaration must have a type annotation or an initializer")
	}

	var declared *env.Type
	if hasType {
		t, ok := env.ByName(typeName)
		if !ok {
			return nil, errors.NewAnalysisError(pos, "unknown type %q", typeName)
		}
		declared = t
	}

	if value == nil {
		return declared, nil
	}

	actual, err := a.analyzeExpression(value)
	if err != nil {
		return nil, err
	}

	if declared == nil {
		return actual, nil
	}
	if !env.RequireAssignable(declared, actual) {
		return nil, errors.NewAnalysisError(pos, "cannot assign %s to declaration of type %s", actual, declared)
	}
	return declared, nil
}

func (a *Analyzer) defineMethodSymbol(m *ast.Method) *errors.AnalysisError {
	paramTypes := make([]*env.Type, len(m.Params))
	for i := range m.Params {
		paramTypes[i] = env.Any
	}

	fn := &env.Function{
		Name:           m.Name,
		JVMName:        m.Name,
		ParameterTypes: paramTypes,
		ReturnType:     env.Any, // refined once the body has been analyzed, see analyzeMethodBody
		DefiningScope:  a.root,
		Params:         m.Params,
	}
	m.Symbol = fn
	a.root.DefineFunction(fn, len(m.Params))
	return nil
}

// analyzeMethodBody analyzes m's body, then derives m's declared return
// type from the analyzed types of the Return statements actually found in
// it (analyzeReturn appends to a.returns as it walks). The grammar has no
// return-type annotation syntax (see DESIGN.md's resolution of this gap),
// so this analyzed-type unification is the only source of truth for a
// method's return type; a method that never returns is Any.
func (a *Analyzer) analyzeMethodBody(m *ast.Method) *errors.AnalysisError {
	guard := a.cursor.Enter()
	defer guard.Release()

	for i, name := range m.Params {
		a.cursor.Current().DefineVariable(&env.Variable{Name: name, JVMName: name, Type: m.Symbol.ParameterTypes[i]})
	}

	prevMethod := a.method
	prevReturns := a.returns
	a.method = m
	a.returns = nil
	defer func() {
		a.method = prevMethod
		a.returns = prevReturns
	}()

	if err := a.analyzeStatements(m.Body); err != nil {
		return err
	}

	unified, ok := unifyReturnTypes(a.returns)
	if !ok {
		return errors.NewAnalysisError(m.Pos(), "method %s has inconsistent return types across its RETURN statements", m.Name)
	}
	m.Symbol.ReturnType = unified
	return nil
}

// unifyReturnTypes folds the analyzed types of every Return statement in a
// method body into a single declared type. Any defers to whatever the
// other returns settle on; two distinct concrete types cannot be unified.
func unifyReturnTypes(types []*env.Type) (*env.Type, bool) {
	result := env.Any
	for _, t := range types {
		if t == env.Any {
			continue
		}
		if result == env.Any {
			result = t
			continue
		}
		if result != t {
			return nil, false
		}
	}
	return result, true
}

func (a *Analyzer) analyzeStatements(stmts []ast.Statement) *errors.AnalysisError {
	for _, s := range stmts {
		if err := a.analyzeStatement(s); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeStatement(stmt ast.Statement) *errors.AnalysisError {
	switch s := stmt.(type) {
	case *ast.Declaration:
		return a.analyzeLocalDeclaration(s)
	case *ast.Assignment:
		return a.analyzeAssignment(s)
	case *ast.ExpressionStatement:
		return a.analyzeExpressionStatement(s)
	case *ast.If:
		return a.analyzeIf(s)
	case *ast.For:
		return a.analyzeFor(s)
	case *ast.While:
		return a.analyzeWhile(s)
	case *ast.Return:
		return a.analyzeReturn(s)
	default:
		return errors.NewAnalysisErrorNoPos("unknown statement type %T", stmt)
	}
}

func (a *Analyzer) analyzeLocalDeclaration(d *ast.Declaration) *errors.AnalysisError {
	typ, err := a.analyzeDeclarationLike(d.Pos(), d.HasType, d.TypeName, d.Value)
	if err != nil {
		return err
	}
	d.Symbol = &env.Variable{Name: d.Name, JVMName: d.Name, Type: typ}
	a.cursor.Current().DefineVariable(d.Symbol)
	return nil
}

func (a *Analyzer) analyzeAssignment(asn *ast.Assignment) *errors.AnalysisError {
	if asn.Receiver.Receiver != nil {
		return errors.NewAnalysisError(asn.Pos(), "cannot assign to %q: method results are not assignable", asn.Receiver.Name)
	}

	targetType, err := a.analyzeExpression(asn.Receiver)
	if err != nil {
		return err
	}
	valueType, err := a.analyzeExpression(asn.Value)
	if err != nil {
		return err
	}
	if !env.RequireAssignable(targetType, valueType) {
		return errors.NewAnalysisError(asn.Pos(), "cannot assign %s to %s", valueType, targetType)
	}
	return nil
}

func (a *Analyzer) analyzeExpressionStatement(s *ast.ExpressionStatement) *errors.AnalysisError {
	if _, ok := s.Expr.(*ast.Function); !ok {
		return errors.NewAnalysisError(s.Pos(), "expression statement must be a call")
	}
	_, err := a.analyzeExpression(s.Expr)
	return err
}

func (a *Analyzer) analyzeIf(stmt *ast.If) *errors.AnalysisError {
	condType, err := a.analyzeExpression(stmt.Condition)
	if err != nil {
		return err
	}
	if !env.RequireAssignable(env.Boolean, condType) {
		return errors.NewAnalysisError(stmt.Condition.Pos(), "if condition must be Boolean, got %s", condType)
	}
	if len(stmt.Then) == 0 {
		return errors.NewAnalysisError(stmt.Pos(), "if's then-branch must be non-empty")
	}

	if err := a.analyzeBlock(stmt.Then); err != nil {
		return err
	}
	if len(stmt.Else) > 0 {
		if err := a.analyzeBlock(stmt.Else); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeFor(stmt *ast.For) *errors.AnalysisError {
	iterType, err := a.analyzeExpression(stmt.Iterable)
	if err != nil {
		return err
	}
	if !env.RequireAssignable(env.IntegerIterable, iterType) {
		return errors.NewAnalysisError(stmt.Iterable.Pos(), "for's iterable must be an IntegerIterable, got %s", iterType)
	}
	if len(stmt.Body) == 0 {
		return errors.NewAnalysisError(stmt.Pos(), "for's body must be non-empty")
	}

	guard := a.cursor.Enter()
	defer guard.Release()

	stmt.Symbol = &env.Variable{Name: stmt.Name, JVMName: stmt.Name, Type: env.Integer}
	a.cursor.Current().DefineVariable(stmt.Symbol)

	return a.analyzeStatements(stmt.Body)
}

func (a *Analyzer) analyzeWhile(stmt *ast.While) *errors.AnalysisError {
	condType, err := a.analyzeExpression(stmt.Condition)
	if err != nil {
		return err
	}
	if !env.RequireAssignable(env.Boolean, condType) {
		return errors.NewAnalysisError(stmt.Condition.Pos(), "while condition must be Boolean, got %s", condType)
	}
	return a.analyzeBlock(stmt.Body)
}

func (a *Analyzer) analyzeBlock(stmts []ast.Statement) *errors.AnalysisError {
	guard := a.cursor.Enter()
	defer guard.Release()
	return a.analyzeStatements(stmts)
}

func (a *Analyzer) analyzeReturn(stmt *ast.Return) *errors.AnalysisError {
	if a.method == nil {
		return errors.NewAnalysisError(stmt.Pos(), "return outside of a method body")
	}

	actual, err := a.analyzeExpression(stmt.Value)
	if err != nil {
		return err
	}

	a.returns = append(a.returns, actual)
	return nil
}

// analyzeExpression dispatches on concrete expression type, sets the
// node's resolved type, and returns it.
func (a *Analyzer) analyzeExpression(expr ast.Expression) (*env.Type, *errors.AnalysisError) {
	var t *env.Type
	var err *errors.AnalysisError

	switch e := expr.(type) {
	case *ast.Literal:
		t, err = a.analyzeLiteral(e)
	case *ast.Group:
		t, err = a.analyzeGroup(e)
	case *ast.Binary:
		t, err = a.analyzeBinary(e)
	case *ast.Access:
		t, err = a.analyzeAccess(e)
	case *ast.Function:
		t, err = a.analyzeCall(e)
	default:
		return nil, errors.NewAnalysisErrorNoPos("unknown expression type %T", expr)
	}

	if err != nil {
		return nil, err
	}
	expr.SetType(t)
	return t, nil
}

func (a *Analyzer) analyzeLiteral(lit *ast.Literal) (*env.Type, *errors.AnalysisError) {
	switch v := lit.Value.(type) {
	case nil:
		return env.Nil, nil
	case bool:
		return env.Boolean, nil
	case *big.Int:
		if !fitsInt32(v) {
			return nil, errors.NewAnalysisError(lit.Pos(), "integer literal %s out of 32-bit signed range", v.String())
		}
		return env.Integer, nil
	case *big.Float:
		if !fitsFloat64(v) {
			return nil, errors.NewAnalysisError(lit.Pos(), "decimal literal %s out of double range", v.Text('g', -1))
		}
		return env.Decimal, nil
	case rune:
		return env.Character, nil
	case string:
		return env.String, nil
	default:
		return nil, errors.NewAnalysisErrorNoPos("unsupported literal value %v", v)
	}
}

func fitsInt32(n *big.Int) bool {
	return n.IsInt64() && n.Int64() >= math.MinInt32 && n.Int64() <= math.MaxInt32
}

func fitsFloat64(f *big.Float) bool {
	v, _ := f.Float64()
	return !math.IsInf(v, 0)
}

func (a *Analyzer) analyzeGroup(g *ast.Group) (*env.Type, *errors.AnalysisError) {
	if _, ok := g.Inner.(*ast.Binary); !ok {
		return nil, errors.NewAnalysisError(g.Pos(), "parenthesized expression must contain a binary operator expression")
	}
	return a.analyzeExpression(g.Inner)
}

func (a *Analyzer) analyzeBinary(b *ast.Binary) (*env.Type, *errors.AnalysisError) {
	left, err := a.analyzeExpression(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := a.analyzeExpression(b.Right)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case ast.OpAnd, ast.OpOr:
		if !env.RequireAssignable(env.Boolean, left) || !env.RequireAssignable(env.Boolean, right) {
			return nil, errors.NewAnalysisError(b.Pos(), "%s requires Boolean operands, got %s and %s", b.Op, left, right)
		}
		return env.Boolean, nil

	case ast.OpLT, ast.OpLTEq, ast.OpGT, ast.OpGTEq, ast.OpEq, ast.OpNotEq:
		if !env.RequireAssignable(env.Comparable, left) || !env.RequireAssignable(env.Comparable, right) {
			return nil, errors.NewAnalysisError(b.Pos(), "%s requires Comparable operands, got %s and %s", b.Op, left, right)
		}
		return env.Boolean, nil

	case ast.OpAdd:
		if left == env.String || right == env.String {
			return env.String, nil
		}
		return a.analyzeNumericPair(b, left, right)

	case ast.OpSub, ast.OpMul, ast.OpDiv:
		return a.analyzeNumericPair(b, left, right)

	default:
		return nil, errors.NewAnalysisErrorNoPos("unknown binary operator %s", b.Op)
	}
}

// analyzeNumericPair implements the shared Binary +, -, *, / type rule:
// both sides Integer, or both sides Decimal. Either side may also be Any
// (see env.RequireAssignable); the pair's static type is then Any too, since
// which of Integer/Decimal it resolves to is only known at runtime.
func (a *Analyzer) analyzeNumericPair(b *ast.Binary, left, right *env.Type) (*env.Type, *errors.AnalysisError) {
	if left == env.Integer && right == env.Integer {
		return env.Integer, nil
	}
	if left == env.Decimal && right == env.Decimal {
		return env.Decimal, nil
	}
	if left == env.Any || right == env.Any {
		return env.Any, nil
	}
	return nil, errors.NewAnalysisError(b.Pos(), "%s requires two Integer or two Decimal operands, got %s and %s", b.Op, left, right)
}

func (a *Analyzer) analyzeAccess(acc *ast.Access) (*env.Type, *errors.AnalysisError) {
	if acc.Receiver == nil {
		v, ok := a.cursor.Current().LookupVariable(acc.Name)
		if !ok {
			return nil, errors.NewAnalysisError(acc.Pos(), "undefined variable %q", acc.Name)
		}
		acc.Symbol = v
		return v.Type, nil
	}

	receiverType, err := a.analyzeExpression(acc.Receiver)
	if err != nil {
		return nil, err
	}
	fn, ok := receiverType.Methods[acc.Name]
	if !ok {
		return nil, errors.NewAnalysisError(acc.Pos(), "type %s has no field or method %q", receiverType, acc.Name)
	}
	acc.Symbol = &env.Variable{Name: acc.Name, Type: fn.ReturnType}
	return fn.ReturnType, nil
}

func (a *Analyzer) analyzeCall(call *ast.Function) (*env.Type, *errors.AnalysisError) {
	var fn *env.Function
	var ok bool

	if call.Receiver == nil {
		fn, ok = a.cursor.Current().LookupFunction(call.Name, len(call.Args))
		if !ok {
			return nil, errors.NewAnalysisError(call.Pos(), "undefined function %s/%d", call.Name, len(call.Args))
		}
	} else {
		receiverType, err := a.analyzeExpression(call.Receiver)
		if err != nil {
			return nil, err
		}
		fn, ok = receiverType.Methods[call.Name]
		if !ok {
			return nil, errors.NewAnalysisError(call.Pos(), "type %s has no method %q", receiverType, call.Name)
		}
	}
	call.Symbol = fn

	if len(call.Args) != len(fn.ParameterTypes) {
		return nil, errors.NewAnalysisError(call.Pos(), "%s expects %d argument(s), got %d", call.Name, len(fn.ParameterTypes), len(call.Args))
	}
	for i, arg := range call.Args {
		argType, err := a.analyzeExpression(arg)
		if err != nil {
			return nil, err
		}
		if !env.RequireAssignable(fn.ParameterTypes[i], argType) {
			return nil, errors.NewAnalysisError(arg.Pos(), "argument %d to %s: cannot assign %s to %s", i+1, call.Name, argType, fn.ParameterTypes[i])
		}
	}

	return fn.ReturnType, nil
}
