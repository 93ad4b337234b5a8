// Package env implements the shared scope/symbol model used by both the
// semantic analyzer and the interpreter: built-in Types, Variables,
// Functions and the Scope tree that binds them.
package env

import "fmt"

// Kind enumerates the built-in types a PLC value can have.
type Kind int

const (
	KindAny Kind = iota
	KindNil
	KindBoolean
	KindInteger
	KindDecimal
	KindCharacter
	KindString
	KindComparable
	KindIntegerIterable
)

// Type is a named, process-wide built-in type. A Type may expose a method
// table, looked up by Access/Function resolution on a receiver of that
// type.
type Type struct {
	Kind    Kind
	Name    string
	JVMName string
	Methods map[string]*Function
}

func (t *Type) String() string { return t.Name }

// comparableKinds are the concrete kinds Comparable is meant to stand for.
// requireAssignable treats Comparable as a wildcard over exactly this set
// (see DESIGN.md's resolution of the corresponding Open Question).
var comparableKinds = map[Kind]bool{
	KindInteger:   true,
	KindDecimal:   true,
	KindCharacter: true,
	KindString:    true,
}

var (
	Any              = &Type{Kind: KindAny, Name: "Any", JVMName: "Object"}
	Nil              = &Type{Kind: KindNil, Name: "Nil", JVMName: "Object"}
	Boolean          = &Type{Kind: KindBoolean, Name: "Boolean", JVMName: "boolean"}
	Integer          = &Type{Kind: KindInteger, Name: "Integer", JVMName: "int"}
	Decimal          = &Type{Kind: KindDecimal, Name: "Decimal", JVMName: "double"}
	Character        = &Type{Kind: KindCharacter, Name: "Character", JVMName: "char"}
	String           = &Type{Kind: KindString, Name: "String", JVMName: "String"}
	Comparable       = &Type{Kind: KindComparable, Name: "Comparable", JVMName: "Comparable"}
	IntegerIterable  = &Type{Kind: KindIntegerIterable, Name: "IntegerIterable", JVMName: "Iterable<Integer>"}
)

func init() {
	String.Methods = map[string]*Function{
		"length": {Name: "length", JVMName: "length", ParameterTypes: nil, ReturnType: Integer},
		"charAt": {Name: "charAt", JVMName: "charAt", ParameterTypes: []*Type{Integer}, ReturnType: Character},
	}
}

// ByName looks up one of the built-in types by its source-level name.
func ByName(name string) (*Type, bool) {
	for _, t := range []*Type{Any, Nil, Boolean, Integer, Decimal, Character, String, Comparable, IntegerIterable} {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// RequireAssignable reports whether a value of type actual may be used
// where target is expected.
//
// target == Comparable is restricted to the set {Integer, Decimal,
// Character, String} rather than treated as a universal wildcard — see
// DESIGN.md's resolution of the corresponding Open Question.
//
// actual == Any is always assignable, in either direction: the grammar has
// no parameter type annotation syntax, so every method parameter is
// statically Any, and any expression built from one (an arithmetic result,
// a return value) must still type-check against a concrete declared type.
// The real check happens at runtime.
func RequireAssignable(target, actual *Type) bool {
	if target == actual {
		return true
	}
	if target == Any || actual == Any {
		return true
	}
	if target == Comparable {
		return comparableKinds[actual.Kind]
	}
	return false
}

// Variable is a named, mutable storage slot. Value is used only by the
// interpreter; the analyzer leaves it nil.
type Variable struct {
	Name    string
	JVMName string
	Type    *Type
	Value   any
}

// Function is a free function or method, either user-defined or built-in.
// Implementation is set only on the interpreter's functions: the host code
// of a built-in, or an adapter that runs a user-defined method's body. The
// analyzer's functions leave it nil.
type Function struct {
	Name           string
	JVMName        string
	ParameterTypes []*Type
	ReturnType     *Type
	Implementation func(args []any) (any, error)

	// Definition-site scope and parameter names, set for user-defined
	// functions so that invocation can open a scope chained on the
	// function's defining scope rather than the caller's.
	DefiningScope *Scope
	Params        []string
}

// funcKey identifies a function by (name, arity); PLC has no overloading
// beyond arity.
type funcKey struct {
	name  string
	arity int
}

// Scope is a node in a tree of symbol tables with one optional parent.
// Lookups walk to the root; definitions always install into the current
// scope, so a child scope hides any parent entry of the same name without
// erroring.
type Scope struct {
	parent    *Scope
	variables map[string]*Variable
	functions map[funcKey]*Function
}

// NewRootScope creates a scope with no parent.
func NewRootScope() *Scope {
	return &Scope{
		variables: make(map[string]*Variable),
		functions: make(map[funcKey]*Function),
	}
}

// NewChild creates a scope enclosed by s.
func (s *Scope) NewChild() *Scope {
	return &Scope{
		parent:    s,
		variables: make(map[string]*Variable),
		functions: make(map[funcKey]*Function),
	}
}

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }

// DefineVariable installs v into the current scope, shadowing any
// same-named variable in an outer scope.
func (s *Scope) DefineVariable(v *Variable) {
	s.variables[v.Name] = v
}

// LookupVariable walks from s to the root looking for name.
func (s *Scope) LookupVariable(name string) (*Variable, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.variables[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// DefineFunction installs fn under (fn.Name, arity) into the current scope.
func (s *Scope) DefineFunction(fn *Function, arity int) {
	s.functions[funcKey{fn.Name, arity}] = fn
}

// LookupFunction walks from s to the root looking for (name, arity).
func (s *Scope) LookupFunction(name string, arity int) (*Function, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if fn, ok := cur.functions[funcKey{name, arity}]; ok {
			return fn, true
		}
	}
	return nil, false
}

// Guard is returned by Enter and restores the previous current scope when
// released. It is the "scoped acquisition primitive" the resource model
// requires: every nested-scope entry in the analyzer and interpreter
// releases its guard on every exit path including error propagation and
// non-local return, via defer or, in the interpreter's loops, right after
// each iteration's body returns.
type Guard struct {
	restore func()
}

// Release restores the scope that was current before Enter was called.
func (g *Guard) Release() {
	if g != nil && g.restore != nil {
		g.restore()
	}
}

// Cursor tracks the "current scope" pointer that the analyzer or
// interpreter thread through a walk, and lets callers enter a nested scope
// with a deferred, guaranteed restore.
type Cursor struct {
	current *Scope
}

// NewCursor creates a Cursor seeded at root.
func NewCursor(root *Scope) *Cursor {
	return &Cursor{current: root}
}

// Current returns the scope the cursor currently points at.
func (c *Cursor) Current() *Scope { return c.current }

// Enter moves the cursor into a new child of the current scope and returns
// a Guard that restores the previous current scope on Release.
func (c *Cursor) Enter() *Guard {
	prev := c.current
	c.current = c.current.NewChild()
	return &Guard{restore: func() { c.current = prev }}
}

// EnterScope moves the cursor into an already-constructed scope (used for
// method invocation, which must resume at the function's defining scope
// rather than a fresh child of the current one).
func (c *Cursor) EnterScope(s *Scope) *Guard {
	prev := c.current
	c.current = s
	return &Guard{restore: func() { c.current = prev }}
}

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "Any"
	case KindNil:
		return "Nil"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindDecimal:
		return "Decimal"
	case KindCharacter:
		return "Character"
	case KindString:
		return "String"
	case KindComparable:
		return "Comparable"
	case KindIntegerIterable:
		return "IntegerIterable"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}
