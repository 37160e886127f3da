/*
Package alvin implements Alvin, a small dynamically typed Lisp.

Alvin programs are parenthesized prefix expressions. Every symbol is either a
keyword, a number, a boolean literal (#t or #f), or a variable. The keyword
set is fixed when an interpreter is created, apart from extensions, which are
keywords added and withdrawn at run time and recorded in a text store.

The interpreter can be embedded in another program. Use NewInterp to create
an interpreter, then DoString or DoFile to run source. Host functions can be
made available either as extensions with Register, or as importable modules
with ProvideModule. Packages under coreext provide the standard modules;
import coreext for its side effects to install all of them.

# Alvin Primer

Hello World in Alvin:

	(show 'Hello 'world)

show is a regular keyword: its operands are evaluated, then it writes them
separated by spaces. The quote mark turns a word into data, so 'Hello
evaluates to the word Hello rather than to the variable named Hello.

Variables are bound with set and rebound with update:

	(set x 1)
	(update x (+ x 1))

set binds in the innermost scope unless given a scope number; update rebinds
the innermost existing binding and fails if there is none. burrow opens a new
scope and surface closes it. let evaluates an expression with temporary
bindings:

	(let ((a 1) (b 2)) (+ a b))

Functions are defined with def or created anonymously with lambda:

	(def square (n) (* n n))
	(set inc (lambda (n) (+ n 1)))
	(square (inc 2))

A function captures a copy of the local scopes visible where it is created,
so functions returned from other functions keep their own state:

	(def adder (n) (lambda (m) (+ n m)))
	(set add7 (adder 7))
	(add7 7)

Anonymous functions see themselves as self, which allows recursion without a
name.

Conditionals use cond, which evaluates only the branch it takes:

	(cond ((< x 0) 'negative)
	      ((== x 0) 'zero)
	      (else 'positive))

Loops use until, which runs its body and then its increment until the
condition holds:

	(set i 0)
	(until ((== i 3) (update i (++ i))) (show i))

Lists are data. A list whose head is not callable evaluates each element, so
(1 2 3) is its own value. car and cdr take lists apart, and any composition
like cadr or cddr is also a keyword; letters apply from right to left, so
cadr is the car of the cdr.

Templates define objects:

	(template Point (x y)
	  (method norm () (+ (* x x) (* y y))))
	(set p (new Point 3 4))
	(p.norm)

Host modules are imported and accessed with dotted names:

	(import math)
	(math.sqrt 16)

Extensions are added in blocks:

	@start
	#INCLUDE twice as twice
	(lambda (x) (* 2 x))
	@end

and withdrawn with (delex twice).
*/
package alvin

import (
	"github.com/zephyrtronium/alvin/internal"
)

// An Interp evaluates Alvin programs.
type Interp = internal.Interp

// Value is an Alvin value. A nil Value is None.
type Value = internal.Value

// Kind identifies the concrete type of a Value.
type Kind = internal.Kind

// Int is an integer.
type Int = internal.Int

// Float is a floating-point number.
type Float = internal.Float

// Bool is a boolean.
type Bool = internal.Bool

// Symbol is a word. Evaluated, a symbol names a variable or a keyword.
type Symbol = internal.Symbol

// Quoted is a word used as data.
type Quoted = internal.Quoted

// List is a list, which is both code and data.
type List = internal.List

// Function is a user-defined function.
type Function = internal.Function

// Template is an object blueprint created with the template keyword.
type Template = internal.Template

// Instance is an object created from a Template.
type Instance = internal.Instance

// Module is a namespace of host values available to import.
type Module = internal.Module

// Builtin is a host function callable from Alvin code.
type Builtin = internal.Builtin

// Primitive is the signature of host functions.
type Primitive = internal.Primitive

// Keywords are an interpreter's keyword tables.
type Keywords = internal.Keywords

// Category is the evaluation rule a keyword follows.
type Category = internal.Category

// Keyword categories.
const (
	NotKeyword = internal.NotKeyword
	Regular    = internal.Regular
	Irregular  = internal.Irregular
	Boolean    = internal.Boolean
	Extension  = internal.Extension
	Accessor   = internal.Accessor
	Special    = internal.Special
)

// ClosureID identifies an entry in the closure registry.
type ClosureID = internal.ClosureID

// Option configures an interpreter.
type Option = internal.Option

// Environment is a stack of scopes.
type Environment = internal.Environment

// Frame is one scope of an environment.
type Frame = internal.Frame

// Store is the backing store of the extension registry.
type Store = internal.Store

// MemStore is a Store held in memory.
type MemStore = internal.MemStore

// FileStore is a Store in a file.
type FileStore = internal.FileStore

// ExtensionInfo describes a registered extension.
type ExtensionInfo = internal.ExtensionInfo

// Error types.
type (
	SyntaxError            = internal.SyntaxError
	UndefinedVariable      = internal.UndefinedVariable
	UpdateBeforeDefinition = internal.UpdateBeforeDefinition
	DeleteBeforeDefinition = internal.DeleteBeforeDefinition
	ArityError             = internal.ArityError
	AccessorError          = internal.AccessorError
	RecursionLimitExceeded = internal.RecursionLimitExceeded
	ExtensionWithdrawError = internal.ExtensionWithdrawError
	ExtensionError         = internal.ExtensionError
	ArithmeticError        = internal.ArithmeticError
	TypeError              = internal.TypeError
	CondError              = internal.CondError
	ImportError            = internal.ImportError
	ClosureError           = internal.ClosureError
)

// Syntax error kinds.
const (
	UnmatchedParenthesis       = internal.UnmatchedParenthesis
	InvalidExpressionStructure = internal.InvalidExpressionStructure
	DanglingQuote              = internal.DanglingQuote
)

// Version is the interpreter version.
const Version = internal.Version

// Interpreter defaults.
const (
	DefaultRecursionLimit = internal.DefaultRecursionLimit
	DefaultSourceExt      = internal.DefaultSourceExt
)

// NewInterp creates and initializes an interpreter.
func NewInterp(opts ...Option) *Interp {
	return internal.NewInterp(opts...)
}

// Interpreter options.
var (
	WithRecursionLimit = internal.WithRecursionLimit
	WithStdio          = internal.WithStdio
	WithLogger         = internal.WithLogger
	WithSourceExt      = internal.WithSourceExt
	WithArgs           = internal.WithArgs
)

// NewMemStore creates an in-memory extension store with the given content.
func NewMemStore(content string) *MemStore {
	return internal.NewMemStore(content)
}

// NewBuiltin creates a host function value.
func NewBuiltin(name Symbol, fn Primitive) *Builtin {
	return internal.NewBuiltin(name, fn)
}

// Text returns s as a textual datum.
func Text(s string) Value {
	return internal.Text(s)
}

// TextOf returns the text of a word or quoted word.
func TextOf(v Value) (string, bool) {
	return internal.TextOf(v)
}

// Print returns the printed form of v.
func Print(v Value) string {
	return internal.Print(v)
}

// Equal reports whether a and b are the same datum.
func Equal(a, b Value) bool {
	return internal.Equal(a, b)
}

// Complete reports whether src holds complete input: balanced parentheses
// and no unterminated extension block.
func Complete(src string) (bool, error) {
	return internal.Complete(src)
}

// ErrorName returns the name used when reporting err to a user.
func ErrorName(err error) string {
	return internal.ErrorName(err)
}

// Datum strips one level of quoting from v.
func Datum(v Value) Value {
	return internal.Datum(v)
}

// KindOf returns the kind of v.
func KindOf(v Value) Kind {
	return internal.KindOf(v)
}
