package internal

import (
	"fmt"
	"strings"
)

// Value is any Alvin datum. The set of Value types is closed: Int, Float,
// Bool, Symbol, Quoted, List, *Function, *Template, *Instance, *Module, and
// *Builtin. A nil Value is None, the result of statements like show and set.
type Value interface {
	kind() Kind
}

// Kind identifies the dynamic type of a Value.
type Kind int

const (
	NoneKind Kind = iota
	IntKind
	FloatKind
	BoolKind
	SymbolKind
	QuotedKind
	ListKind
	FunctionKind
	TemplateKind
	InstanceKind
	ModuleKind
	BuiltinKind
)

var kindNames = [...]string{
	NoneKind:     "None",
	IntKind:      "Int",
	FloatKind:    "Float",
	BoolKind:     "Bool",
	SymbolKind:   "Symbol",
	QuotedKind:   "Quoted",
	ListKind:     "List",
	FunctionKind: "Function",
	TemplateKind: "Template",
	InstanceKind: "Instance",
	ModuleKind:   "Module",
	BuiltinKind:  "Builtin",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// KindOf returns the Kind of v, with NoneKind for nil.
func KindOf(v Value) Kind {
	if v == nil {
		return NoneKind
	}
	return v.kind()
}

// Int is an integer number.
type Int int64

// Float is a floating-point number.
type Float float64

// Bool is #t or #f.
type Bool bool

// Symbol is an identifier or bare word. Unevaluated, it names a variable or a
// keyword; as data it appears only inside a Quoted.
type Symbol string

// Quoted is a datum shielded from evaluation. Quoting a symbol produces a
// Quoted symbol, and quoting a list shields every symbol inside it, so data
// produced by evaluation always evaluates to itself.
type Quoted struct {
	Datum Value
}

// List is an ordered sequence of values. It is both the syntax tree for
// applications and the runtime list datum.
type List []Value

func (Int) kind() Kind       { return IntKind }
func (Float) kind() Kind     { return FloatKind }
func (Bool) kind() Kind      { return BoolKind }
func (Symbol) kind() Kind    { return SymbolKind }
func (Quoted) kind() Kind    { return QuotedKind }
func (List) kind() Kind      { return ListKind }
func (*Function) kind() Kind { return FunctionKind }
func (*Template) kind() Kind { return TemplateKind }
func (*Instance) kind() Kind { return InstanceKind }
func (*Module) kind() Kind   { return ModuleKind }
func (*Builtin) kind() Kind  { return BuiltinKind }

// Text returns s wrapped as a textual datum.
func Text(s string) Value {
	return Quoted{Datum: Symbol(s)}
}

// Datum strips one level of quoting from v.
func Datum(v Value) Value {
	if q, ok := v.(Quoted); ok {
		return q.Datum
	}
	return v
}

// TextOf returns the text of a symbol or quoted symbol.
func TextOf(v Value) (string, bool) {
	switch x := Datum(v).(type) {
	case Symbol:
		return string(x), true
	}
	return "", false
}

// Shield converts a syntax datum into runtime data: every symbol it contains
// becomes a Quoted symbol. Lists are copied.
func Shield(v Value) Value {
	switch x := v.(type) {
	case Symbol:
		return Quoted{Datum: x}
	case List:
		r := make(List, len(x))
		for i, e := range x {
			r[i] = Shield(e)
		}
		return r
	}
	return v
}

// Unshield reverses Shield, turning data back into evaluable syntax.
func Unshield(v Value) Value {
	switch x := v.(type) {
	case Quoted:
		return Unshield(x.Datum)
	case List:
		r := make(List, len(x))
		for i, e := range x {
			r[i] = Unshield(e)
		}
		return r
	}
	return v
}

// Truthy reports whether v counts as true in a condition.
func Truthy(v Value) bool {
	switch x := Datum(v).(type) {
	case nil:
		return false
	case Bool:
		return bool(x)
	case Int:
		return x != 0
	case Float:
		return x != 0
	case Symbol:
		return x != ""
	case List:
		return len(x) > 0
	}
	return true
}

// Equal reports whether a and b are the same datum. Numbers compare by value
// across Int and Float, quoting is ignored, and lists compare elementwise.
// Functions, templates, instances, modules, and builtins compare by identity.
func Equal(a, b Value) bool {
	a, b = Datum(a), Datum(b)
	switch x := a.(type) {
	case nil:
		return b == nil
	case Int:
		switch y := b.(type) {
		case Int:
			return x == y
		case Float:
			return Float(x) == y
		}
		return false
	case Float:
		switch y := b.(type) {
		case Int:
			return x == Float(y)
		case Float:
			return x == y
		}
		return false
	case List:
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	}
	return a == b
}

// identical reports whether a and b are the same syntax, without the numeric
// and quoting leniency of Equal. It is the fixed-point test for data lists.
func identical(a, b Value) bool {
	x, ok := a.(List)
	if !ok {
		if _, ok := b.(List); ok {
			return false
		}
		return a == b
	}
	y, ok := b.(List)
	if !ok || len(x) != len(y) {
		return false
	}
	for i := range x {
		if !identical(x[i], y[i]) {
			return false
		}
	}
	return true
}

// copyValue copies lists deeply so that frames copied from one environment to
// another do not alias. Other values are shared.
func copyValue(v Value) Value {
	if x, ok := v.(List); ok {
		r := make(List, len(x))
		for i, e := range x {
			r[i] = copyValue(e)
		}
		return r
	}
	return v
}

// String returns the printed form of the list.
func (l List) String() string {
	return Print(l)
}

func (q Quoted) String() string {
	return Print(q)
}

// joinSymbols renders a parameter list.
func joinSymbols(s []Symbol) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, x := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(x))
	}
	b.WriteByte(')')
	return b.String()
}
