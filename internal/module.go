package internal

import (
	"fmt"
	"sort"
)

// Module is a host-provided namespace of values, made available to programs
// with import.
type Module struct {
	Name    Symbol
	Members map[Symbol]Value
}

// Builtin is a host function callable from Alvin. Its arguments are
// evaluated before the call.
type Builtin struct {
	Name Symbol
	Fn   Primitive
}

// NewBuiltin creates a builtin.
func NewBuiltin(name Symbol, fn Primitive) *Builtin {
	return &Builtin{Name: name, Fn: fn}
}

// ImportError is an error importing a module that does not exist.
type ImportError struct {
	Name Symbol
}

func (err *ImportError) Error() string {
	return fmt.Sprintf("no module named %s", err.Name)
}

// ProvideModule makes m available to import. A module of the same name is
// replaced.
func (in *Interp) ProvideModule(m *Module) {
	in.modules[m.Name] = m
}

// Modules returns the names of the modules available to import, sorted.
func (in *Interp) Modules() []Symbol {
	r := make([]Symbol, 0, len(in.modules))
	for k := range in.modules {
		r = append(r, k)
	}
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return r
}

// Import binds alias to the module named name.
func (in *Interp) Import(name, alias Symbol) error {
	m, ok := in.modules[name]
	if !ok {
		return &ImportError{Name: name}
	}
	in.imports[alias] = m
	in.Logger.Debug("import", "module", name, "alias", alias)
	return nil
}

// Imports returns a copy of the import table.
func (in *Interp) Imports() map[Symbol]*Module {
	r := make(map[Symbol]*Module, len(in.imports))
	for k, v := range in.imports {
		r[k] = v
	}
	return r
}

// callBuiltin evaluates operands and calls b with them.
func (in *Interp) callBuiltin(b *Builtin, operands List) (Value, error) {
	mark := len(in.pins)
	defer in.unpin(mark)
	args, err := in.evlist(operands)
	if err != nil {
		return nil, err
	}
	return b.Fn(in, args)
}

// moduleMember evaluates an application of alias.member. Callable members
// are called with the evaluated operands; other members are returned.
func (in *Interp) moduleMember(m *Module, member Symbol, operands List) (Value, error) {
	v, ok := m.Members[member]
	if !ok {
		return nil, &UndefinedVariable{Name: m.Name + "." + member}
	}
	switch fn := v.(type) {
	case *Builtin:
		return in.callBuiltin(fn, operands)
	case *Function:
		return in.Call(fn, operands)
	}
	if len(operands) > 0 {
		return nil, &TypeError{Op: m.Name + "." + member, Msg: "member is not callable"}
	}
	return v, nil
}
