package internal

import (
	"strings"
)

// Evaluate evaluates expr in the current environment.
//
// Symbols that are neither keywords nor numbers are variables and evaluate to
// their bindings; other symbols evaluate to themselves. Lists are
// applications, dispatched on their heads. Everything else evaluates to
// itself.
func (in *Interp) Evaluate(expr Value) (Value, error) {
	in.depth++
	defer func() { in.depth-- }()
	if in.depth > in.RecursionLimit {
		return nil, &RecursionLimitExceeded{Limit: in.RecursionLimit}
	}
	switch x := expr.(type) {
	case Symbol:
		return in.evalSymbol(x)
	case List:
		return in.evalList(x)
	}
	return expr, nil
}

func (in *Interp) evalSymbol(s Symbol) (Value, error) {
	switch s {
	case "#t":
		return Bool(true), nil
	case "#f":
		return Bool(false), nil
	}
	if !in.isVariable(s) {
		return s, nil
	}
	return in.Lookup(s)
}

// isVariable reports whether s names a variable rather than a keyword or a
// number.
func (in *Interp) isVariable(s Symbol) bool {
	return s != "" && !in.Keywords.IsKeyword(s) && !isNumeric(s)
}

func (in *Interp) evalList(x List) (Value, error) {
	if len(x) == 0 {
		return List{}, nil
	}
	head, tail := x[0], x[1:]
	switch h := head.(type) {
	case Symbol:
		return in.evalSymbolHead(h, tail)
	case List:
		v, err := in.Evaluate(h)
		if err != nil {
			return nil, err
		}
		switch x := Datum(v).(type) {
		case List:
			// A list head that evaluates to data makes the whole list data.
			return in.evalData(append(List{v}, tail...))
		case Symbol:
			return in.Evaluate(append(List{x}, tail...))
		}
		return in.apply(v, tail)
	}
	return in.apply(head, tail)
}

// evalSymbolHead dispatches an application whose head is a symbol.
func (in *Interp) evalSymbolHead(h Symbol, tail List) (Value, error) {
	if in.isVariable(h) {
		if prefix, member, ok := splitDotted(h); ok {
			if m, ok := in.imports[prefix]; ok {
				return in.moduleMember(m, member, tail)
			}
			if _, bound := in.Env.Get(h); !bound {
				switch x := in.lookupQuiet(prefix).(type) {
				case *Instance:
					return in.Invoke(x, member, tail)
				case *Template:
					return in.templateMember(x, member, tail)
				}
			}
		}
		v, err := in.Lookup(h)
		if err != nil {
			return nil, err
		}
		// Calling through a name bound to a quoted keyword or variable name
		// calls that name.
		if s, ok := Datum(v).(Symbol); ok {
			return in.Evaluate(append(List{s}, tail...))
		}
		return in.apply(v, tail)
	}
	switch in.Keywords.Classify(h) {
	case Regular:
		mark := len(in.pins)
		defer in.unpin(mark)
		args, err := in.evlist(tail)
		if err != nil {
			return nil, err
		}
		return in.Keywords.Regular[h](in, args)
	case Irregular:
		return in.Keywords.Irregular[h](in, tail)
	case Boolean:
		return in.evalBoolean(h, tail)
	case Extension:
		return in.Keywords.Extensions[h](in, tail)
	case Accessor:
		return in.access(h, tail)
	case Special:
		return in.Keywords.Special[h](in, tail)
	}
	// Numeric symbols and boolean literals.
	return in.evalData(append(List{h}, tail...))
}

// apply dispatches an application whose head has already been evaluated.
func (in *Interp) apply(head Value, tail List) (Value, error) {
	switch h := head.(type) {
	case *Function:
		return in.Call(h, tail)
	case *Builtin:
		return in.callBuiltin(h, tail)
	case *Template:
		return nil, &TypeError{Op: h.Name, Msg: "templates are instantiated with new"}
	case *Instance:
		if len(tail) == 0 {
			return h, nil
		}
		m, ok := tail[0].(Symbol)
		if !ok {
			return nil, typeErr(h.Template.Name, "member name", tail[0])
		}
		return in.Invoke(h, m, tail[1:])
	case *Module:
		if len(tail) == 0 {
			return h, nil
		}
		return nil, &TypeError{Op: h.Name, Msg: "modules are not callable"}
	}
	return in.evalData(append(List{head}, tail...))
}

// evalData evaluates every element of a data list. If nothing changes, the
// list is its own value; otherwise the evaluated list is evaluated again.
func (in *Interp) evalData(x List) (Value, error) {
	mark := len(in.pins)
	defer in.unpin(mark)
	evl, err := in.evlist(x)
	if err != nil {
		return nil, err
	}
	if identical(evl, x) {
		return x, nil
	}
	return in.Evaluate(evl)
}

// evlist evaluates each form in order. Results are pinned; callers unpin
// them once the results are bound or dropped.
func (in *Interp) evlist(forms List) (List, error) {
	args := make(List, len(forms))
	for i, f := range forms {
		v, err := in.Evaluate(f)
		if err != nil {
			return nil, err
		}
		args[i] = in.pin(v)
	}
	return args, nil
}

// evalBoolean evaluates operands and combines their truthiness.
func (in *Interp) evalBoolean(h Symbol, tail List) (Value, error) {
	mark := len(in.pins)
	defer in.unpin(mark)
	args, err := in.evlist(tail)
	if err != nil {
		return nil, err
	}
	bs := make([]bool, len(args))
	for i, v := range args {
		bs[i] = Truthy(v)
	}
	r, err := in.Keywords.Boolean[h](bs)
	if err != nil {
		if e, ok := err.(*ArityError); ok {
			e.Name = h
		}
		return nil, err
	}
	return Bool(r), nil
}

// access applies a car/cdr composition. Letters apply from right to left, so
// cadr is the car of the cdr.
func (in *Interp) access(name Symbol, tail List) (Value, error) {
	if err := arity(name, len(tail), 1); err != nil {
		return nil, err
	}
	v, err := in.Evaluate(tail[0])
	if err != nil {
		return nil, err
	}
	letters := name[1 : len(name)-1]
	for i := len(letters) - 1; i >= 0; i-- {
		l, ok := Datum(v).(List)
		if !ok || len(l) == 0 {
			return nil, &AccessorError{Accessor: name, Target: Datum(v)}
		}
		if letters[i] == 'a' {
			v = l[0]
		} else {
			v = l[1:]
		}
	}
	if s, ok := v.(Symbol); ok {
		return Quoted{Datum: s}, nil
	}
	return v, nil
}

// splitDotted splits a name like math.sqrt at its first dot.
func splitDotted(s Symbol) (prefix, member Symbol, ok bool) {
	i := strings.IndexByte(string(s), '.')
	if i <= 0 || i == len(s)-1 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}
