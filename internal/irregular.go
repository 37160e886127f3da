package internal

// initIrregular installs the keywords that evaluate their own operands.
func (in *Interp) initIrregular() {
	prims := map[Symbol]Primitive{
		"repeat":   primRepeat,
		"let":      primLet,
		"do":       primDo,
		"eval":     primEval,
		"getfile":  primGetfile,
		"global":   primGlobal,
		"import":   primImport,
		"load":     primLoad,
		"def":      primDef,
		"template": primTemplate,
		"set":      primSet,
		"update":   primUpdate,
		"del":      primDel,
		"burrow":   primBurrow,
		"surface":  primSurface,
		"delex":    primDelex,
	}
	for k, v := range prims {
		in.Keywords.Irregular[k] = v
	}
}

// nameArg returns an operand that must be a bare name.
func nameArg(op Symbol, v Value) (Symbol, error) {
	if s, ok := Datum(v).(Symbol); ok {
		return s, nil
	}
	return "", typeErr(op, "name", v)
}

// primRepeat is the repeat keyword: (repeat n body) evaluates body n times.
func primRepeat(in *Interp, args List) (Value, error) {
	if err := arity("repeat", len(args), 2); err != nil {
		return nil, err
	}
	v, err := in.Evaluate(args[0])
	if err != nil {
		return nil, err
	}
	n, ok := Datum(v).(Int)
	if !ok {
		return nil, typeErr("repeat", "integer count", v)
	}
	for i := Int(0); i < n; i++ {
		if _, err := in.Evaluate(args[1]); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// primLet is the let keyword: (let ((name expr)...) body) binds each name in
// order in a new scope, then evaluates body there.
func primLet(in *Interp, args List) (Value, error) {
	if err := arity("let", len(args), 2); err != nil {
		return nil, err
	}
	bindings, ok := args[0].(List)
	if !ok {
		return nil, typeErr("let", "binding list", args[0])
	}
	return in.RunLocal(func() (Value, error) {
		for _, b := range bindings {
			pair, ok := b.(List)
			if !ok || len(pair) != 2 {
				return nil, typeErr("let", "(name value) binding", b)
			}
			name, err := nameArg("let", pair[0])
			if err != nil {
				return nil, err
			}
			if err := in.Set(name, pair[1], 0); err != nil {
				return nil, err
			}
		}
		return in.Evaluate(args[1])
	})
}

// primDo is the do keyword: (do (expr...) body) evaluates each expression,
// then body, in a new scope.
func primDo(in *Interp, args List) (Value, error) {
	if err := arity("do", len(args), 2); err != nil {
		return nil, err
	}
	exprs, ok := args[0].(List)
	if !ok {
		return nil, typeErr("do", "expression list", args[0])
	}
	return in.RunLocal(func() (Value, error) {
		for _, e := range exprs {
			if _, err := in.Evaluate(e); err != nil {
				return nil, err
			}
		}
		return in.Evaluate(args[1])
	})
}

// primEval is the eval keyword. A quoted operand is evaluated as code; any
// other operand is evaluated and its value is then evaluated as code.
func primEval(in *Interp, args List) (Value, error) {
	if err := arity("eval", len(args), 1); err != nil {
		return nil, err
	}
	if l, ok := args[0].(List); ok && isQuoteForm(l) {
		return in.Evaluate(l[1])
	}
	v, err := in.Evaluate(args[0])
	if err != nil {
		return nil, err
	}
	return in.Evaluate(Unshield(v))
}

// pathArg returns a file path operand, which may be a bare word or an
// expression evaluating to text.
func (in *Interp) pathArg(op Symbol, v Value) (string, error) {
	if s, ok := v.(Symbol); ok {
		if _, bound := in.Env.Get(s); !bound {
			return string(s), nil
		}
	}
	r, err := in.Evaluate(v)
	if err != nil {
		return "", err
	}
	if s, ok := TextOf(r); ok {
		return s, nil
	}
	return "", typeErr(op, "path", r)
}

// primGetfile is the getfile keyword: the lines of a file as texts.
func primGetfile(in *Interp, args List) (Value, error) {
	if err := arity("getfile", len(args), 1); err != nil {
		return nil, err
	}
	path, err := in.pathArg("getfile", args[0])
	if err != nil {
		return nil, err
	}
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	r := make(List, len(lines))
	for i, s := range lines {
		r[i] = Text(s)
	}
	return r, nil
}

// primGlobal is the global keyword: (global name value) defines a session
// global, and (global name) reads one.
func primGlobal(in *Interp, args List) (Value, error) {
	if err := arityRange("global", len(args), 1, 2); err != nil {
		return nil, err
	}
	name, err := nameArg("global", args[0])
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		v, ok := in.Globals[name]
		if !ok {
			return nil, &UndefinedVariable{Name: name}
		}
		return v, nil
	}
	v, err := in.Evaluate(args[1])
	if err != nil {
		return nil, err
	}
	old, had := in.Globals[name]
	in.Globals[name] = v
	if had {
		in.release(old)
	}
	return nil, nil
}

// primImport is the import keyword: (import name) or (import name as alias).
func primImport(in *Interp, args List) (Value, error) {
	if len(args) != 1 && len(args) != 3 {
		return nil, &ArityError{Name: "import", Want: "1 or 3", Have: len(args)}
	}
	name, err := nameArg("import", args[0])
	if err != nil {
		return nil, err
	}
	alias := name
	if len(args) == 3 {
		if as, _ := args[1].(Symbol); as != "as" {
			return nil, &TypeError{Op: "import", Msg: "expected (import name as alias)"}
		}
		if alias, err = nameArg("import", args[2]); err != nil {
			return nil, err
		}
	}
	return nil, in.Import(name, alias)
}

// primLoad is the load keyword: run a source file.
func primLoad(in *Interp, args List) (Value, error) {
	if err := arity("load", len(args), 1); err != nil {
		return nil, err
	}
	path, err := in.pathArg("load", args[0])
	if err != nil {
		return nil, err
	}
	return in.DoFile(path)
}

// primDef is the def keyword: (def name (params) body).
func primDef(in *Interp, args List) (Value, error) {
	if err := arity("def", len(args), 3); err != nil {
		return nil, err
	}
	name, err := nameArg("def", args[0])
	if err != nil {
		return nil, err
	}
	_, err = in.Define(name, args[1], args[2])
	return nil, err
}

// primTemplate is the template keyword: (template Name (params) decl...).
func primTemplate(in *Interp, args List) (Value, error) {
	if err := arityRange("template", len(args), 2, -1); err != nil {
		return nil, err
	}
	name, err := nameArg("template", args[0])
	if err != nil {
		return nil, err
	}
	t, err := in.NewTemplate(name, args[1], args[2:])
	if err != nil {
		return nil, err
	}
	in.assign(name, t, 0)
	return nil, nil
}

// primSet is the set keyword: (set name expr [scope]).
func primSet(in *Interp, args List) (Value, error) {
	if err := arityRange("set", len(args), 2, 3); err != nil {
		return nil, err
	}
	name, err := nameArg("set", args[0])
	if err != nil {
		return nil, err
	}
	scope := 0
	if len(args) == 3 {
		v, err := in.Evaluate(args[2])
		if err != nil {
			return nil, err
		}
		n, ok := Datum(v).(Int)
		if !ok || n < 0 {
			return nil, typeErr("set", "non-negative scope index", v)
		}
		scope = int(n)
	}
	return nil, in.Set(name, args[1], scope)
}

// primUpdate is the update keyword: (update name expr).
func primUpdate(in *Interp, args List) (Value, error) {
	if err := arity("update", len(args), 2); err != nil {
		return nil, err
	}
	name, err := nameArg("update", args[0])
	if err != nil {
		return nil, err
	}
	return nil, in.Update(name, args[1])
}

// primDel is the del keyword: (del name).
func primDel(in *Interp, args List) (Value, error) {
	if err := arity("del", len(args), 1); err != nil {
		return nil, err
	}
	name, err := nameArg("del", args[0])
	if err != nil {
		return nil, err
	}
	return nil, in.Delete(name)
}

// primBurrow is the burrow keyword: open a new innermost scope.
func primBurrow(in *Interp, args List) (Value, error) {
	if err := arity("burrow", len(args), 0); err != nil {
		return nil, err
	}
	in.Env.BeginScope()
	in.Logger.Debug("begin scope", "depth", in.Env.Depth())
	return nil, nil
}

// primSurface is the surface keyword: (surface [n]) closes n scopes, one by
// default.
func primSurface(in *Interp, args List) (Value, error) {
	if err := arityRange("surface", len(args), 0, 1); err != nil {
		return nil, err
	}
	n := 1
	if len(args) == 1 {
		v, err := in.Evaluate(args[0])
		if err != nil {
			return nil, err
		}
		k, ok := Datum(v).(Int)
		if !ok || k < 0 {
			return nil, typeErr("surface", "non-negative scope count", v)
		}
		n = int(k)
	}
	in.Env.EndScope(n)
	in.Logger.Debug("end scope", "depth", in.Env.Depth())
	return nil, nil
}

// primDelex is the delex keyword: (delex name) withdraws an extension.
func primDelex(in *Interp, args List) (Value, error) {
	if err := arity("delex", len(args), 1); err != nil {
		return nil, err
	}
	name, err := nameArg("delex", args[0])
	if err != nil {
		return nil, err
	}
	return nil, in.Withdraw(name)
}
