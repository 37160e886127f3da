package internal

// Template is a blueprint for instances: a frame of default fields and
// methods plus constructor parameters and initialization expressions.
type Template struct {
	Name   Symbol
	Params []Symbol
	Init   List
	// Closure is the registry entry holding the template's frame.
	Closure ClosureID
}

// Instance is an object created from a template. Its frame starts as a copy
// of the template's.
type Instance struct {
	Template *Template
	// Closure is the registry entry holding the instance's frame.
	Closure ClosureID
}

// NewTemplate creates a template from its declarations, each one of
//
//	(field name expr)
//	(method name (params) body)
//	(init expr...)
//
// Field expressions are evaluated now, in the current environment.
func (in *Interp) NewTemplate(name Symbol, params Value, decls List) (*Template, error) {
	ps, err := paramList(name, params)
	if err != nil {
		return nil, err
	}
	t := &Template{Name: name, Params: ps}
	frame := Frame{}
	// Register the frame first so methods defined below are reachable from it
	// while later fields are evaluated.
	t.Closure = in.newClosure(&Environment{frames: []Frame{frame}})
	mark := len(in.pins)
	defer in.unpin(mark)
	in.pin(t)
	for _, d := range decls {
		l, ok := d.(List)
		if !ok || len(l) == 0 {
			return nil, typeErr(name, "template declaration", d)
		}
		kind, _ := l[0].(Symbol)
		switch kind {
		case "field":
			if err := arity("field", len(l)-1, 2); err != nil {
				return nil, err
			}
			f, ok := l[1].(Symbol)
			if !ok {
				return nil, typeErr("field", "field name", l[1])
			}
			v, err := in.Evaluate(l[2])
			if err != nil {
				return nil, err
			}
			frame[f] = v
		case "method":
			if err := arity("method", len(l)-1, 3); err != nil {
				return nil, err
			}
			m, ok := l[1].(Symbol)
			if !ok {
				return nil, typeErr("method", "method name", l[1])
			}
			fn, err := in.NewFunction(m, l[2], l[3])
			if err != nil {
				return nil, err
			}
			frame[m] = fn
		case "init":
			t.Init = append(t.Init, l[1:]...)
		default:
			return nil, &TypeError{Op: name, Msg: "unknown template declaration " + Print(l[0])}
		}
	}
	return t, nil
}

// Instantiate evaluates operands in the current environment and creates an
// instance of t with them bound to the constructor parameters. The instance's
// init expressions run with its frame in scope.
func (in *Interp) Instantiate(t *Template, operands List) (*Instance, error) {
	mark := len(in.pins)
	defer in.unpin(mark)
	in.pin(t)
	args, err := in.evlist(operands)
	if err != nil {
		return nil, err
	}
	if err := arity(t.Name, len(args), len(t.Params)); err != nil {
		return nil, err
	}
	tenv, err := in.closure(t.Closure)
	if err != nil {
		return nil, err
	}
	frame := tenv.Global().clone()
	for i, p := range t.Params {
		frame[p] = args[i]
	}
	inst := &Instance{Template: t}
	frame["self"] = inst
	inst.Closure = in.newClosure(&Environment{frames: []Frame{frame}})
	if len(t.Init) == 0 {
		return inst, nil
	}
	in.pin(inst)
	depth := in.Env.Depth()
	in.Env.push(frame)
	defer in.Env.EndScope(in.Env.Depth() - depth)
	for _, e := range t.Init {
		if _, err := in.Evaluate(e); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// Invoke runs a member of inst. Methods are called with operands evaluated in
// the current environment and the instance's frame in scope; fields are
// returned as they are.
func (in *Interp) Invoke(inst *Instance, member Symbol, operands List) (Value, error) {
	env, err := in.closure(inst.Closure)
	if err != nil {
		return nil, err
	}
	frame := env.Global()
	v, ok := frame[member]
	if !ok {
		return nil, &UndefinedVariable{Name: inst.Template.Name + "." + member}
	}
	switch fn := v.(type) {
	case *Function:
		mark := len(in.pins)
		defer in.unpin(mark)
		in.pin(inst)
		args, err := in.evlist(operands)
		if err != nil {
			return nil, err
		}
		depth := in.Env.Depth()
		in.Env.push(frame)
		defer in.Env.EndScope(in.Env.Depth() - depth)
		return in.Apply(fn, args)
	case *Builtin:
		return in.callBuiltin(fn, operands)
	}
	if len(operands) > 0 {
		return nil, &TypeError{Op: inst.Template.Name + "." + member, Msg: "field is not callable"}
	}
	return v, nil
}

// templateMember handles Name.member forms on a template: new instantiates,
// and fields read their default values.
func (in *Interp) templateMember(t *Template, member Symbol, operands List) (Value, error) {
	if member == "new" {
		inst, err := in.Instantiate(t, operands)
		if err != nil {
			return nil, err
		}
		return inst, nil
	}
	env, err := in.closure(t.Closure)
	if err != nil {
		return nil, err
	}
	v, ok := env.Global()[member]
	if !ok {
		return nil, &UndefinedVariable{Name: t.Name + "." + member}
	}
	if _, ok := v.(*Function); ok {
		return nil, &TypeError{Op: t.Name + "." + member, Msg: "method requires an instance; use new"}
	}
	if len(operands) > 0 {
		return nil, &TypeError{Op: t.Name + "." + member, Msg: "field is not callable"}
	}
	return v, nil
}
