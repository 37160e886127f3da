package internal

// Function is a user-defined procedure. Anonymous functions are named lambda.
type Function struct {
	Name   Symbol
	Params []Symbol
	Body   Value
	// Closure is the registry entry holding the frames the function captured
	// when it was constructed.
	Closure ClosureID
}

// String returns the printed form of the function.
func (f *Function) String() string {
	if f.Name == "lambda" {
		return "<lambda " + joinSymbols(f.Params) + " " + Print(f.Body) + ">"
	}
	return "<" + string(f.Name) + ">"
}

// NewFunction creates a function capturing a copy of every non-global frame
// of the current environment.
func (in *Interp) NewFunction(name Symbol, params, body Value) (*Function, error) {
	ps, err := paramList(name, params)
	if err != nil {
		return nil, err
	}
	fn := &Function{Name: name, Params: ps, Body: body}
	fn.Closure = in.newClosure(in.Env.locals())
	return fn, nil
}

// paramList converts a parameter list form into names.
func paramList(op Symbol, v Value) ([]Symbol, error) {
	l, ok := v.(List)
	if !ok {
		return nil, typeErr(op, "parameter list", v)
	}
	ps := make([]Symbol, len(l))
	for i, p := range l {
		s, ok := p.(Symbol)
		if !ok {
			return nil, typeErr(op, "parameter name", p)
		}
		ps[i] = s
	}
	return ps, nil
}

// Call evaluates operands in the current environment and applies fn to them.
// fn stays reachable while its operands run, even if they rebind the name it
// was called through.
func (in *Interp) Call(fn *Function, operands List) (Value, error) {
	mark := len(in.pins)
	defer in.unpin(mark)
	in.pin(fn)
	args, err := in.evlist(operands)
	if err != nil {
		return nil, err
	}
	return in.Apply(fn, args)
}

// Apply calls fn with already evaluated arguments. The function's captured
// frames are spliced into the environment with a fresh argument frame inside
// them for the duration of the call. Anonymous functions and functions named
// self also see themselves as self.
func (in *Interp) Apply(fn *Function, args List) (Value, error) {
	if err := arity(fn.Name, len(args), len(fn.Params)); err != nil {
		return nil, err
	}
	frame := make(Frame, len(fn.Params)+1)
	if fn.Name == "lambda" || fn.Name == "self" {
		frame["self"] = fn
	}
	for i, p := range fn.Params {
		frame[p] = args[i]
	}
	env, err := in.closure(fn.Closure)
	if err != nil {
		return nil, err
	}
	depth := in.Env.Depth()
	in.active = append(in.active, fn.Closure)
	in.Env.Extend(env)
	in.Env.push(frame)
	in.Logger.Debug("call", "function", fn.Name, "argument-count", len(args), "depth", in.Env.Depth())
	defer func() {
		in.Env.EndScope(in.Env.Depth() - depth)
		in.active = in.active[:len(in.active)-1]
	}()
	return in.Evaluate(fn.Body)
}
