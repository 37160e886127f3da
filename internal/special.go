package internal

// initSpecial installs the special forms.
func (in *Interp) initSpecial() {
	prims := map[Symbol]Primitive{
		"lambda":  formLambda,
		"until":   formUntil,
		"cond":    formCond,
		"quote":   formQuote,
		"new":     formNew,
		"string?": formIsString,
		"list?":   formIsList,
	}
	for k, v := range prims {
		in.Keywords.Special[k] = v
	}
}

// formLambda is (lambda (params) body).
func formLambda(in *Interp, args List) (Value, error) {
	if err := arity("lambda", len(args), 2); err != nil {
		return nil, err
	}
	fn, err := in.NewFunction("lambda", args[0], args[1])
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// formUntil is (until (condition increment) body). In a new scope, it
// evaluates body and then increment for as long as condition is false.
func formUntil(in *Interp, args List) (Value, error) {
	if err := arity("until", len(args), 2); err != nil {
		return nil, err
	}
	ctl, ok := args[0].(List)
	if !ok || len(ctl) != 2 {
		return nil, typeErr("until", "(condition increment)", args[0])
	}
	cond, inc, body := ctl[0], ctl[1], args[1]
	return in.RunLocal(func() (Value, error) {
		for {
			c, err := in.Evaluate(cond)
			if err != nil {
				return nil, err
			}
			if Truthy(c) {
				return nil, nil
			}
			if _, err := in.Evaluate(body); err != nil {
				return nil, err
			}
			if _, err := in.Evaluate(inc); err != nil {
				return nil, err
			}
		}
	})
}

// formCond is (cond (test expr)...). It evaluates the expression of the
// first clause whose test is true or is the word else. Later tests are not
// evaluated.
func formCond(in *Interp, args List) (Value, error) {
	for _, c := range args {
		clause, ok := c.(List)
		if !ok || len(clause) != 2 {
			return nil, typeErr("cond", "(test expr) clause", c)
		}
		if s, ok := clause[0].(Symbol); ok && s == "else" {
			return in.Evaluate(clause[1])
		}
		t, err := in.Evaluate(clause[0])
		if err != nil {
			return nil, err
		}
		if Truthy(t) {
			return in.Evaluate(clause[1])
		}
	}
	return nil, &CondError{}
}

// formQuote is (quote x), usually written 'x. The result is x as data.
func formQuote(in *Interp, args List) (Value, error) {
	if err := arity("quote", len(args), 1); err != nil {
		return nil, err
	}
	return Shield(args[0]), nil
}

// formNew is (new Template args...).
func formNew(in *Interp, args List) (Value, error) {
	if err := arityRange("new", len(args), 1, -1); err != nil {
		return nil, err
	}
	v, err := in.Evaluate(args[0])
	if err != nil {
		return nil, err
	}
	t, ok := v.(*Template)
	if !ok {
		return nil, typeErr("new", "template", v)
	}
	inst, err := in.Instantiate(t, args[1:])
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// syntaxOperand returns the single operand of a syntactic predicate, looking
// through one quote.
func syntaxOperand(args List) (Value, bool) {
	if len(args) != 1 {
		return nil, false
	}
	if l, ok := args[0].(List); ok && isQuoteForm(l) {
		return l[1], true
	}
	return args[0], true
}

// formIsString is (string? x): whether x is written as a word.
func formIsString(in *Interp, args List) (Value, error) {
	v, ok := syntaxOperand(args)
	if !ok {
		return Bool(false), nil
	}
	_, ok = v.(Symbol)
	return Bool(ok), nil
}

// formIsList is (list? x): whether x is written as a list.
func formIsList(in *Interp, args List) (Value, error) {
	v, ok := syntaxOperand(args)
	if !ok {
		return Bool(false), nil
	}
	_, ok = v.(List)
	return Bool(ok), nil
}
