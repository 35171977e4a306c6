package engine

// specialFormFunc evaluates the operands of one special form (the car
// symbol already consumed). It returns the same (tail-or-final) shape as
// evalPair: either a pending tail (nextExpr, nextEnv, done == false) for
// Eval's loop to continue with, or a final value (done == true).
type specialFormFunc func(in *Interp, operands Any, env *Environment) (nextExpr Any, nextEnv *Environment, val Any, done bool, err error)

// specialForms is consulted before macro lookup and before treating a pair
// as an application. Because quote is a special form, it is matched here
// before the evaluator ever asks whether a pair's car names a macro, which
// keeps quoted data from being macro-expanded.
var specialForms map[*Symbol]specialFormFunc

func init() {
	specialForms = map[*Symbol]specialFormFunc{
		SymQuote:      evalQuote,
		SymQuasiquote: evalQuasiquote,
		SymUnquote:    evalUnquoteOutsideQuasiquote,
		SymIf:         evalIf,
		SymCond:       evalCond,
		SymAnd:        evalAnd,
		SymOr:         evalOr,
		SymBegin:      evalBegin,
		SymDefine:     evalDefine,
		SymSetQ:       evalSetBang,
		SymLambda:     evalLambda,
		SymDLambda:    evalDLambda,
		SymLet:        evalLet,
		SymDefMacro:   evalDefineMacro,
		SymDelay:      evalDelay,
		SymConsStream: evalConsStream,
	}
}

func final(v Any, err error) (Any, *Environment, Any, bool, error) {
	return nil, nil, v, true, err
}

func tail(expr Any, env *Environment) (Any, *Environment, Any, bool, error) {
	return expr, env, nil, false, nil
}

func evalQuote(in *Interp, operands Any, env *Environment) (Any, *Environment, Any, bool, error) {
	c, ok := operands.(*Cell)
	if !ok || c == Nil {
		return final(nil, NewError(ReadError, "quote: missing operand"))
	}
	return final(c.Car, nil)
}

// evalIf implements if: the consequent/alternate are tail positions, the
// predicate is not.
func evalIf(in *Interp, operands Any, env *Environment) (Any, *Environment, Any, bool, error) {
	parts, ok := ToSlice(operands)
	if !ok || len(parts) < 2 || len(parts) > 3 {
		return final(nil, NewError(ArityError, "if: expected 2 or 3 operands"))
	}
	test, err := in.Eval(parts[0], env)
	if err != nil {
		return final(nil, err)
	}
	if IsTrue(test) {
		return tail(parts[1], env)
	}
	if len(parts) == 3 {
		return tail(parts[2], env)
	}
	return final(Undefined, nil)
}

// evalCond desugars to nested ifs, then lets the resulting if-expression
// ride the same tail path.
func evalCond(in *Interp, operands Any, env *Environment) (Any, *Environment, Any, bool, error) {
	clauses, ok := ToSlice(operands)
	if !ok {
		return final(nil, NewError(ReadError, "cond: malformed clause list"))
	}
	expr, err := condToIf(clauses)
	if err != nil {
		return final(nil, err)
	}
	if expr == nil {
		return final(Undefined, nil)
	}
	return tail(expr, env)
}

func condToIf(clauses []Any) (Any, error) {
	if len(clauses) == 0 {
		return nil, nil
	}
	clause, ok := clauses[0].(*Cell)
	if !ok || clause == Nil {
		return nil, NewError(ReadError, "cond: empty clause")
	}
	pred := clause.Car
	if sym, ok := pred.(*Symbol); ok && sym == SymElse {
		if len(clauses) != 1 {
			return nil, NewError(ReadError, "cond: else clause isn't last")
		}
		return sequenceToExpr(clause.Cdr), nil
	}
	rest, err := condToIf(clauses[1:])
	if err != nil {
		return nil, err
	}
	if clause.Cdr == Nil {
		// (cond (pred)) has no consequent; value is pred itself if true.
		return List(SymIf, pred, pred, orNilExpr(rest)), nil
	}
	return List(SymIf, pred, sequenceToExpr(clause.Cdr), orNilExpr(rest)), nil
}

// orNilExpr substitutes a literal Undefined-producing expression for "no
// further clauses", since List requires a concrete Any, not Go's nil.
func orNilExpr(expr Any) Any {
	if expr == nil {
		return List(SymBegin)
	}
	return expr
}

func sequenceToExpr(seq Any) Any {
	c, ok := seq.(*Cell)
	if !ok || c == Nil {
		return List(SymBegin)
	}
	if c.Cdr == Nil {
		return c.Car
	}
	return &Cell{SymBegin, seq}
}

func evalAnd(in *Interp, operands Any, env *Environment) (Any, *Environment, Any, bool, error) {
	exprs, ok := ToSlice(operands)
	if !ok {
		return final(nil, NewError(ReadError, "and: malformed operand list"))
	}
	if len(exprs) == 0 {
		return final(true, nil)
	}
	for _, e := range exprs[:len(exprs)-1] {
		v, err := in.Eval(e, env)
		if err != nil {
			return final(nil, err)
		}
		if !IsTrue(v) {
			return final(false, nil)
		}
	}
	return tail(exprs[len(exprs)-1], env)
}

func evalOr(in *Interp, operands Any, env *Environment) (Any, *Environment, Any, bool, error) {
	exprs, ok := ToSlice(operands)
	if !ok {
		return final(nil, NewError(ReadError, "or: malformed operand list"))
	}
	if len(exprs) == 0 {
		return final(false, nil)
	}
	for _, e := range exprs[:len(exprs)-1] {
		v, err := in.Eval(e, env)
		if err != nil {
			return final(nil, err)
		}
		if IsTrue(v) {
			return final(v, nil)
		}
	}
	return tail(exprs[len(exprs)-1], env)
}

func evalBegin(in *Interp, operands Any, env *Environment) (Any, *Environment, Any, bool, error) {
	return sequenceTail(in, operands, env)
}

// evalDefine implements both (define sym expr) and the
// (define (name params...) body...) sugar for (define name (lambda ...)).
func evalDefine(in *Interp, operands Any, env *Environment) (Any, *Environment, Any, bool, error) {
	c, ok := operands.(*Cell)
	if !ok || c == Nil {
		return final(nil, NewError(ArityError, "define: missing operands"))
	}
	switch target := c.Car.(type) {
	case *Symbol:
		valExprCell, ok := c.Cdr.(*Cell)
		if !ok || valExprCell == Nil {
			return final(nil, NewError(ArityError, "define: missing value"))
		}
		v, err := in.Eval(valExprCell.Car, env)
		if err != nil {
			return final(nil, err)
		}
		nameClosure(v, string(*target))
		env.Define(target, v)
		return final(Undefined, nil)
	case *Cell:
		name, ok := target.Car.(*Symbol)
		if !ok {
			return final(nil, NewError(TypeError, "define: non-symbol procedure name"))
		}
		body, ok := c.Cdr.(*Cell)
		if !ok || body == Nil {
			return final(nil, NewError(ArityError, "define: missing procedure body"))
		}
		closure := &Closure{Name: string(*name), Params: target.Cdr, Body: body, Env: env}
		env.Define(name, closure)
		return final(Undefined, nil)
	default:
		return final(nil, NewError(TypeError, "define: non-symbol target"))
	}
}

func nameClosure(v Any, name string) {
	switch c := v.(type) {
	case *Closure:
		if c.Name == "" {
			c.Name = name
		}
	case *DynClosure:
		if c.Name == "" {
			c.Name = name
		}
	}
}

func evalSetBang(in *Interp, operands Any, env *Environment) (Any, *Environment, Any, bool, error) {
	c, ok := operands.(*Cell)
	if !ok || c == Nil {
		return final(nil, NewError(ArityError, "set!: missing operands"))
	}
	sym, ok := c.Car.(*Symbol)
	if !ok {
		return final(nil, NewError(TypeError, "set!: non-symbol target"))
	}
	valExprCell, ok := c.Cdr.(*Cell)
	if !ok || valExprCell == Nil {
		return final(nil, NewError(ArityError, "set!: missing value"))
	}
	v, err := in.Eval(valExprCell.Car, env)
	if err != nil {
		return final(nil, err)
	}
	if err := env.SetBang(sym, v); err != nil {
		return final(nil, err)
	}
	return final(Undefined, nil)
}

func evalLambda(in *Interp, operands Any, env *Environment) (Any, *Environment, Any, bool, error) {
	c, ok := operands.(*Cell)
	if !ok || c == Nil {
		return final(nil, NewError(ArityError, "lambda: missing parameter list"))
	}
	body, ok := c.Cdr.(*Cell)
	if !ok {
		return final(nil, NewError(ArityError, "lambda: missing body"))
	}
	return final(&Closure{Params: c.Car, Body: body, Env: env}, nil)
}

func evalDLambda(in *Interp, operands Any, env *Environment) (Any, *Environment, Any, bool, error) {
	c, ok := operands.(*Cell)
	if !ok || c == Nil {
		return final(nil, NewError(ArityError, "dlambda: missing parameter list"))
	}
	body, ok := c.Cdr.(*Cell)
	if !ok {
		return final(nil, NewError(ArityError, "dlambda: missing body"))
	}
	return final(&DynClosure{Params: c.Car, Body: body}, nil)
}

// evalLet implements (let ((s e)…) body…) by evaluating every binding value
// in the outer environment before extending, so a binding can never see its
// sibling bindings.
func evalLet(in *Interp, operands Any, env *Environment) (Any, *Environment, Any, bool, error) {
	c, ok := operands.(*Cell)
	if !ok || c == Nil {
		return final(nil, NewError(ArityError, "let: missing bindings"))
	}
	bindings, ok := ToSlice(c.Car)
	if !ok {
		return final(nil, NewError(ReadError, "let: malformed bindings"))
	}
	vars := make([]Any, len(bindings))
	vals := make([]Any, len(bindings))
	for i, b := range bindings {
		pair, ok := ToSlice(b)
		if !ok || len(pair) != 2 {
			return final(nil, NewError(ReadError, "let: each binding needs a name and a value"))
		}
		vars[i] = pair[0]
		v, err := in.Eval(pair[1], env)
		if err != nil {
			return final(nil, err)
		}
		vals[i] = v
	}
	newEnv, err := env.Extend(List(vars...), List(vals...))
	if err != nil {
		return final(nil, err)
	}
	return sequenceTail(in, c.Cdr, newEnv)
}

func evalDefineMacro(in *Interp, operands Any, env *Environment) (Any, *Environment, Any, bool, error) {
	c, ok := operands.(*Cell)
	if !ok || c == Nil {
		return final(nil, NewError(MacroError, "define-macro: missing target"))
	}
	target, ok := c.Car.(*Cell)
	if !ok || target == Nil {
		return final(nil, NewError(MacroError, "define-macro: target must be (name params...)"))
	}
	name, ok := target.Car.(*Symbol)
	if !ok {
		return final(nil, NewError(MacroError, "define-macro: non-symbol macro name"))
	}
	body, ok := c.Cdr.(*Cell)
	if !ok || body == Nil {
		return final(nil, NewError(MacroError, "define-macro: missing body"))
	}
	env.Define(name, &Macro{Name: string(*name), Params: target.Cdr, Body: body, Env: env})
	return final(Undefined, nil)
}

func evalDelay(in *Interp, operands Any, env *Environment) (Any, *Environment, Any, bool, error) {
	c, ok := operands.(*Cell)
	if !ok || c == Nil {
		return final(nil, NewError(ArityError, "delay: missing operand"))
	}
	return final(&Promise{Expr: c.Car, Env: env}, nil)
}

// evalConsStream implements (cons-stream a b) ≡ (cons a (delay b)), with b
// left unevaluated.
func evalConsStream(in *Interp, operands Any, env *Environment) (Any, *Environment, Any, bool, error) {
	c, ok := operands.(*Cell)
	if !ok || c == Nil {
		return final(nil, NewError(ArityError, "cons-stream: missing operands"))
	}
	rest, ok := c.Cdr.(*Cell)
	if !ok || rest == Nil {
		return final(nil, NewError(ArityError, "cons-stream: missing tail expression"))
	}
	a, err := in.Eval(c.Car, env)
	if err != nil {
		return final(nil, err)
	}
	return final(&Cell{a, &Promise{Expr: rest.Car, Env: env}}, nil)
}

// evalUnquoteOutsideQuasiquote handles an unquote encountered anywhere
// other than inside a quasiquote's traversal (evalQuasiquote intercepts the
// in-context case directly without consulting this table).
func evalUnquoteOutsideQuasiquote(in *Interp, operands Any, env *Environment) (Any, *Environment, Any, bool, error) {
	return final(nil, NewError(MacroError, "unquote outside of quasiquote"))
}

// evalQuasiquote implements `x / (quasiquote x), with ,y / (unquote y)
// substituting the evaluated y at the matching nesting depth.
func evalQuasiquote(in *Interp, operands Any, env *Environment) (Any, *Environment, Any, bool, error) {
	c, ok := operands.(*Cell)
	if !ok || c == Nil {
		return final(nil, NewError(ArityError, "quasiquote: missing operand"))
	}
	v, err := quasiquoteExpand(in, c.Car, env, 1)
	return final(v, err)
}

func quasiquoteExpand(in *Interp, expr Any, env *Environment, depth int) (Any, error) {
	cell, ok := expr.(*Cell)
	if !ok || cell == Nil {
		return expr, nil
	}
	if sym, ok := cell.Car.(*Symbol); ok {
		if sym == SymUnquote {
			depth--
			if depth == 0 {
				rest, ok := cell.Cdr.(*Cell)
				if !ok || rest == Nil {
					return nil, NewError(MacroError, "unquote: missing operand")
				}
				return in.Eval(rest.Car, env)
			}
		} else if sym == SymQuasiquote {
			depth++
		}
	}
	car, err := quasiquoteExpand(in, cell.Car, env, depth)
	if err != nil {
		return nil, err
	}
	cdr, err := quasiquoteExpand(in, cell.Cdr, env, depth)
	if err != nil {
		return nil, err
	}
	return &Cell{car, cdr}, nil
}
