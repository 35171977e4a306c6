package engine

// Interp holds the mutable state of one evaluation session: the global
// environment and anything primitives need to call back into Eval/Apply
// (map, filter, reduce, force, apply, eval all re-enter the evaluator).
// Interp carries no locking; nothing here is meant to be shared across
// goroutines.
type Interp struct {
	Global *Environment
}

// NewInterp creates an interpreter with a freshly populated global
// environment.
func NewInterp() *Interp {
	i := &Interp{Global: NewEnvironment(nil)}
	installPrimitives(i.Global)
	return i
}

// Eval evaluates expr in env and returns its value. It is an iterative
// driver whose loop variables are (expr, env): every tail position
// reassigns them and loops instead of recursing, so a self-tail-recursive
// procedure runs in constant host stack space regardless of how many times
// it recurses. Non-tail sub-evaluations (operand lists, if's predicate,
// non-last begin expressions, ...) call Eval recursively on the ordinary Go
// call stack, bounded by source expression nesting depth.
func (in *Interp) Eval(expr Any, env *Environment) (Any, error) {
	for {
		switch x := expr.(type) {
		case *Symbol:
			return env.Lookup(x)
		case *Cell:
			if x == Nil {
				// () is self-evaluating.
				return Nil, nil
			}
			nextExpr, nextEnv, val, done, err := in.evalPair(x, env)
			if err != nil {
				return nil, err
			}
			if done {
				return val, nil
			}
			expr, env = nextExpr, nextEnv
			continue
		default:
			// Self-evaluating atoms: Integer, Real, bool, String, Undefined,
			// procedures and promises.
			return expr, nil
		}
	}
}

// evalPair evaluates one application or special form. It returns either a
// final value (done == true) or a tail (nextExpr, nextEnv) for Eval's loop
// to continue with (done == false).
func (in *Interp) evalPair(x *Cell, env *Environment) (nextExpr Any, nextEnv *Environment, val Any, done bool, err error) {
	if sym, ok := x.Car.(*Symbol); ok {
		if handler, ok := specialForms[sym]; ok {
			return handler(in, x.Cdr, env)
		}
		if maybeMacro, lookupErr := env.Lookup(sym); lookupErr == nil {
			if m, isMacro := maybeMacro.(*Macro); isMacro {
				expanded, expErr := in.expandMacro(m, x.Cdr, env)
				if expErr != nil {
					return nil, nil, nil, false, expErr
				}
				return expanded, env, nil, false, nil
			}
		}
	}
	operator, err := in.Eval(x.Car, env)
	if err != nil {
		return nil, nil, nil, false, err
	}
	args, err := in.evalOperands(x.Cdr, env)
	if err != nil {
		return nil, nil, nil, false, err
	}
	return in.applyTail(operator, args, env)
}

// evalOperands evaluates each operand left-to-right, so observable side
// effects happen in source order.
func (in *Interp) evalOperands(list Any, env *Environment) ([]Any, error) {
	var args []Any
	for list != Nil {
		c, ok := list.(*Cell)
		if !ok {
			return nil, NewError(TypeError, "bad argument list")
		}
		v, err := in.Eval(c.Car, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		list = c.Cdr
	}
	return args, nil
}

// Apply applies proc to args (already-evaluated) and fully evaluates the
// result, never returning a pending tail. callerEnv is the environment a
// dynamic closure should extend and the
// environment env-aware primitives (map, filter, reduce, apply, eval) see;
// pass the global environment when there is no more specific call site.
func (in *Interp) Apply(proc Any, args []Any, callerEnv *Environment) (Any, error) {
	nextExpr, nextEnv, val, done, err := in.applyTail(proc, args, callerEnv)
	if err != nil {
		return nil, err
	}
	if done {
		return val, nil
	}
	return in.Eval(nextExpr, nextEnv)
}

// applyTail is Apply's tail-producing half: for a compound procedure it
// returns the body as a pending (expr, env) tail rather than evaluating it
// immediately, so that a call in tail position costs Eval's loop one more
// iteration instead of one more stack frame.
func (in *Interp) applyTail(proc Any, args []Any, callerEnv *Environment) (nextExpr Any, nextEnv *Environment, val Any, done bool, err error) {
	switch p := proc.(type) {
	case *Primitive:
		if err := checkArity(p.Name, p.MinArgs, p.MaxArgs, len(args)); err != nil {
			return nil, nil, nil, false, err
		}
		v, err := p.Fn(in, callerEnv, args)
		return nil, nil, v, true, err
	case *Closure:
		newEnv, err := p.Env.Extend(p.Params, argList(args))
		if err != nil {
			return nil, nil, nil, false, arityErrorFor(p.Name, err)
		}
		return sequenceTail(in, p.Body, newEnv)
	case *DynClosure:
		if callerEnv == nil {
			return nil, nil, nil, false, NewError(InternalError, "dynamic closure applied with no caller environment")
		}
		newEnv, err := callerEnv.Extend(p.Params, argList(args))
		if err != nil {
			return nil, nil, nil, false, arityErrorFor(p.Name, err)
		}
		return sequenceTail(in, p.Body, newEnv)
	default:
		return nil, nil, nil, false, NewError(TypeError, "not a procedure: %s", Format(proc, true))
	}
}

func arityErrorFor(name string, cause error) error {
	if name == "" {
		name = "λ"
	}
	return NewError(ArityError, "%s: %s", name, cause.(*SchemeError).Message)
}

// macroArityErrorFor reports a wrong-operand-count macro application as
// MacroError rather than ArityError, since a macro call is not a procedure
// application.
func macroArityErrorFor(name string, cause error) error {
	if name == "" {
		name = "λ"
	}
	return NewError(MacroError, "%s: %s", name, cause.(*SchemeError).Message)
}

// sequenceTail evaluates every expression in body except the last for its
// side effects, then returns the last as a tail. It backs a procedure body,
// begin, a let body, and a cond clause, all of which share the rule
// "evaluate a sequence, last expression in tail position".
func sequenceTail(in *Interp, body Any, env *Environment) (nextExpr Any, nextEnv *Environment, val Any, done bool, err error) {
	if body == Nil {
		return nil, nil, Undefined, true, nil
	}
	c, ok := body.(*Cell)
	if !ok {
		return nil, nil, nil, false, NewError(TypeError, "bad body")
	}
	for c.Cdr != Nil {
		if _, err := in.Eval(c.Car, env); err != nil {
			return nil, nil, nil, false, err
		}
		next, ok := c.Cdr.(*Cell)
		if !ok {
			return nil, nil, nil, false, NewError(TypeError, "bad body")
		}
		c = next
	}
	return c.Car, env, nil, false, nil
}

func argList(args []Any) Any {
	return List(args...)
}

func checkArity(name string, min, max, n int) error {
	if n < min || (max >= 0 && n > max) {
		return NewError(ArityError, "%s: expected %s, got %d", name, arityDesc(min, max), n)
	}
	return nil
}

func arityDesc(min, max int) string {
	if max < 0 {
		if min == 0 {
			return "any number of arguments"
		}
		return "at least " + itoa(min)
	}
	if min == max {
		return "exactly " + itoa(min)
	}
	return "between " + itoa(min) + " and " + itoa(max)
}

func itoa(n int) string {
	return Format(Integer(n), false)
}
