package engine

// Force evaluates p's expression in its captured environment exactly once,
// memoizing the result. A promise entered re-entrantly while already being
// forced, i.e. forcing it again from within its own evaluation, raises
// CircularForceError rather than deadlocking or recursing forever.
func (in *Interp) Force(p *Promise) (Any, error) {
	if p.forced {
		return p.value, nil
	}
	if p.forcing {
		return nil, NewError(CircularForceError, "promise forced while already being forced")
	}
	p.forcing = true
	v, err := in.Eval(p.Expr, p.Env)
	p.forcing = false
	if err != nil {
		return nil, err
	}
	// A forced promise may itself evaluate to another, unforced promise
	// (this is how cons-stream chains stay productive); force through the
	// chain so callers always see a final, non-promise value.
	if inner, ok := v.(*Promise); ok {
		v, err = in.Force(inner)
		if err != nil {
			return nil, err
		}
	}
	p.forced = true
	p.value = v
	return v, nil
}

func asPromise(name string, v Any) (*Promise, error) {
	p, ok := v.(*Promise)
	if !ok {
		return nil, NewError(TypeError, "%s: not a promise: %s", name, Format(v, true))
	}
	return p, nil
}

// streamCar/streamCdr/streamNull/streamPair implement the stream- primitive
// family as thin wrappers around ordinary pairs whose cdr is a promise: a
// stream is a pair whose cdr is a promise that yields the rest of the
// stream when forced.

func streamCar(args []Any) (Any, error) {
	c, ok := args[0].(*Cell)
	if !ok || c == Nil {
		return nil, NewError(TypeError, "stream-car: not a stream: %s", Format(args[0], true))
	}
	return c.Car, nil
}

func (in *Interp) streamCdr(args []Any) (Any, error) {
	c, ok := args[0].(*Cell)
	if !ok || c == Nil {
		return nil, NewError(TypeError, "stream-cdr: not a stream: %s", Format(args[0], true))
	}
	p, err := asPromise("stream-cdr", c.Cdr)
	if err != nil {
		return nil, err
	}
	return in.Force(p)
}

func streamNull(args []Any) (Any, error) {
	return args[0] == Nil, nil
}

func streamPair(args []Any) (Any, error) {
	c, ok := args[0].(*Cell)
	return ok && c != Nil, nil
}

// streamMap applies fn to every element of a stream and returns a fully
// realized ordinary list, not another stream. This means streamMap cannot
// be applied to an infinite stream.
func (in *Interp) streamMap(fn Any, s Any, callerEnv *Environment) (Any, error) {
	var out []Any
	for s != Nil {
		c, ok := s.(*Cell)
		if !ok {
			return nil, NewError(TypeError, "stream-map: not a stream: %s", Format(s, true))
		}
		v, err := in.Apply(fn, []Any{c.Car}, callerEnv)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		rest, err := asPromise("stream-map", c.Cdr)
		if err != nil {
			return nil, err
		}
		s, err = in.Force(rest)
		if err != nil {
			return nil, err
		}
	}
	return List(out...), nil
}

// streamFilter mirrors streamMap's eager realization: it returns an
// ordinary list of the elements satisfying fn.
func (in *Interp) streamFilter(fn Any, s Any, callerEnv *Environment) (Any, error) {
	var out []Any
	for s != Nil {
		c, ok := s.(*Cell)
		if !ok {
			return nil, NewError(TypeError, "stream-filter: not a stream: %s", Format(s, true))
		}
		keep, err := in.Apply(fn, []Any{c.Car}, callerEnv)
		if err != nil {
			return nil, err
		}
		if IsTrue(keep) {
			out = append(out, c.Car)
		}
		rest, err := asPromise("stream-filter", c.Cdr)
		if err != nil {
			return nil, err
		}
		s, err = in.Force(rest)
		if err != nil {
			return nil, err
		}
	}
	return List(out...), nil
}

// streamReduce is eager by nature: it walks the whole stream, forcing as it
// goes, and returns only the final accumulated value, so there is no
// laziness to preserve in its result.
func (in *Interp) streamReduce(fn Any, init Any, s Any, callerEnv *Environment) (Any, error) {
	acc := init
	for s != Nil {
		c, ok := s.(*Cell)
		if !ok {
			return nil, NewError(TypeError, "stream-reduce: not a stream: %s", Format(s, true))
		}
		var err error
		acc, err = in.Apply(fn, []Any{acc, c.Car}, callerEnv)
		if err != nil {
			return nil, err
		}
		rest, err := asPromise("stream-reduce", c.Cdr)
		if err != nil {
			return nil, err
		}
		s, err = in.Force(rest)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
