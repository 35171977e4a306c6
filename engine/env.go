package engine

// Environment is a chain of frames binding symbols to values, each with a
// link to its parent frame. Each frame is a map, so Define can add a new
// binding to the current frame without rebuilding the chain, and closures
// sharing a frame observe each other's later mutations to it.
type Environment struct {
	vars   map[*Symbol]Any
	parent *Environment
}

// NewEnvironment creates a fresh, empty frame with the given parent (nil
// for the global frame).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{vars: make(map[*Symbol]Any), parent: parent}
}

// Lookup returns the value bound to sym, walking the frame chain outward.
func (e *Environment) Lookup(sym *Symbol) (Any, error) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.vars[sym]; ok {
			return v, nil
		}
	}
	return nil, NewError(UnboundSymbol, "unbound variable: %s", string(*sym))
}

// Define binds sym in the current frame unconditionally, shadowing any
// outer binding of the same name for the lifetime of this frame.
func (e *Environment) Define(sym *Symbol, val Any) {
	e.vars[sym] = val
}

// SetBang mutates the first frame along the chain that already binds sym.
// It fails with AssignError if no such frame exists.
func (e *Environment) SetBang(sym *Symbol, val Any) error {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.vars[sym]; ok {
			f.vars[sym] = val
			return nil
		}
	}
	return NewError(AssignError, "unbound variable: %s", string(*sym))
}

// Extend returns a new child frame binding params to the arguments args (a
// proper Scheme list of already-evaluated values, or of raw unevaluated
// operand expressions when called by the macro expander). params may take
// any of three shapes:
//
//   - a proper list: each arg binds by position, arity enforced exactly.
//   - a single symbol: that symbol binds to the whole argument list.
//   - a dotted list (p1 p2 . rest): fixed params bind positionally, the
//     remaining arguments collect into a list bound to rest.
func (e *Environment) Extend(params Any, args Any) (*Environment, error) {
	child := NewEnvironment(e)
	if sym, ok := params.(*Symbol); ok {
		child.Define(sym, args)
		return child, nil
	}
	p, a := params, args
	for {
		switch pc := p.(type) {
		case *Cell:
			if pc == Nil {
				// Proper list exhausted.
				if a != Nil {
					return nil, NewError(ArityError, "too many arguments")
				}
				return child, nil
			}
			ac, ok := a.(*Cell)
			if !ok || ac == Nil {
				return nil, NewError(ArityError, "too few arguments")
			}
			sym, ok := pc.Car.(*Symbol)
			if !ok {
				return nil, NewError(InternalError, "non-symbol in parameter list")
			}
			child.Define(sym, ac.Car)
			p, a = pc.Cdr, ac.Cdr
		case *Symbol:
			child.Define(pc, a)
			return child, nil
		default:
			// Any other atom ends the parameter list the same way Nil does.
			if a != Nil {
				return nil, NewError(ArityError, "too many arguments")
			}
			return child, nil
		}
	}
}

// CountParams reports the minimum and maximum number of positional
// arguments params accepts; max is -1 if params ends in a rest symbol.
func CountParams(params Any) (min, max int) {
	p := params
	for {
		switch pc := p.(type) {
		case *Cell:
			if pc == Nil {
				return min, min
			}
			min++
			p = pc.Cdr
		case *Symbol:
			return min, -1
		default:
			return min, min
		}
	}
}
