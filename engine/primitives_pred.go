package engine

// primEqP implements eq?: identity for compound values (pointer equality
// falls out of Go's == on the *Cell/*Closure/*Symbol pointers themselves),
// value equality for the atoms that have no separate identity (Integer,
// Real, String, bool). Symbol equality is exactly Go pointer equality on
// *Symbol, since symbols are interned.
func primEqP(args []Any) (Any, error) {
	return args[0] == args[1], nil
}

// primEqvP additionally treats numbers as equal by value across the
// Integer/Real boundary.
func primEqvP(args []Any) (Any, error) {
	a, aNum := asFloat64(args[0])
	b, bNum := asFloat64(args[1])
	if aNum && bNum {
		return a == b, nil
	}
	return args[0] == args[1], nil
}

func primEqualP(args []Any) (Any, error) {
	return structEqual(args[0], args[1]), nil
}

func structEqual(a, b Any) bool {
	ac, aIsCell := a.(*Cell)
	bc, bIsCell := b.(*Cell)
	if aIsCell || bIsCell {
		if !aIsCell || !bIsCell {
			return false
		}
		if ac == Nil || bc == Nil {
			return ac == bc
		}
		return structEqual(ac.Car, bc.Car) && structEqual(ac.Cdr, bc.Cdr)
	}
	if af, aNum := asFloat64(a); aNum {
		if bf, bNum := asFloat64(b); bNum {
			return af == bf
		}
		return false
	}
	return a == b
}

func primNot(args []Any) (Any, error)       { return !IsTrue(args[0]), nil }
func primNullP(args []Any) (Any, error)     { return args[0] == Nil, nil }
func primNumberP(args []Any) (Any, error)   { _, ok := asFloat64(args[0]); return ok, nil }
func primIntegerP(args []Any) (Any, error)  { _, ok := args[0].(Integer); return ok, nil }
func primSymbolP(args []Any) (Any, error)   { _, ok := args[0].(*Symbol); return ok, nil }
func primStringP(args []Any) (Any, error)   { _, ok := args[0].(String); return ok, nil }

func primPairP(args []Any) (Any, error) {
	c, ok := args[0].(*Cell)
	return ok && c != Nil, nil
}

// primAtomP is the complement of pair?: everything that is not a non-empty
// cons cell counts as an atom, including () and every other non-pair value.
func primAtomP(args []Any) (Any, error) {
	c, ok := args[0].(*Cell)
	return !(ok && c != Nil), nil
}

func primProcedureP(args []Any) (Any, error) {
	switch args[0].(type) {
	case *Primitive, *Closure, *DynClosure:
		return true, nil
	default:
		return false, nil
	}
}
