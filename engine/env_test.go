package engine

import "testing"

func TestEnvLookupAndDefine(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define(Intern("x"), Integer(1))
	v, err := env.Lookup(Intern("x"))
	if err != nil || v != Integer(1) {
		t.Fatalf("Lookup(x) = %v, %v, want 1, nil", v, err)
	}
}

func TestEnvLookupUnbound(t *testing.T) {
	env := NewEnvironment(nil)
	_, err := env.Lookup(Intern("nope"))
	se, ok := err.(*SchemeError)
	if !ok || se.Kind != UnboundSymbol {
		t.Fatalf("Lookup(nope) error = %v, want UnboundSymbol", err)
	}
}

func TestEnvLookupWalksParentChain(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Define(Intern("x"), Integer(1))
	child := NewEnvironment(parent)
	v, err := child.Lookup(Intern("x"))
	if err != nil || v != Integer(1) {
		t.Fatalf("child Lookup(x) = %v, %v, want 1, nil", v, err)
	}
}

func TestEnvDefineShadowsParent(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Define(Intern("x"), Integer(1))
	child := NewEnvironment(parent)
	child.Define(Intern("x"), Integer(2))
	if v, _ := child.Lookup(Intern("x")); v != Integer(2) {
		t.Fatalf("child x = %v, want 2", v)
	}
	if v, _ := parent.Lookup(Intern("x")); v != Integer(1) {
		t.Fatalf("parent x = %v, want 1 (must be unaffected by child Define)", v)
	}
}

func TestEnvSetBangMutatesOwningFrame(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Define(Intern("x"), Integer(1))
	child := NewEnvironment(parent)
	if err := child.SetBang(Intern("x"), Integer(9)); err != nil {
		t.Fatal(err)
	}
	if v, _ := parent.Lookup(Intern("x")); v != Integer(9) {
		t.Fatalf("parent x after child set! = %v, want 9", v)
	}
}

func TestEnvSetBangUnboundFails(t *testing.T) {
	env := NewEnvironment(nil)
	err := env.SetBang(Intern("nope"), Integer(1))
	se, ok := err.(*SchemeError)
	if !ok || se.Kind != AssignError {
		t.Fatalf("set! of unbound var error = %v, want AssignError", err)
	}
}

func TestEnvExtendProperList(t *testing.T) {
	env := NewEnvironment(nil)
	params := List(Intern("a"), Intern("b"))
	args := List(Integer(1), Integer(2))
	child, err := env.Extend(params, args)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := child.Lookup(Intern("a")); v != Integer(1) {
		t.Fatalf("a = %v, want 1", v)
	}
	if v, _ := child.Lookup(Intern("b")); v != Integer(2) {
		t.Fatalf("b = %v, want 2", v)
	}
}

func TestEnvExtendTooFewArgs(t *testing.T) {
	env := NewEnvironment(nil)
	params := List(Intern("a"), Intern("b"))
	args := List(Integer(1))
	_, err := env.Extend(params, args)
	se, ok := err.(*SchemeError)
	if !ok || se.Kind != ArityError {
		t.Fatalf("too few args error = %v, want ArityError", err)
	}
}

func TestEnvExtendTooManyArgs(t *testing.T) {
	env := NewEnvironment(nil)
	params := List(Intern("a"))
	args := List(Integer(1), Integer(2))
	_, err := env.Extend(params, args)
	se, ok := err.(*SchemeError)
	if !ok || se.Kind != ArityError {
		t.Fatalf("too many args error = %v, want ArityError", err)
	}
}

func TestEnvExtendSingleSymbolCollectsAll(t *testing.T) {
	env := NewEnvironment(nil)
	args := List(Integer(1), Integer(2), Integer(3))
	child, err := env.Extend(Intern("rest"), args)
	if err != nil {
		t.Fatal(err)
	}
	v, _ := child.Lookup(Intern("rest"))
	if Format(v, true) != Format(args, true) {
		t.Fatalf("rest = %s, want %s", Format(v, true), Format(args, true))
	}
}

func TestEnvExtendDottedRest(t *testing.T) {
	env := NewEnvironment(nil)
	params := &Cell{Intern("a"), &Cell{Intern("b"), Intern("rest")}}
	args := List(Integer(1), Integer(2), Integer(3), Integer(4))
	child, err := env.Extend(params, args)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := child.Lookup(Intern("a")); v != Integer(1) {
		t.Fatalf("a = %v, want 1", v)
	}
	if v, _ := child.Lookup(Intern("b")); v != Integer(2) {
		t.Fatalf("b = %v, want 2", v)
	}
	rest, _ := child.Lookup(Intern("rest"))
	want := List(Integer(3), Integer(4))
	if Format(rest, true) != Format(want, true) {
		t.Fatalf("rest = %s, want %s", Format(rest, true), Format(want, true))
	}
}

func TestCountParams(t *testing.T) {
	min, max := CountParams(List(Intern("a"), Intern("b")))
	if min != 2 || max != 2 {
		t.Fatalf("CountParams((a b)) = %d, %d, want 2, 2", min, max)
	}
	min, max = CountParams(&Cell{Intern("a"), Intern("rest")})
	if min != 1 || max != -1 {
		t.Fatalf("CountParams((a . rest)) = %d, %d, want 1, -1", min, max)
	}
	min, max = CountParams(Intern("all"))
	if min != 0 || max != -1 {
		t.Fatalf("CountParams(all) = %d, %d, want 0, -1", min, max)
	}
}
