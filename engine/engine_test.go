package engine

import (
	"strings"
	"testing"
)

// evalAll reads and evaluates every top-level datum in src against a fresh
// interpreter, returning the value of the last one.
func evalAll(t *testing.T, src string) Any {
	t.Helper()
	interp := NewInterp()
	reader := NewReader(NewLexer(strings.NewReader(src)))
	var last Any = Undefined
	for {
		expr, err := reader.ReadOne()
		if err == ErrEOF {
			return last
		}
		if err != nil {
			t.Fatalf("read %q: %v", src, err)
		}
		last, err = interp.Eval(expr, interp.Global)
		if err != nil {
			t.Fatalf("eval %q: %v", src, err)
		}
	}
}

func evalAllErr(t *testing.T, src string) (Any, error) {
	t.Helper()
	interp := NewInterp()
	reader := NewReader(NewLexer(strings.NewReader(src)))
	var last Any = Undefined
	for {
		expr, err := reader.ReadOne()
		if err == ErrEOF {
			return last, nil
		}
		if err != nil {
			return nil, err
		}
		last, err = interp.Eval(expr, interp.Global)
		if err != nil {
			return nil, err
		}
	}
}

func mustReadOne(t *testing.T, src string) Any {
	t.Helper()
	v, err := NewReader(NewLexer(strings.NewReader(src))).ReadOne()
	if err != nil {
		t.Fatalf("read %q: %v", src, err)
	}
	return v
}

func TestSymbolInterning(t *testing.T) {
	if got := evalAll(t, "(eq? 'abc 'abc)"); got != true {
		t.Fatalf("(eq? 'abc 'abc) = %v, want #t", got)
	}
	if Intern("xyz") != Intern("xyz") {
		t.Fatal("Intern is not returning the same pointer for the same spelling")
	}
}

func TestQuoteIdentity(t *testing.T) {
	cases := []string{"42", "3.5", `"hi"`, "#t", "()", "(1 2 3)", "(1 . 2)"}
	for _, c := range cases {
		datum := mustReadOne(t, c)
		got := evalAll(t, "(quote "+c+")")
		if Format(got, true) != Format(datum, true) {
			t.Errorf("quote of %s: got %s, want %s", c, Format(got, true), Format(datum, true))
		}
	}
}

func TestReaderRoundTrip(t *testing.T) {
	cases := []Any{
		Integer(7),
		Real(2.5),
		String("abc"),
		true,
		false,
		Nil,
		List(Integer(1), Integer(2), Integer(3)),
		&Cell{Integer(1), Integer(2)},
	}
	for _, v := range cases {
		text := Format(v, true)
		got := mustReadOne(t, text)
		if Format(got, true) != text {
			t.Errorf("round-trip %s: reread as %s", text, Format(got, true))
		}
	}
}

func TestEnvironmentShadowing(t *testing.T) {
	src := `
		(define x 1)
		(define (f) (define x 2) x)
		(f)
	`
	if got := evalAll(t, src); got != Integer(2) {
		t.Fatalf("inner define result = %v, want 2", got)
	}
	if got := evalAll(t, src+"\nx"); got != Integer(1) {
		t.Fatalf("outer x after call = %v, want 1 (unaffected by the call's local define)", got)
	}
}

func TestArithmeticContagion(t *testing.T) {
	if _, ok := evalAll(t, "(+ 1 2)").(Integer); !ok {
		t.Fatal("(+ 1 2) is not an Integer")
	}
	if _, ok := evalAll(t, "(+ 1 2.0)").(Integer); ok {
		t.Fatal("(+ 1 2.0) stayed an Integer; a Real operand must produce a Real")
	}
}

func TestDivisionByZero(t *testing.T) {
	_, err := evalAllErr(t, "(/ 1 0)")
	se, ok := err.(*SchemeError)
	if !ok || se.Kind != ArithmeticError {
		t.Fatalf("(/ 1 0) error = %v, want ArithmeticError", err)
	}
}

func TestCarOfNonPairIsTypeError(t *testing.T) {
	_, err := evalAllErr(t, "(car 5)")
	se, ok := err.(*SchemeError)
	if !ok || se.Kind != TypeError {
		t.Fatalf("(car 5) error = %v, want TypeError", err)
	}
}

func TestPromiseMemoization(t *testing.T) {
	src := `
		(define calls 0)
		(define (bump) (set! calls (+ calls 1)) calls)
		(define p (delay (bump)))
		(force p)
		(force p)
		calls
	`
	if got := evalAll(t, src); got != Integer(1) {
		t.Fatalf("calls after two forces = %v, want 1", got)
	}
}

func TestCircularForce(t *testing.T) {
	src := `
		(define p (delay (force p)))
		(force p)
	`
	_, err := evalAllErr(t, src)
	se, ok := err.(*SchemeError)
	if !ok || se.Kind != CircularForceError {
		t.Fatalf("self-referential force error = %v, want CircularForce", err)
	}
}

// TestTailCallBound checks that a self-tail-recursive procedure runs in
// constant host stack space: if Eval recursed on the host stack per
// iteration this would overflow long before a million iterations.
func TestTailCallBound(t *testing.T) {
	src := `
		(define (sum n t) (if (zero? n) t (sum (- n 1) (+ n t))))
		(sum 1000000 0)
	`
	want := Integer(500000500000)
	if got := evalAll(t, src); got != want {
		t.Fatalf("(sum 1000000 0) = %v, want %v", got, want)
	}
}

func TestSumSmall(t *testing.T) {
	src := `
		(define (sum n t) (if (zero? n) t (sum (- n 1) (+ n t))))
		(sum 1001 0)
	`
	if got := evalAll(t, src); got != Integer(501501) {
		t.Fatalf("(sum 1001 0) = %v, want 501501", got)
	}
}

func TestLexicalClosureState(t *testing.T) {
	src := `
		(define (mk b) (lambda (a) (if (>= b a) (begin (set! b (- b a)) b) "Insufficient funds")))
		(define W (mk 100))
	`
	interp := NewInterp()
	reader := NewReader(NewLexer(strings.NewReader(src)))
	for {
		expr, err := reader.ReadOne()
		if err == ErrEOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if _, err := interp.Eval(expr, interp.Global); err != nil {
			t.Fatal(err)
		}
	}
	call := func(n int) Any {
		w, err := interp.Global.Lookup(Intern("W"))
		if err != nil {
			t.Fatal(err)
		}
		v, err := interp.Apply(w, []Any{Integer(n)}, interp.Global)
		if err != nil {
			t.Fatal(err)
		}
		return v
	}
	if got := call(50); got != Integer(50) {
		t.Fatalf("(W 50) = %v, want 50", got)
	}
	if got := call(70); got != String("Insufficient funds") {
		t.Fatalf(`(W 70) = %v, want "Insufficient funds"`, got)
	}
	if got := call(40); got != Integer(10) {
		t.Fatalf("(W 40) = %v, want 10", got)
	}
}

func TestDynamicScope(t *testing.T) {
	src := `
		(define f (dlambda () (* a b)))
		(define g (lambda () (define a 4) (define b 5) (f)))
		(g)
	`
	if got := evalAll(t, src); got != Integer(20) {
		t.Fatalf("(g) = %v, want 20", got)
	}
}

func TestMacroExpansion(t *testing.T) {
	src := `
		(define-macro (for p xs body) (list 'map (list 'lambda (list p) body) xs))
		(for i '(1 2 3) (* i i))
	`
	got := evalAll(t, src)
	want := List(Integer(1), Integer(4), Integer(9))
	if Format(got, true) != Format(want, true) {
		t.Fatalf("(for i '(1 2 3) (* i i)) = %s, want %s", Format(got, true), Format(want, true))
	}
}

func TestStreams(t *testing.T) {
	src := `
		(define (e lo hi) (if (> lo hi) nil (cons-stream lo (e (+ lo 1) hi))))
		(e 10000 10005)
	`
	got := evalAll(t, src)
	if Format(got, true) != "(10000 . #[promise (not forced)])" {
		t.Fatalf("(e 10000 10005) printed as %s", Format(got, true))
	}

	src2 := src + "\n(force (stream-cdr (e 10000 10005)))"
	got2 := evalAll(t, src2)
	if Format(got2, true) != "(10001 . #[promise (not forced)])" {
		t.Fatalf("(force (stream-cdr ...)) printed as %s", Format(got2, true))
	}
}

func TestLetIsNotLetStar(t *testing.T) {
	if got := evalAll(t, "(let ((x 2) (y 3)) (+ x y))"); got != Integer(5) {
		t.Fatalf("(let ((x 2) (y 3)) (+ x y)) = %v, want 5", got)
	}
	src := "(let ((x 1)) (let ((x 2) (y x)) y))"
	if got := evalAll(t, src); got != Integer(1) {
		t.Fatalf("%s = %v, want 1 (inner y must see the outer x)", src, got)
	}
}
