package engine

import "math"

// installPrimitives populates env (the global frame) with TinySCM's built-in
// procedures.
func installPrimitives(env *Environment) {
	for _, p := range primitiveTable {
		env.Define(Intern(p.Name), &Primitive{Name: p.Name, MinArgs: p.MinArgs, MaxArgs: p.MaxArgs, Fn: p.Fn})
	}
	env.Define(Intern("nil"), Nil)
	env.Define(Intern("true"), true)
	env.Define(Intern("false"), false)
}

type primEntry struct {
	Name    string
	MinArgs int
	MaxArgs int
	Fn      func(i *Interp, env *Environment, args []Any) (Any, error)
}

// env-agnostic primitives are wrapped with dropEnv so their table entries
// don't have to repeat the unused parameter.
func dropEnv(fn func(args []Any) (Any, error)) func(i *Interp, env *Environment, args []Any) (Any, error) {
	return func(i *Interp, env *Environment, args []Any) (Any, error) { return fn(args) }
}

var primitiveTable = []primEntry{
	// Arithmetic. An Integer combined with a Real yields a Real.
	{"+", 0, -1, dropEnv(primAdd)},
	{"-", 1, -1, dropEnv(primSub)},
	{"*", 0, -1, dropEnv(primMul)},
	{"/", 1, -1, dropEnv(primDiv)},
	{"quotient", 2, 2, dropEnv(primQuotient)},
	{"remainder", 2, 2, dropEnv(primRemainder)},
	{"modulo", 2, 2, dropEnv(primModulo)},
	{"abs", 1, 1, dropEnv(primAbs)},
	{"expt", 2, 2, dropEnv(primExpt)},

	// Numeric comparison.
	{"=", 1, -1, dropEnv(primNumEq)},
	{"<", 1, -1, dropEnv(primLt)},
	{">", 1, -1, dropEnv(primGt)},
	{"<=", 1, -1, dropEnv(primLe)},
	{">=", 1, -1, dropEnv(primGe)},
	{"zero?", 1, 1, dropEnv(primZeroP)},
	{"even?", 1, 1, dropEnv(primEvenP)},
	{"odd?", 1, 1, dropEnv(primOddP)},

	// Transcendentals.
	{"sin", 1, 1, dropEnv(mathUnary(math.Sin))},
	{"cos", 1, 1, dropEnv(mathUnary(math.Cos))},
	{"tan", 1, 1, dropEnv(mathUnary(math.Tan))},
	{"sqrt", 1, 1, dropEnv(mathUnary(math.Sqrt))},
	{"log", 1, 1, dropEnv(mathUnary(math.Log))},
	{"exp", 1, 1, dropEnv(mathUnary(math.Exp))},

	// Equivalence and type predicates.
	{"eq?", 2, 2, dropEnv(primEqP)},
	{"eqv?", 2, 2, dropEnv(primEqvP)},
	{"equal?", 2, 2, dropEnv(primEqualP)},
	{"not", 1, 1, dropEnv(primNot)},
	{"null?", 1, 1, dropEnv(primNullP)},
	{"pair?", 1, 1, dropEnv(primPairP)},
	{"atom?", 1, 1, dropEnv(primAtomP)},
	{"number?", 1, 1, dropEnv(primNumberP)},
	{"integer?", 1, 1, dropEnv(primIntegerP)},
	{"symbol?", 1, 1, dropEnv(primSymbolP)},
	{"string?", 1, 1, dropEnv(primStringP)},
	{"procedure?", 1, 1, dropEnv(primProcedureP)},

	// Pair and list operations.
	{"cons", 2, 2, dropEnv(primCons)},
	{"car", 1, 1, dropEnv(primCar)},
	{"cdr", 1, 1, dropEnv(primCdr)},
	{"set-car!", 2, 2, dropEnv(primSetCarBang)},
	{"set-cdr!", 2, 2, dropEnv(primSetCdrBang)},
	{"list", 0, -1, dropEnv(primList)},
	{"length", 1, 1, dropEnv(primLength)},
	{"append", 0, -1, dropEnv(primAppend)},

	// Higher-order list procedures.
	{"map", 2, -1, primMap},
	{"filter", 2, 2, primFilter},
	{"reduce", 3, 3, primReduce},
	{"apply", 2, -1, primApply},

	// I/O.
	{"print", 1, 1, dropEnv(primPrint)},
	{"print-then-return", 1, 1, dropEnv(primPrintThenReturn)},
	{"display", 1, 1, dropEnv(primDisplay)},
	{"displayln", 1, 1, dropEnv(primDisplayln)},
	{"newline", 0, 0, dropEnv(primNewline)},

	// Promises and streams.
	{"force", 1, 1, primForce},
	{"stream-car", 1, 1, dropEnv(streamCar)},
	{"stream-cdr", 1, 1, primStreamCdr},
	{"stream-null?", 1, 1, dropEnv(streamNull)},
	{"stream-pair?", 1, 1, dropEnv(streamPair)},
	{"stream-map", 2, 2, primStreamMap},
	{"stream-filter", 2, 2, primStreamFilter},
	{"stream-reduce", 3, 3, primStreamReduce},

	// Control and diagnostics.
	{"eval", 1, 1, primEval},
	{"error", 1, -1, dropEnv(primError)},
	{"exit", 0, 1, dropEnv(primExit)},
}
