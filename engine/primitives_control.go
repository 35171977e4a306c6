package engine

import (
	"os"
	"strings"
)

// primForce implements force: forcing a non-Promise returns its argument
// unchanged.
func primForce(i *Interp, callerEnv *Environment, args []Any) (Any, error) {
	p, ok := args[0].(*Promise)
	if !ok {
		return args[0], nil
	}
	return i.Force(p)
}

func primStreamCdr(i *Interp, callerEnv *Environment, args []Any) (Any, error) {
	return i.streamCdr(args)
}

func primStreamMap(i *Interp, callerEnv *Environment, args []Any) (Any, error) {
	return i.streamMap(args[0], args[1], callerEnv)
}

func primStreamFilter(i *Interp, callerEnv *Environment, args []Any) (Any, error) {
	return i.streamFilter(args[0], args[1], callerEnv)
}

func primStreamReduce(i *Interp, callerEnv *Environment, args []Any) (Any, error) {
	return i.streamReduce(args[0], args[1], args[2], callerEnv)
}

// primEval evaluates expr in the environment active at eval's own call
// site, since TinySCM has no first-class environment value to pass
// explicitly.
func primEval(i *Interp, callerEnv *Environment, args []Any) (Any, error) {
	return i.Eval(args[0], callerEnv)
}

// primError raises UserError carrying the concatenation of its arguments'
// display forms.
func primError(args []Any) (Any, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Format(a, false)
	}
	return nil, NewError(UserError, "%s", strings.Join(parts, " "))
}

func primExit(args []Any) (Any, error) {
	code := 0
	if len(args) == 1 {
		n, err := asInteger("exit", args[0])
		if err != nil {
			return nil, err
		}
		code = int(n)
	}
	os.Exit(code)
	return Undefined, nil
}
