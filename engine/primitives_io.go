package engine

import (
	"fmt"
	"os"
)

// primPrint prints the quoted (readable) form of its argument followed by a
// newline, returning Undefined.
func primPrint(args []Any) (Any, error) {
	fmt.Fprintln(os.Stdout, Format(args[0], true))
	return Undefined, nil
}

// primPrintThenReturn is a debugging aid: print as a side effect, but hand
// the value straight back so it can be spliced into an expression without
// disturbing its value.
func primPrintThenReturn(args []Any) (Any, error) {
	fmt.Fprintln(os.Stdout, Format(args[0], true))
	return args[0], nil
}

func primDisplay(args []Any) (Any, error) {
	fmt.Fprint(os.Stdout, Format(args[0], false))
	return Undefined, nil
}

func primDisplayln(args []Any) (Any, error) {
	fmt.Fprintln(os.Stdout, Format(args[0], false))
	return Undefined, nil
}

func primNewline(args []Any) (Any, error) {
	fmt.Fprintln(os.Stdout)
	return Undefined, nil
}
