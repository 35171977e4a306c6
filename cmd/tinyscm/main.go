// Command tinyscm is the read-eval-print loop and script loader for the
// TinySCM language engine. It owns everything the core engine deliberately
// stays out of: prompt printing, line editing and history, flag parsing,
// and file loading.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"

	"tinyscm/engine"
)

const prompt = "scm> "

func main() {
	astOnly := flag.Bool("ast", false, "print each top-level expression in canonical form instead of evaluating it")
	flag.Parse()

	interp := engine.NewInterp()

	for _, filename := range flag.Args() {
		if err := loadFile(interp, filename, *astOnly); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %s\n", filename, err)
		}
	}

	os.Exit(runREPL(interp, *astOnly))
}

// loadFile reads and evaluates filename top-to-bottom. A read or eval error
// terminates the load of this file but does not stop the front end from
// moving on to the REPL rather than aborting the whole process.
func loadFile(interp *engine.Interp, filename string, astOnly bool) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := engine.NewReader(engine.NewLexer(f))
	for {
		expr, err := reader.ReadOne()
		if err == engine.ErrEOF {
			return nil
		}
		if err != nil {
			return err
		}
		if astOnly {
			fmt.Println(engine.Format(expr, true))
			continue
		}
		if _, err := interp.Eval(expr, interp.Global); err != nil {
			return err
		}
	}
}

// runREPL implements the interactive surface: prompt, read, (print the AST
// or) evaluate and print, loop; a multi-line datum keeps re-prompting with a
// blank continuation prompt. A line holding more than one datum ("1 2 3")
// evaluates and prints all of them before the next prompt, rather than
// dropping everything after the first. (exit) terminates the process
// directly from the primitive; runREPL's own return path covers the other
// normal termination, EOF on stdin.
func runREPL(interp *engine.Interp, astOnly bool) int {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		text, ok := readDatumText(line)
		if !ok {
			fmt.Println()
			return 0
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		line.AppendHistory(text)

		reader := engine.NewReader(engine.NewLexer(strings.NewReader(text)))
		for {
			expr, err := reader.ReadOne()
			if err == engine.ErrEOF {
				break
			}
			if err != nil {
				printError(err)
				break
			}
			if astOnly {
				fmt.Println(engine.Format(expr, true))
				continue
			}
			v, err := interp.Eval(expr, interp.Global)
			if err != nil {
				printError(err)
				continue
			}
			fmt.Println(engine.Format(v, true))
		}
	}
}

// readDatumText reads lines from the line editor, feeding them to a probe
// reader until a complete datum is seen or input ends. ok is false only when
// input ends (Ctrl-D) or the prompt is aborted (Ctrl-C) before any text has
// been collected; a read error inside a partial datum is left for the
// caller to report by re-parsing the accumulated text.
func readDatumText(line *liner.State) (text string, ok bool) {
	var buf strings.Builder
	p := prompt
	for {
		l, err := line.Prompt(p)
		if err != nil {
			// End of input (Ctrl-D) or an aborted prompt (Ctrl-C on an
			// empty line): stop collecting. ok reflects whether a partial
			// datum was already accumulated and still needs reporting.
			return buf.String(), buf.Len() > 0
		}
		buf.WriteString(l)
		buf.WriteByte('\n')

		reader := engine.NewReader(engine.NewLexer(strings.NewReader(buf.String())))
		_, err = reader.ReadOne()
		switch err {
		case nil:
			// A complete datum was read.
			return buf.String(), true
		case engine.ErrEOF:
			// Nothing but whitespace/comments so far; keep collecting.
		case engine.ErrIncomplete:
			// An open list or a dangling quote-tick: re-prompt with a blank
			// continuation prompt.
			p = strings.Repeat(" ", len(prompt))
			continue
		default:
			// A genuine syntax error (e.g. a stray ")"); stop collecting and
			// let the caller re-parse and report it.
			return buf.String(), true
		}
	}
}

func printError(err error) {
	var se *engine.SchemeError
	if errors.As(err, &se) {
		fmt.Fprintf(os.Stderr, "Error: %s: %s\n", se.Kind, se.Message)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
}
