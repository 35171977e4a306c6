package engine

import (
	"strconv"
	"strings"
)

// Format returns the printed representation of v. quote controls whether
// strings are shown with surrounding quotes (true for the REPL's echoed
// values and for data nested inside a list; display-style primitives pass
// false for the outermost string).
func Format(v Any, quote bool) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "#t"
		}
		return "#f"
	case Integer:
		return strconv.FormatInt(int64(x), 10)
	case Real:
		return formatReal(float64(x))
	case String:
		if quote {
			return strconv.Quote(string(x))
		}
		return string(x)
	case *Symbol:
		return string(*x)
	case undefinedType:
		return "undefined"
	case *Cell:
		return formatCell(x)
	case *Promise:
		if x.forced {
			return "#[promise forced]"
		}
		return "#[promise (not forced)]"
	case *Primitive:
		return "#[primitive " + x.Name + "]"
	case *Closure:
		return "#[lambda " + procName(x.Name) + "]"
	case *DynClosure:
		return "#[dlambda " + procName(x.Name) + "]"
	case *Macro:
		return "#[macro " + procName(x.Name) + "]"
	default:
		if x == nil || x == Nil {
			return "()"
		}
		return "#[unknown]"
	}
}

func procName(name string) string {
	if name == "" {
		return "λ"
	}
	return name
}

// formatReal guarantees a decimal point appears, using the shortest
// round-trippable representation strconv already computes.
func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func formatCell(c *Cell) string {
	if c == Nil {
		return "()"
	}
	var parts []string
	cur := Any(c)
	for {
		cell, ok := cur.(*Cell)
		if !ok || cell == Nil {
			break
		}
		parts = append(parts, Format(cell.Car, true))
		cur = cell.Cdr
	}
	if cur != Nil && cur != nil {
		if _, isCell := cur.(*Cell); !isCell {
			parts = append(parts, ".", Format(cur, true))
		}
	}
	return "(" + strings.Join(parts, " ") + ")"
}
