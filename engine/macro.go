package engine

// expandMacro expands a macro application in three steps: bind the
// unevaluated operand expressions in a child of the macro's definition
// environment, evaluate the macro body there, then hand the resulting
// expression back to the caller for evaluation in the call site's
// environment, never the macro's own.
//
// Unlike applying a Closure, a macro's operands are never evaluated: they
// are bound as raw S-expressions, exactly as written at the call site.
func (in *Interp) expandMacro(m *Macro, operands Any, callEnv *Environment) (Any, error) {
	bindEnv, err := m.Env.Extend(m.Params, operands)
	if err != nil {
		return nil, macroArityErrorFor(m.Name, err)
	}
	nextExpr, nextEnv, val, done, err := sequenceTail(in, m.Body, bindEnv)
	if err != nil {
		return nil, err
	}
	if done {
		return val, nil
	}
	// The macro body's last expression is itself a pending tail; finish it
	// the same way Apply does before handing the expansion back.
	return in.Eval(nextExpr, nextEnv)
}
