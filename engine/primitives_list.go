package engine

func asPair(name string, v Any) (*Cell, error) {
	c, ok := v.(*Cell)
	if !ok || c == Nil {
		return nil, NewError(TypeError, "%s: not a pair: %s", name, Format(v, true))
	}
	return c, nil
}

func primCons(args []Any) (Any, error) {
	return &Cell{args[0], args[1]}, nil
}

func primCar(args []Any) (Any, error) {
	c, err := asPair("car", args[0])
	if err != nil {
		return nil, err
	}
	return c.Car, nil
}

func primCdr(args []Any) (Any, error) {
	c, err := asPair("cdr", args[0])
	if err != nil {
		return nil, err
	}
	return c.Cdr, nil
}

func primSetCarBang(args []Any) (Any, error) {
	c, err := asPair("set-car!", args[0])
	if err != nil {
		return nil, err
	}
	c.Car = args[1]
	return Undefined, nil
}

func primSetCdrBang(args []Any) (Any, error) {
	c, err := asPair("set-cdr!", args[0])
	if err != nil {
		return nil, err
	}
	c.Cdr = args[1]
	return Undefined, nil
}

func primList(args []Any) (Any, error) {
	return List(args...), nil
}

func primLength(args []Any) (Any, error) {
	n := Length(args[0])
	if n < 0 {
		return nil, NewError(TypeError, "length: not a proper list: %s", Format(args[0], true))
	}
	return Integer(n), nil
}

func primAppend(args []Any) (Any, error) {
	if len(args) == 0 {
		return Nil, nil
	}
	var all []Any
	for i, a := range args[:len(args)-1] {
		vals, ok := ToSlice(a)
		if !ok {
			return nil, NewError(TypeError, "append: operand %d is not a proper list: %s", i+1, Format(a, true))
		}
		all = append(all, vals...)
	}
	result := args[len(args)-1]
	for i := len(all) - 1; i >= 0; i-- {
		result = &Cell{all[i], result}
	}
	return result, nil
}
