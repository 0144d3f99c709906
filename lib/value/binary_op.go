package value

func route(l Value, opt string, other Value) (Value, error) {
	switch opt {
	case "+", "-", "*", "/", "%", "^":
		return arith(l, opt, other)
	case "==":
		return eq(l, other)
	case "!=":
		return neq(l, other)
	case "<", "<=", ">", ">=":
		return compare(l, opt, other)
	case "~":
		return concat(l, other)
	case "&&":
		return and(l, other)
	case "||":
		return or(l, other)
	case "[]":
		return index(l, other)
	}
	return Nil, invalid("unknown binary operator '%s'", opt)
}

func arith(left Value, opt string, right Value) (Value, error) {
	l, err := ToNumber(left)
	if err != nil {
		return Nil, err
	}
	r, ok := right.(Number)
	if !ok {
		return Nil, mismatch(left, right)
	}
	switch opt {
	case "+":
		return l.Add(r), nil
	case "-":
		return l.Sub(r), nil
	case "*":
		return l.Mul(r), nil
	case "/":
		return l.Div(r)
	case "%":
		return l.Mod(r)
	default:
		return l.Pow(r)
	}
}

func eq(left Value, right Value) (Value, error) {
	if left.Kind() != right.Kind() {
		return Nil, mismatch(left, right)
	}
	if cyclic(left) || cyclic(right) {
		return Nil, invalid("can not compare a %s that contains itself", left.Kind())
	}
	return Bool(left.Equal(right)), nil
}

func neq(left Value, right Value) (Value, error) {
	ret, err := eq(left, right)
	if err != nil {
		return Nil, err
	}
	return !ret.(Bool), nil
}

func compare(left Value, opt string, right Value) (Value, error) {
	var c int
	switch l := left.(type) {
	case Number:
		r, ok := right.(Number)
		if !ok {
			return Nil, mismatch(left, right)
		}
		c = l.Cmp(r)
	case String:
		r, ok := right.(String)
		if !ok {
			return Nil, mismatch(left, right)
		}
		switch {
		case l < r:
			c = -1
		case l > r:
			c = 1
		}
	default:
		return Nil, invalid("operator '%s' not supported on type '%s'", opt, left.Kind())
	}
	switch opt {
	case "<":
		return Bool(c < 0), nil
	case "<=":
		return Bool(c <= 0), nil
	case ">":
		return Bool(c > 0), nil
	default:
		return Bool(c >= 0), nil
	}
}

func concat(left Value, right Value) (Value, error) {
	return String(left.String() + right.String()), nil
}

func and(left Value, right Value) (Value, error) {
	l, err := ToBool(left)
	if err != nil {
		return Nil, err
	}
	r, err := ToBool(right)
	if err != nil {
		return Nil, err
	}
	return l && r, nil
}

func or(left Value, right Value) (Value, error) {
	l, err := ToBool(left)
	if err != nil {
		return Nil, err
	}
	r, err := ToBool(right)
	if err != nil {
		return Nil, err
	}
	return l || r, nil
}

func index(container Value, key Value) (Value, error) {
	switch c := container.(type) {
	case *Array:
		return c.Get(key)
	case *Dict:
		return c.Get(key)
	default:
		return Nil, invalid("can not index into value of type '%s'", container.Kind())
	}
}

// SetIndex writes v at key inside an array or dictionary.
func SetIndex(container Value, key Value, v Value) error {
	switch c := container.(type) {
	case *Array:
		return c.Set(key, v)
	case *Dict:
		c.Set(key, v)
		return nil
	default:
		return invalid("can not index into value of type '%s'", container.Kind())
	}
}
