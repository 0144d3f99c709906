package value

// Unary applies a prefix operator.
func Unary(opt string, operand Value) (Value, error) {
	switch opt {
	case "-":
		return negate(operand)
	case "+":
		return ToNumber(operand)
	case "!":
		return not(operand)
	}
	return Nil, invalid("unknown unary operator '%s'", opt)
}

func negate(v Value) (Value, error) {
	n, err := ToNumber(v)
	if err != nil {
		return Nil, err
	}
	return n.Neg(), nil
}

func not(v Value) (Value, error) {
	b, err := ToBool(v)
	if err != nil {
		return Nil, err
	}
	return !b, nil
}
