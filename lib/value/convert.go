package value

// ToNumber succeeds only for numbers; there is no implicit coercion.
func ToNumber(v Value) (Number, error) {
	if n, ok := v.(Number); ok {
		return n, nil
	}
	return Number{}, invalid("expected type 'number' but got type '%s'", v.Kind())
}

// ToBool succeeds only for booleans.
func ToBool(v Value) (Bool, error) {
	if b, ok := v.(Bool); ok {
		return b, nil
	}
	return false, invalid("expected type 'boolean' but got type '%s'", v.Kind())
}

// ToString is the one sanctioned implicit conversion: every value has a
// display string.
func ToString(v Value) String {
	if s, ok := v.(String); ok {
		return s
	}
	return String(v.String())
}
