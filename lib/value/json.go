package value

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/shopspring/decimal"
)

func FromJson(data []byte) (Value, error) {
	vdata, vtype, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, err
	}
	val, err := parseJson(vdata, vtype)
	if err != nil {
		return nil, err
	}
	return val, nil
}

// ToJson serializes v. Dictionary keys must be strings, and neither functions
// nor containers that hold themselves have a JSON form.
func ToJson(val Value) ([]byte, error) {
	if cyclic(val) {
		return nil, invalid("json serialization of a %s that contains itself not supported", val.Kind())
	}
	buf := &bytes.Buffer{}
	if err := writeJson(buf, val); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJson(buf *bytes.Buffer, val Value) error {
	switch t := val.(type) {
	case nil_:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(t.String())
	case Number:
		buf.WriteString(t.String())
	case String:
		data, err := json.Marshal(string(t))
		if err != nil {
			return err
		}
		buf.Write(data)
	case *Array:
		buf.WriteByte('[')
		for i, v := range t.values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJson(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *Dict:
		buf.WriteByte('{')
		var err error
		first := true
		t.Iter(func(k, v Value) bool {
			ks, ok := k.(String)
			if !ok {
				err = invalid("json objects only support string keys but got type '%s'", k.Kind())
				return false
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err = writeJson(buf, ks); err != nil {
				return false
			}
			buf.WriteByte(':')
			err = writeJson(buf, v)
			return err == nil
		})
		if err != nil {
			return err
		}
		buf.WriteByte('}')
	default:
		return invalid("json serialization for type '%s' not supported", val.Kind())
	}
	return nil
}

func parseJson(vdata []byte, vtype jsonparser.ValueType) (Value, error) {
	switch vtype {
	case jsonparser.Boolean:
		if v, err := jsonparser.ParseBoolean(vdata); err == nil {
			return Bool(v), nil
		} else {
			return nil, err
		}
	case jsonparser.Number:
		if v, err := decimal.NewFromString(string(vdata)); err == nil {
			return Number{d: v}, nil
		} else {
			return nil, err
		}
	case jsonparser.String:
		if v, err := jsonparser.ParseString(vdata); err == nil {
			return String(v), nil
		} else {
			return nil, err
		}
	case jsonparser.Array:
		ret := NewArray()
		var errors []error
		handler := func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
			if err != nil {
				errors = append(errors, err)
			}
			v, err := parseJson(value, dataType)
			if err != nil {
				errors = append(errors, err)
			} else {
				ret.Append(v)
			}
		}
		_, err := jsonparser.ArrayEach(vdata, handler)
		if err != nil {
			return nil, err
		}
		if len(errors) != 0 {
			return nil, errors[0]
		}
		return ret, nil
	case jsonparser.Object:
		ret := NewDict()
		handler := func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
			k, err := jsonparser.ParseString(key)
			if err != nil {
				return err
			}
			v, err := parseJson(value, dataType)
			if err != nil {
				return err
			}
			ret.Set(String(k), v)
			return nil
		}
		err := jsonparser.ObjectEach(vdata, handler)
		if err != nil {
			return nil, err
		}
		return ret, nil
	case jsonparser.Null:
		return Nil, nil
	default:
		return nil, fmt.Errorf("unknown json type: %s", vtype)
	}
}
