package natives

import (
	"math/big"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"

	"zemscript/lib/diag"
	"zemscript/lib/value"
)

func init() {
	mustRegister(
		JsonEncodeNative{},
		JsonDecodeNative{},
		YamlDecodeNative{},
		HashNative{},
	)
}

type JsonEncodeNative struct{}

func (j JsonEncodeNative) Signature() *Signature {
	return NewSignature("json_encode").Arity(1, 1)
}

func (j JsonEncodeNative) Apply(_ Host, args []value.Value) (value.Value, error) {
	data, err := value.ToJson(args[0])
	if err != nil {
		return value.Nil, diag.New(diag.InvalidType, "json_encode: %v", err)
	}
	return value.String(data), nil
}

type JsonDecodeNative struct{}

func (j JsonDecodeNative) Signature() *Signature {
	return NewSignature("json_decode").Arity(1, 1)
}

func (j JsonDecodeNative) Apply(_ Host, args []value.Value) (value.Value, error) {
	s, ok := args[0].(value.String)
	if !ok {
		return value.Nil, diag.New(diag.InvalidType, "json_decode expects a string but got %s", args[0].Kind())
	}
	ret, err := value.FromJson([]byte(s))
	if err != nil {
		return value.Nil, diag.New(diag.InvalidType, "json_decode: %v", err)
	}
	return ret, nil
}

type YamlDecodeNative struct{}

func (y YamlDecodeNative) Signature() *Signature {
	return NewSignature("yaml_decode").Arity(1, 1)
}

func (y YamlDecodeNative) Apply(_ Host, args []value.Value) (value.Value, error) {
	s, ok := args[0].(value.String)
	if !ok {
		return value.Nil, diag.New(diag.InvalidType, "yaml_decode expects a string but got %s", args[0].Kind())
	}
	ret, err := value.FromYaml([]byte(s))
	if err != nil {
		return value.Nil, diag.New(diag.InvalidType, "yaml_decode: %v", err)
	}
	return ret, nil
}

// HashNative returns the 64-bit xxhash of the display form of its argument.
type HashNative struct{}

func (h HashNative) Signature() *Signature {
	return NewSignature("hash").Arity(1, 1)
}

func (h HashNative) Apply(_ Host, args []value.Value) (value.Value, error) {
	sum := xxhash.Sum64String(args[0].String())
	return value.NewNumber(decimal.NewFromBigInt(new(big.Int).SetUint64(sum), 0)), nil
}
