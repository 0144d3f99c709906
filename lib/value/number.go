package value

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"zemscript/lib/diag"
)

const (
	// MaxExponent is the largest exponent accepted by Pow.
	MaxExponent = 100000
	// MaxPowDigits bounds the size of the coefficient Pow may produce.
	MaxPowDigits = 1000000
)

var (
	bigOne  = big.NewInt(1)
	bigTen  = big.NewInt(10)
	bigTwo  = big.NewInt(2)
	bigFive = big.NewInt(5)
)

// Number is an arbitrary-precision decimal. All arithmetic is exact: an
// operation whose result has no finite decimal representation fails rather
// than rounding.
type Number struct {
	d decimal.Decimal
}

func NewNumber(d decimal.Decimal) Number {
	return Number{d: d}
}

func Int(n int64) Number {
	return Number{d: decimal.NewFromInt(n)}
}

// ParseNumber reads a numeric literal. Besides plain decimals it accepts
// the 0x, 0o and 0b integer prefixes.
func ParseNumber(lexeme string) (Number, error) {
	lower := strings.ToLower(lexeme)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		i, ok := new(big.Int).SetString(lower, 0)
		if !ok {
			return Number{}, diag.New(diag.Parser, "invalid number literal '%s'", lexeme)
		}
		return Number{d: decimal.NewFromBigInt(i, 0)}, nil
	}
	d, err := decimal.NewFromString(lexeme)
	if err != nil {
		return Number{}, diag.New(diag.Parser, "invalid number literal '%s'", lexeme)
	}
	return Number{d: d}, nil
}

func MustParseNumber(lexeme string) Number {
	n, err := ParseNumber(lexeme)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Number) isValue()   {}
func (n Number) Kind() Kind { return KindNumber }
func (n Number) Equal(v Value) bool {
	switch v := v.(type) {
	case Number:
		return n.d.Cmp(v.d) == 0
	default:
		return false
	}
}
func (n Number) String() string {
	return n.d.String()
}
func (n Number) Op(opt string, other Value) (Value, error) {
	return route(n, opt, other)
}

func (n Number) Decimal() decimal.Decimal {
	return n.d
}

func (n Number) IsInteger() bool {
	return n.d.Equal(n.d.Truncate(0))
}

// Int64 returns the value as an int64 when it is an integer in range.
func (n Number) Int64() (int64, bool) {
	if !n.IsInteger() {
		return 0, false
	}
	b := n.d.BigInt()
	if !b.IsInt64() {
		return 0, false
	}
	return b.Int64(), true
}

func (n Number) Cmp(o Number) int {
	return n.d.Cmp(o.d)
}

func (n Number) Add(o Number) Number {
	return Number{d: n.d.Add(o.d)}
}

func (n Number) Sub(o Number) Number {
	return Number{d: n.d.Sub(o.d)}
}

func (n Number) Mul(o Number) Number {
	return Number{d: n.d.Mul(o.d)}
}

func (n Number) Neg() Number {
	return Number{d: n.d.Neg()}
}

// Div divides exactly. The quotient of two decimals terminates only when
// the reduced divisor has no prime factors other than 2 and 5.
func (n Number) Div(o Number) (Number, error) {
	if o.d.IsZero() {
		return Number{}, diag.New(diag.Arithmetic, "division by zero")
	}
	if n.d.IsZero() {
		return Int(0), nil
	}
	num := n.d.Coefficient()
	den := o.d.Coefficient()
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), new(big.Int).Abs(den))
	num.Quo(num, g)
	den.Quo(den, g)
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	rest := new(big.Int).Set(den)
	twos := strip(rest, bigTwo)
	fives := strip(rest, bigFive)
	if rest.Cmp(bigOne) != 0 {
		return Number{}, diag.New(diag.Arithmetic, "non-terminating decimal expansion; no exact representable decimal result")
	}
	k := twos
	if fives > k {
		k = fives
	}
	num.Mul(num, new(big.Int).Quo(pow10(k), den))
	return Number{d: decimal.NewFromBigInt(num, n.d.Exponent()-o.d.Exponent()-int32(k))}, nil
}

// Mod is the remainder of truncated division; its sign follows the dividend.
func (n Number) Mod(o Number) (Number, error) {
	if o.d.IsZero() {
		return Number{}, diag.New(diag.Arithmetic, "division by zero")
	}
	exp := n.d.Exponent()
	if o.d.Exponent() < exp {
		exp = o.d.Exponent()
	}
	a := rescale(n.d, exp)
	b := rescale(o.d, exp)
	return Number{d: decimal.NewFromBigInt(a.Rem(a, b), exp)}, nil
}

// Pow raises n to an integer exponent in [0, MaxExponent].
func (n Number) Pow(o Number) (Number, error) {
	e, ok := o.Int64()
	if !ok {
		return Number{}, diag.New(diag.Arithmetic, "invalid exponent '%s': exponent must be an integer", o)
	}
	if e < 0 || e > MaxExponent {
		return Number{}, diag.New(diag.Arithmetic, "invalid exponent '%s': exponent must be in range [0, %d]", o, MaxExponent)
	}
	// each bit of the base coefficient is worth log10(2) digits
	if bits := int64(n.d.Coefficient().BitLen()) * e; bits*30103/100000 > MaxPowDigits {
		return Number{}, diag.New(diag.Arithmetic, "result of %s ^ %s exceeds %d digits", n, o, MaxPowDigits)
	}
	result := decimal.NewFromInt(1)
	base := n.d
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		e >>= 1
		if e > 0 {
			base = base.Mul(base)
		}
	}
	return Number{d: result}, nil
}

func strip(x *big.Int, p *big.Int) int {
	count := 0
	m := new(big.Int)
	q := new(big.Int)
	for {
		q.QuoRem(x, p, m)
		if m.Sign() != 0 {
			return count
		}
		x.Set(q)
		count++
	}
}

func pow10(k int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(k)), nil)
}

// rescale returns the coefficient of d expressed at exponent exp, which
// must not exceed d's own exponent.
func rescale(d decimal.Decimal, exp int32) *big.Int {
	c := d.Coefficient()
	if diff := d.Exponent() - exp; diff > 0 {
		c.Mul(c, pow10(int(diff)))
	}
	return c
}
