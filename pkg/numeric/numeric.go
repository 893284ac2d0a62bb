// Package numeric wraps the arbitrary-precision decimal backend used for
// all path arithmetic. Every operation reports overflow and division by
// zero as recoverable errors instead of aborting, so the engine can decide
// whether a condition is suppressible.
package numeric

import (
	"errors"
	"math"

	"github.com/cockroachdb/apd/v3"
)

// Recoverable arithmetic conditions.
var (
	ErrDivision   = errors.New("division by zero")
	ErrOverflow   = errors.New("numeric overflow")
	ErrOutOfRange = errors.New("numeric value out of range")
	ErrNotNumeric = errors.New("not a valid number")
)

// apdCtx is the shared arithmetic context. It is read-only after init and
// safe to share between concurrent evaluations.
var apdCtx = apd.Context{
	Precision:   38,
	MaxExponent: apd.MaxExponent,
	MinExponent: apd.MinExponent,
	Rounding:    apd.RoundHalfUp,
	Traps:       apd.SystemOverflow | apd.SystemUnderflow,
}

// truncCtx rounds toward zero, used for subscript truncation.
var truncCtx = func() apd.Context {
	c := apdCtx
	c.Rounding = apd.RoundDown
	return c
}()

// Parse converts a decimal literal to its exact value.
func Parse(s string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, ErrNotNumeric
	}
	return d, nil
}

// FromInt converts an integer.
func FromInt(i int64) *apd.Decimal { return apd.New(i, 0) }

// FromFloat converts a float; non-finite input is out of range.
func FromFloat(f float64) (*apd.Decimal, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, ErrOutOfRange
	}
	d := new(apd.Decimal)
	if _, err := d.SetFloat64(f); err != nil {
		return nil, ErrOutOfRange
	}
	return d, nil
}

func binary(op func(c *apd.Context, res, a, b *apd.Decimal) (apd.Condition, error), a, b *apd.Decimal) (*apd.Decimal, error) {
	res := new(apd.Decimal)
	cond, err := op(&apdCtx, res, a, b)
	if err != nil || cond.DivisionByZero() {
		if cond.DivisionByZero() {
			return nil, ErrDivision
		}
		return nil, ErrOverflow
	}
	if cond.Overflow() {
		return nil, ErrOverflow
	}
	return res, nil
}

// Add returns a + b.
func Add(a, b *apd.Decimal) (*apd.Decimal, error) {
	return binary((*apd.Context).Add, a, b)
}

// Sub returns a - b.
func Sub(a, b *apd.Decimal) (*apd.Decimal, error) {
	return binary((*apd.Context).Sub, a, b)
}

// Mul returns a * b.
func Mul(a, b *apd.Decimal) (*apd.Decimal, error) {
	return binary((*apd.Context).Mul, a, b)
}

// Div returns a / b, reporting division by zero as a recoverable error.
func Div(a, b *apd.Decimal) (*apd.Decimal, error) {
	if b.IsZero() {
		return nil, ErrDivision
	}
	return binary((*apd.Context).Quo, a, b)
}

// Mod returns the remainder of a / b.
func Mod(a, b *apd.Decimal) (*apd.Decimal, error) {
	if b.IsZero() {
		return nil, ErrDivision
	}
	return binary((*apd.Context).Rem, a, b)
}

func unary(op func(c *apd.Context, res, a *apd.Decimal) (apd.Condition, error), a *apd.Decimal) *apd.Decimal {
	res := new(apd.Decimal)
	// Unary decimal operations on in-range inputs cannot fail.
	_, _ = op(&apdCtx, res, a)
	return res
}

// Abs returns |a|.
func Abs(a *apd.Decimal) *apd.Decimal { return unary((*apd.Context).Abs, a) }

// Floor returns the largest integer not greater than a.
func Floor(a *apd.Decimal) *apd.Decimal { return unary((*apd.Context).Floor, a) }

// Ceil returns the smallest integer not less than a.
func Ceil(a *apd.Decimal) *apd.Decimal { return unary((*apd.Context).Ceil, a) }

// Neg returns -a.
func Neg(a *apd.Decimal) *apd.Decimal { return unary((*apd.Context).Neg, a) }

// Trunc discards the fractional part of a, rounding toward zero.
func Trunc(a *apd.Decimal) *apd.Decimal {
	res := new(apd.Decimal)
	_, _ = truncCtx.RoundToIntegralValue(res, a)
	return res
}

// Compare returns -1, 0 or 1 ordering a against b.
func Compare(a, b *apd.Decimal) int { return a.Cmp(b) }

// Int32 converts a truncated decimal to int32, reporting out-of-range
// values as a recoverable error.
func Int32(a *apd.Decimal) (int32, error) {
	i, err := Trunc(a).Int64()
	if err != nil || i > math.MaxInt32 || i < math.MinInt32 {
		return 0, ErrOutOfRange
	}
	return int32(i), nil
}

// Float64 converts to float precision, reporting overflow to infinity as a
// recoverable error.
func Float64(a *apd.Decimal) (float64, error) {
	f, err := a.Float64()
	if err != nil {
		return 0, ErrOutOfRange
	}
	if math.IsInf(f, 0) {
		return 0, ErrOutOfRange
	}
	return f, nil
}

// Text renders the decimal in plain (non-scientific) notation, the form
// used when items are serialized back to JSON.
func Text(a *apd.Decimal) string { return a.Text('f') }
