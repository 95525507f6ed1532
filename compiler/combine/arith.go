package combine

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/clipsheep6/ability-runtime-sub005/compiler/gate"
)

type (
	// Word is a machine integer the rule tables are instantiated for.
	Word interface {
		~int32 | ~int64
	}

	UWord interface {
		~uint32 | ~uint64
	}
)

// Folds wrap modulo 2^n. MIN/-1 and out of range shifts are defined too.

func AddWithWraparound[T constraints.Signed](a, b T) T { return a + b }
func SubWithWraparound[T constraints.Signed](a, b T) T { return a - b }
func MulWithWraparound[T constraints.Signed](a, b T) T { return a * b }

// ShlWithWraparound masks the shift amount to the width of T.
func ShlWithWraparound[T constraints.Signed](a, b T) T {
	mask := T(gate.Width[T]() - 1)

	return a << (b & mask)
}

// NegateWithWraparound keeps the minimum value in place.
func NegateWithWraparound[T constraints.Signed](a T) T {
	if a == minOf[T]() {
		return a
	}

	return -a
}

// SignedDiv is a total division: x/0 == 0 and MIN/-1 == MIN.
func SignedDiv[T constraints.Signed](x, y T) T {
	if y == 0 {
		return 0
	}

	if y == -1 {
		return NegateWithWraparound(x)
	}

	return x / y
}

// SignedMod is a total remainder: x%0 == 0 and x%-1 == 0.
func SignedMod[T constraints.Signed](x, y T) T {
	if y == 0 || y == -1 {
		return 0
	}

	return x % y
}

// SignedAddOverflow returns the wrapped sum and whether it overflowed.
// Overflow happened if both operands have the sign the result lacks.
func SignedAddOverflow[T constraints.Signed](l, r T) (T, bool) {
	res := l + r

	return res, (res^l)&(res^r) < 0
}

func SignedSubOverflow[T constraints.Signed](l, r T) (T, bool) {
	res := l - r

	return res, (res^l)&(res^^r) < 0
}

// SignedMulOverflow returns the wrapped product and whether the exact
// product is out of T's range.
func SignedMulOverflow[T constraints.Signed](l, r T) (T, bool) {
	res := l * r

	if gate.Width[T]() <= 32 {
		wide := int64(l) * int64(r)

		return res, wide != int64(res)
	}

	if l == 0 || r == 0 {
		return res, false
	}

	if l == -1 && r == minOf[T]() || r == -1 && l == minOf[T]() {
		return res, true
	}

	return res, res/r != l
}

// Divide is IEEE division with the zero divisor cases spelled out.
func Divide[T constraints.Float](x, y T) T {
	if y != 0 {
		return x / y
	}

	if x == 0 || x != x {
		return T(math.NaN())
	}

	if (x >= 0) == !math.Signbit(float64(y)) {
		return T(math.Inf(1))
	}

	return T(math.Inf(-1))
}

func minOf[T constraints.Signed]() T {
	return T(-1) << (gate.Width[T]() - 1)
}
