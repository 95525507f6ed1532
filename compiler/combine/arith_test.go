package combine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignedDivBoundaries(t *testing.T) {
	assert.Equal(t, int32(0), SignedDiv[int32](7, 0))
	assert.Equal(t, int32(math.MinInt32), SignedDiv[int32](math.MinInt32, -1))
	assert.Equal(t, int64(math.MinInt64), SignedDiv[int64](math.MinInt64, -1))
	assert.Equal(t, int32(-3), SignedDiv[int32](7, -2))
	assert.Equal(t, int32(-3), SignedDiv[int32](-7, 2))

	assert.Equal(t, int32(0), SignedMod[int32](7, 0))
	assert.Equal(t, int32(0), SignedMod[int32](math.MinInt32, -1))
	assert.Equal(t, int32(-1), SignedMod[int32](-7, 2))
	assert.Equal(t, int64(1), SignedMod[int64](7, -2))
}

func TestOverflowHelpers(t *testing.T) {
	type tc struct {
		l, r int64
		add  bool
		sub  bool
		mul  bool
	}

	for _, c := range []tc{
		{l: 1, r: 2},
		{l: math.MaxInt32, r: 1, add: true, mul: false},
		{l: math.MinInt32, r: 1, sub: true},
		{l: 65536, r: 65536, mul: true},
		{l: -1, r: math.MinInt32, add: true, mul: true},
		{l: math.MinInt32, r: -1, add: true, mul: true},
		{l: 46341, r: 46341, mul: true},
		{l: 46340, r: 46340},
	} {
		_, ovf := SignedAddOverflow(int32(c.l), int32(c.r))
		assert.Equal(t, c.add, ovf, "add %d %d", c.l, c.r)

		_, ovf = SignedSubOverflow(int32(c.l), int32(c.r))
		assert.Equal(t, c.sub, ovf, "sub %d %d", c.l, c.r)

		_, ovf = SignedMulOverflow(int32(c.l), int32(c.r))
		assert.Equal(t, c.mul, ovf, "mul %d %d", c.l, c.r)
	}

	res, ovf := SignedAddOverflow[int32](math.MaxInt32, 1)
	assert.Equal(t, int32(math.MinInt32), res)
	assert.True(t, ovf)

	res64, ovf := SignedMulOverflow[int64](math.MinInt64, -1)
	assert.Equal(t, int64(math.MinInt64), res64)
	assert.True(t, ovf)

	_, ovf = SignedMulOverflow[int64](-1, math.MinInt64)
	assert.True(t, ovf)

	_, ovf = SignedMulOverflow[int64](1<<32, 1<<31)
	assert.True(t, ovf)

	_, ovf = SignedMulOverflow[int64](1<<31, 1<<31)
	assert.False(t, ovf)

	_, ovf = SignedMulOverflow[int64](0, math.MinInt64)
	assert.False(t, ovf)

	_, ovf = SignedAddOverflow[int64](math.MaxInt64, 1)
	assert.True(t, ovf)

	_, ovf = SignedSubOverflow[int64](math.MinInt64, 1)
	assert.True(t, ovf)

	_, ovf = SignedSubOverflow[int64](0, math.MinInt64)
	assert.True(t, ovf)
}

func TestDivide(t *testing.T) {
	assert.Equal(t, 2.5, Divide(5.0, 2.0))
	assert.True(t, math.IsInf(Divide(1.0, 0.0), 1))
	assert.True(t, math.IsInf(Divide(-1.0, 0.0), -1))
	assert.True(t, math.IsInf(Divide(1.0, math.Copysign(0, -1)), -1))
	assert.True(t, math.IsInf(Divide(-1.0, math.Copysign(0, -1)), 1))
	assert.True(t, math.IsNaN(Divide(0.0, 0.0)))
	assert.True(t, math.IsNaN(Divide(math.NaN(), 0.0)))

	assert.True(t, math.IsInf(float64(Divide[float32](1, 0)), 1))
}
